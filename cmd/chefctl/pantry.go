package main

import (
	"errors"
	"fmt"
	"strings"

	"chef-express/internal/core/pantry"
	"chef-express/internal/ui"

	"github.com/spf13/cobra"
)

func newPantryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pantry",
		Aliases: []string{"p"},
		Short:   "Manage the ingredients you have at home",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPantryList(a, cmd)
		},
	}

	var quantity string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an ingredient",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return a.withPantry(cmd.Context(), func(list *pantry.List) error {
				ing, err := list.Add(cmd.Context(), name, quantity)
				if errors.Is(err, pantry.ErrDuplicate) {
					ui.Warn(a.out, fmt.Sprintf("%s is already in your pantry", strings.TrimSpace(name)))
					return nil
				}
				if err != nil {
					return err
				}
				ui.Ok(a.out, fmt.Sprintf("Added %s (%s)", ing.Name, ing.RelativeQuantity))
				return nil
			})
		},
	}
	addCmd.Flags().StringVarP(&quantity, "quantity", "q", "", "how much you have, e.g. \"half a dozen\"")

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List ingredients",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPantryList(a, cmd)
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove <id|name>",
		Aliases: []string{"rm"},
		Short:   "Remove an ingredient by id or name",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(strings.Join(args, " "))
			return a.withPantry(cmd.Context(), func(list *pantry.List) error {
				id := target
				for _, ing := range list.Items() {
					if strings.EqualFold(ing.Name, target) {
						id = ing.ID
						break
					}
				}
				ing, err := list.Remove(cmd.Context(), id)
				if errors.Is(err, pantry.ErrNotFound) {
					return fmt.Errorf("no ingredient matching %q", target)
				}
				if err != nil {
					return err
				}
				ui.Ok(a.out, "Removed "+ing.Name)
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every ingredient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withPantry(cmd.Context(), func(list *pantry.List) error {
				n := list.Len()
				if err := list.Clear(cmd.Context()); err != nil {
					return err
				}
				ui.Ok(a.out, fmt.Sprintf("Cleared %d ingredients", n))
				return nil
			})
		},
	}

	cmd.AddCommand(addCmd, listCmd, removeCmd, clearCmd)
	return cmd
}

func runPantryList(a *app, cmd *cobra.Command) error {
	return a.withPantry(cmd.Context(), func(list *pantry.List) error {
		ui.Pantry(a.out, list.Items())
		return nil
	})
}
