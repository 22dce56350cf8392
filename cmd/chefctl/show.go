package main

import (
	"fmt"

	"chef-express/internal/client"
	"chef-express/internal/ui"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <recipe-id>",
		Short: "Show a recipe's ingredients and instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe, err := a.newClient(a.cfg).Recipe(cmd.Context(), args[0])
			if client.IsNotFound(err) {
				return fmt.Errorf("recipe %s not found", args[0])
			}
			if err != nil {
				return err
			}
			ui.Recipe(a.out, recipe)
			return nil
		},
	}
}
