package main

import (
	"chef-express/internal/core/pantry"
	"chef-express/internal/pkg/common"
	"chef-express/internal/ui"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var extra []string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find recipes you can cook with your pantry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ingredients []common.Ingredient
			err := a.withPantry(cmd.Context(), func(list *pantry.List) error {
				ingredients = list.Items()
				return nil
			})
			if err != nil {
				return err
			}
			for _, name := range extra {
				ingredients = append(ingredients, common.Ingredient{
					ID:               common.GenerateUUID(),
					Name:             name,
					RelativeQuantity: common.DefaultRelativeQuantity,
				})
			}

			ranking, err := a.newClient(a.cfg).Search(cmd.Context(), ingredients)
			if err != nil {
				return err
			}
			ui.Ranking(a.out, ranking)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&extra, "with", "w", nil, "extra ingredients to include without saving them")
	return cmd
}
