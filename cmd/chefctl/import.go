package main

import (
	"fmt"
	"os"

	"chef-express/internal/core/recipe"
	"chef-express/internal/ui"

	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Load recipes from a JSON export into the local recipe database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Store.Path
			if dbPath != "" {
				path = dbPath
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			store, err := recipe.OpenSQLite(path)
			if err != nil {
				return fmt.Errorf("opening recipe store: %w", err)
			}
			defer store.Close()

			n, err := store.Import(cmd.Context(), f)
			if err != nil {
				return err
			}
			ui.Ok(a.out, fmt.Sprintf("Imported %d recipes into %s", n, path))
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "recipe database path (overrides RECIPE_DB_PATH)")
	return cmd
}
