package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/source"
)

func (c *cli) newImportCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "import <catalog.yaml>",
		Short: "Load a catalog file into the SQLite store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := source.ReadCatalog(args[0])
			if err != nil {
				return err
			}
			store, err := source.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Import(cmd.Context(), catalog); err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			c.logger.Info().
				Str("db", dbPath).
				Int("work_items", len(catalog.Works)).
				Bool("about", catalog.About != nil).
				Bool("contact", catalog.Contact != nil).
				Msg("catalog imported")
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "data/folio.db", "SQLite database path")
	return cmd
}
