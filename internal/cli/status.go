package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print store status",
		Long:  "Print the store location, schema version, and row counts per table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			version, err := store.SchemaVersion()
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}
			counts, err := store.Counts()
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd, map[string]any{
					"path":           store.Path(),
					"schema_version": version,
					"counts":         counts,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Store: %s (schema v%s)\n", store.Path(), version)
			for _, table := range []string{"fixes", "conventions", "quirks", "sessions"} {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %d\n", table, counts[table])
			}
			return nil
		},
	}
}
