package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/memoir/internal/sqlite"
	"github.com/mesh-intelligence/memoir/pkg/types"
)

func newForkCmd() *cobra.Command {
	var (
		out   string
		scope string
	)

	cmd := &cobra.Command{
		Use:   "fork",
		Short: "Export a shareable fork of the store",
		Long: `Export entries at or above a visibility scope into a new store.

A "team" fork carries team- and org-scoped entries; an "org" fork
carries org-scoped entries only. Personal entries never travel.
Session provenance is stripped: the fork has no session rows, copied
entries have no session id, and conventions restart at one distinct
session while keeping their confidence.

Example:
  memoir fork --out ./shared/memoir-fork.db --scope team`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := types.Scope(scope)

			srcPath, err := resolveDBPath()
			if err != nil {
				return fmt.Errorf("resolve store path: %w", err)
			}

			if err := sqlite.ExportFork(srcPath, out, filter, newLogger()); err != nil {
				return fmt.Errorf("fork export: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd, map[string]any{"source": srcPath, "destination": out, "scope": scope})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fork exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "destination store path (required)")
	cmd.Flags().StringVar(&scope, "scope", "team", "scope filter: team or org")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
