package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/memoir/internal/resolve"
)

func newQueryCmd() *cobra.Command {
	var errorText string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Merged canon and memory query",
		Long: `Query both the canon corpus and the memory store for an error and
merge the results with override priority: overriding memory entries
first, then canon matches, then non-overriding personal notes.

Output is always JSON. A missing canon directory degrades the canon
side to empty results.

Example:
  memoir query --error "Error creating S3 bucket: BucketAlreadyExists"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			resolver := resolve.New(store, resolveCanonDir(), newLogger())
			result, err := resolver.QueryWithPriority(errorText)
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}

			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&errorText, "error", "", "error text to resolve (required)")
	_ = cmd.MarkFlagRequired("error")

	return cmd
}
