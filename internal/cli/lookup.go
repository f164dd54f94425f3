package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/memoir/internal/sqlite"
	"github.com/mesh-intelligence/memoir/pkg/types"
)

func newLookupCmd() *cobra.Command {
	lookup := &cobra.Command{
		Use:   "lookup",
		Short: "Look up learned knowledge",
		Long:  "Query the memoir store for fixes, conventions, or quirks.",
	}
	lookup.AddCommand(newLookupFixesCmd())
	lookup.AddCommand(newLookupConventionsCmd())
	lookup.AddCommand(newLookupQuirksCmd())
	return lookup
}

func newLookupFixesCmd() *cobra.Command {
	var (
		errorText string
		errorHash string
		resource  string
		scope     string
	)

	cmd := &cobra.Command{
		Use:   "fixes",
		Short: "Look up fixes",
		Long:  "Look up fixes by error text (normalized and hashed), exact hash, resource, or scope. Results are ordered by hit count.",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedScope, err := parseScopeFilter(scope)
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			fixes, err := store.LookupFixes(sqlite.FixQuery{
				ErrorText: errorText,
				ErrorHash: errorHash,
				Resource:  resource,
				Scope:     parsedScope,
			})
			if err != nil {
				return fmt.Errorf("lookup fixes: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd, fixes)
			}
			for _, fix := range fixes {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t[%s]\thits=%d\t%s -> %s\n",
					fix.ID, fix.Scope, fix.HitCount, fix.ErrorText, fix.Fix)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&errorText, "error", "", "error text to match by normalized hash")
	cmd.Flags().StringVar(&errorHash, "hash", "", "exact error hash")
	cmd.Flags().StringVar(&resource, "resource", "", "filter by resource tag")
	cmd.Flags().StringVar(&scope, "scope", "", "filter by scope")

	return cmd
}

func newLookupConventionsCmd() *cobra.Command {
	var (
		category      string
		scope         string
		minConfidence float64
	)

	cmd := &cobra.Command{
		Use:   "conventions",
		Short: "Look up conventions",
		Long:  "Look up conventions by category, scope, or minimum raw confidence. Each result carries its effective confidence projection.",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedScope, err := parseScopeFilter(scope)
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			convs, err := store.LookupConventions(sqlite.ConventionQuery{
				Category:      category,
				Scope:         parsedScope,
				MinConfidence: minConfidence,
			})
			if err != nil {
				return fmt.Errorf("lookup conventions: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd, convs)
			}
			for _, conv := range convs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t[%s]\t%s/%s\tconfidence=%.2f effective=%.2f sessions=%d\n",
					conv.ID, conv.Scope, conv.Category, conv.Pattern,
					conv.Confidence, conv.EffectiveConfidence, conv.DistinctSessions)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&scope, "scope", "", "filter by scope")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "minimum raw confidence")

	return cmd
}

func newLookupQuirksCmd() *cobra.Command {
	var (
		service string
		region  string
		scope   string
	)

	cmd := &cobra.Command{
		Use:   "quirks",
		Short: "Look up quirks",
		Long:  "Look up quirks by service, region, or scope.",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedScope, err := parseScopeFilter(scope)
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			quirks, err := store.LookupQuirks(sqlite.QuirkQuery{
				Service: service,
				Region:  region,
				Scope:   parsedScope,
			})
			if err != nil {
				return fmt.Errorf("lookup quirks: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd, quirks)
			}
			for _, quirk := range quirks {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t[%s]\t%s\t%s\n",
					quirk.ID, quirk.Scope, quirk.Service, quirk.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&service, "service", "", "filter by service")
	cmd.Flags().StringVar(&region, "region", "", "filter by region")
	cmd.Flags().StringVar(&scope, "scope", "", "filter by scope")

	return cmd
}

// parseScopeFilter validates an optional scope filter flag. Unlike
// ParseScope, an empty value stays empty (no filter) rather than
// defaulting to personal.
func parseScopeFilter(s string) (types.Scope, error) {
	if s == "" {
		return "", nil
	}
	return types.ParseScope(s)
}
