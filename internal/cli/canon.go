package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/memoir/internal/canon"
	"github.com/mesh-intelligence/memoir/internal/paths"
)

func newCanonCmd() *cobra.Command {
	canonCmd := &cobra.Command{
		Use:   "canon",
		Short: "Search the canon corpus",
		Long:  "Search the static reference corpus directly, without the memory store.",
	}
	canonCmd.AddCommand(newCanonMatchCmd())
	canonCmd.AddCommand(newCanonResourceCmd())
	canonCmd.AddCommand(newCanonTagsCmd())
	return canonCmd
}

// canonSearchOutput is the JSON shape of canon search results.
type canonSearchOutput struct {
	Count   int            `json:"count"`
	Results []canon.Result `json:"results"`
}

func newCanonMatchCmd() *cobra.Command {
	var errorText string

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match error text against canon signatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := requireCanonDir()
			if err != nil {
				return err
			}

			sigs, err := canon.LoadSignatures(dir)
			if err != nil {
				return fmt.Errorf("canon match: %w", err)
			}

			var results []canon.Result
			for _, sig := range canon.MatchError(errorText, sigs) {
				results = append(results, canon.Result{Source: canon.SignaturesFile, Entry: sig})
			}
			return printCanonResults(cmd, results)
		},
	}

	cmd.Flags().StringVar(&errorText, "error", "", "error text to match (required)")
	_ = cmd.MarkFlagRequired("error")
	return cmd
}

func newCanonResourceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resource <type>",
		Short: "Search canon by resource type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := requireCanonDir()
			if err != nil {
				return err
			}
			return printCanonResults(cmd, canon.SearchByResource(dir, args[0]))
		},
	}
}

func newCanonTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <tag,tag,...>",
		Short: "Search canon by tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := requireCanonDir()
			if err != nil {
				return err
			}

			var tags []string
			for _, t := range strings.Split(args[0], ",") {
				if t = strings.TrimSpace(t); t != "" {
					tags = append(tags, t)
				}
			}
			return printCanonResults(cmd, canon.SearchByTags(dir, tags))
		},
	}
}

// requireCanonDir resolves the canon directory; direct canon searches
// need one, unlike merged queries which degrade without it.
func requireCanonDir() (string, error) {
	dir := resolveCanonDir()
	if dir == "" {
		return "", fmt.Errorf("no canon directory configured (use --canon-dir or %s)", paths.EnvCanonDir)
	}
	return dir, nil
}

func printCanonResults(cmd *cobra.Command, results []canon.Result) error {
	unique := canon.Dedup(results)
	return printJSON(cmd, canonSearchOutput{Count: len(unique), Results: unique})
}
