package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/memoir/pkg/types"
)

func newRecordCmd() *cobra.Command {
	record := &cobra.Command{
		Use:   "record",
		Short: "Record learned knowledge",
		Long:  "Record a fix, convention, or quirk in the memoir store.",
	}
	record.AddCommand(newRecordFixCmd())
	record.AddCommand(newRecordConventionCmd())
	record.AddCommand(newRecordQuirkCmd())
	return record
}

func newRecordFixCmd() *cobra.Command {
	var (
		errorText string
		rootCause string
		fixText   string
		resource  string
		provider  string
		validated bool
		scope     string
		session   string
	)

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Record an error fix",
		Long: `Record a remediation for an error condition.

Repeat reports of the same error (after case and whitespace
normalization) bump the existing row's hit count instead of inserting
a duplicate.

Example:
  memoir record fix --error "Error: timeout" --root-cause "Network issue" --fix "Increase timeout"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedScope, err := types.ParseScope(scope)
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if session != "" {
				if err := store.EnsureSession(session); err != nil {
					return err
				}
			}

			id, err := store.RecordFix(types.Fix{
				ErrorText: errorText,
				RootCause: rootCause,
				Fix:       fixText,
				Resource:  resource,
				Provider:  provider,
				Validated: validated,
				Scope:     parsedScope,
				SessionID: session,
			})
			if err != nil {
				return fmt.Errorf("record fix: %w", err)
			}

			return printRecorded(cmd, "fix", id)
		},
	}

	cmd.Flags().StringVar(&errorText, "error", "", "error text (required)")
	cmd.Flags().StringVar(&rootCause, "root-cause", "", "root cause (required)")
	cmd.Flags().StringVar(&fixText, "fix", "", "fix description (required)")
	cmd.Flags().StringVar(&resource, "resource", "", "resource type tag")
	cmd.Flags().StringVar(&provider, "provider", "", "provider tag")
	cmd.Flags().BoolVar(&validated, "validated", false, "mark the fix as validated")
	cmd.Flags().StringVar(&scope, "scope", "", "visibility scope: personal, team, or org (default: personal)")
	cmd.Flags().StringVar(&session, "session", "", "contributing session id")
	_ = cmd.MarkFlagRequired("error")
	_ = cmd.MarkFlagRequired("root-cause")
	_ = cmd.MarkFlagRequired("fix")

	return cmd
}

func newRecordConventionCmd() *cobra.Command {
	var (
		category string
		pattern  string
		example  string
		source   string
		scope    string
		session  string
	)

	cmd := &cobra.Command{
		Use:   "convention",
		Short: "Record a convention",
		Long: `Record a learned stylistic or organizational rule.

A fresh (category, pattern) pair is stored at base confidence.
Re-asserting an existing pair is treated as a correction and raises
its confidence.

Example:
  memoir record convention --category naming --pattern "s3-buckets-use-kebab-case" --session sess-001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedScope, err := types.ParseScope(scope)
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if session != "" {
				if err := store.EnsureSession(session); err != nil {
					return err
				}
			}

			id, err := store.RecordConvention(types.Convention{
				Category:  category,
				Pattern:   pattern,
				Example:   example,
				Source:    source,
				Scope:     parsedScope,
				SessionID: session,
			})
			if err != nil {
				return fmt.Errorf("record convention: %w", err)
			}

			return printRecorded(cmd, "convention", id)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "convention category (required)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "rule text, dedup key within category (required)")
	cmd.Flags().StringVar(&example, "example", "", "example applying the rule")
	cmd.Flags().StringVar(&source, "source", "", "provenance label (default: correction)")
	cmd.Flags().StringVar(&scope, "scope", "", "visibility scope: personal, team, or org (default: personal)")
	cmd.Flags().StringVar(&session, "session", "", "contributing session id")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}

func newRecordQuirkCmd() *cobra.Command {
	var (
		service     string
		description string
		region      string
		workaround  string
		scope       string
		session     string
	)

	cmd := &cobra.Command{
		Use:   "quirk",
		Short: "Record a service quirk",
		Long: `Record a freeform note about a service or region peculiarity.

Quirks are never deduplicated; every call inserts a new row.

Example:
  memoir record quirk --service ec2 --description "t2.micro limited to 1 vCPU"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedScope, err := types.ParseScope(scope)
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if session != "" {
				if err := store.EnsureSession(session); err != nil {
					return err
				}
			}

			id, err := store.RecordQuirk(types.Quirk{
				Service:     service,
				Description: description,
				Region:      region,
				Workaround:  workaround,
				Scope:       parsedScope,
				SessionID:   session,
			})
			if err != nil {
				return fmt.Errorf("record quirk: %w", err)
			}

			return printRecorded(cmd, "quirk", id)
		},
	}

	cmd.Flags().StringVar(&service, "service", "", "service name (required)")
	cmd.Flags().StringVar(&description, "description", "", "quirk description (required)")
	cmd.Flags().StringVar(&region, "region", "", "region the quirk applies to")
	cmd.Flags().StringVar(&workaround, "workaround", "", "known workaround")
	cmd.Flags().StringVar(&scope, "scope", "", "visibility scope: personal, team, or org (default: personal)")
	cmd.Flags().StringVar(&session, "session", "", "contributing session id")
	_ = cmd.MarkFlagRequired("service")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

// printRecorded reports a successful write in text or JSON mode.
func printRecorded(cmd *cobra.Command, kind string, id int64) error {
	if flags.jsonMode {
		return printJSON(cmd, map[string]any{"kind": kind, "id": id})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %d\n", kind, id)
	return nil
}
