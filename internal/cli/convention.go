package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newReinforceCmd() *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "reinforce <convention-id>",
		Short: "Reinforce a convention",
		Long: `Reinforce an existing convention, raising its confidence.

When --session names a session the convention has not seen before, its
distinct session count is bumped, which raises the effective confidence
ceiling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid convention id %q", args[0])
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

			raw, err := store.ReinforceConvention(id, session)
			if err != nil {
				return fmt.Errorf("reinforce convention: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd, map[string]any{"id": id, "confidence": raw})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Convention %d reinforced, confidence %.2f\n", id, raw)
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "reinforcing session id")
	return cmd
}

func newContradictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contradict <convention-id>",
		Short: "Contradict a convention",
		Long:  "Reset a convention's confidence after it was contradicted. The distinct session count is preserved.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid convention id %q", args[0])
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			raw, err := store.ContradictConvention(id)
			if err != nil {
				return fmt.Errorf("contradict convention: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd, map[string]any{"id": id, "confidence": raw})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Convention %d contradicted, confidence %.2f\n", id, raw)
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <fix-id>",
		Short: "Mark a fix as validated",
		Long:  "Mark a fix as validated, promoting a personal-scoped fix to override canon results.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid fix id %q", args[0])
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.MarkFixValidated(id, true); err != nil {
				return fmt.Errorf("validate fix: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd, map[string]any{"id": id, "validated": true})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fix %d marked validated\n", id)
			return nil
		},
	}
}
