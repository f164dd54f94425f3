package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	session := &cobra.Command{
		Use:   "session",
		Short: "Manage working sessions",
		Long:  "Start, end, and list the sessions that writes attribute learned knowledge to.",
	}
	session.AddCommand(newSessionStartCmd())
	session.AddCommand(newSessionEndCmd())
	session.AddCommand(newSessionListCmd())
	return session
}

func newSessionStartCmd() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new session",
		Long:  "Create a session row and print its generated identifier for use with --session on later writes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sess, err := store.BeginSession(projectDir)
			if err != nil {
				return fmt.Errorf("start session: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd, sess)
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.SessionID)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectDir, "project-dir", "", "project directory the session works in")
	return cmd
}

func newSessionEndCmd() *cobra.Command {
	var summary string

	cmd := &cobra.Command{
		Use:   "end <session-id>",
		Short: "End a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.EndSession(args[0], summary); err != nil {
				return fmt.Errorf("end session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Session %s ended\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&summary, "summary", "", "session summary")
	return cmd
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sessions, err := store.ListSessions()
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd, sessions)
			}
			for _, sess := range sessions {
				state := "open"
				if sess.EndedAt != nil {
					state = "ended"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tstarted %s\n",
					sess.SessionID, state, sess.StartedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
