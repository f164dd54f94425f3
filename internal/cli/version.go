package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	version    = "0.2.0"
	modulePath = "github.com/mesh-intelligence/memoir"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the memoir version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "memoir v%s\nmodule: %s\n", version, modulePath)
			return nil
		},
	}
}
