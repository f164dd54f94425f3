// Package cli implements the memoir command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/memoir/internal/paths"
	"github.com/mesh-intelligence/memoir/internal/sqlite"
)

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dbPath    string
	canonDir  string
	jsonMode  bool
	logLevel  string
}

var flags rootFlags

// NewRootCmd creates the top-level "memoir" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "memoir",
		Short: "A two-tier knowledge store for infrastructure automation",
		Long: "Memoir maintains learned fixes, conventions, and quirks alongside a\n" +
			"static reference corpus (canon), with confidence-weighted override\n" +
			"priority and scope-filtered fork export.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "store file path (default: platform data dir)")
	root.PersistentFlags().StringVar(&flags.canonDir, "canon-dir", "", "canon corpus directory")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newRecordCmd())
	root.AddCommand(newLookupCmd())
	root.AddCommand(newReinforceCmd())
	root.AddCommand(newContradictCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newForkCmd())
	root.AddCommand(newSessionCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newCanonCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// newLogger builds the CLI logger from the --log-level flag. Logs go to
// stderr so command output on stdout stays pipeable.
func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(flags.logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
}

// resolveConfigDir returns the config directory from flag, env, or the
// platform default.
func resolveConfigDir() (string, error) {
	if flags.configDir != "" {
		return flags.configDir, nil
	}
	if v := os.Getenv(paths.EnvConfigDir); v != "" {
		return v, nil
	}
	return paths.DefaultConfigDir()
}

// resolveDBPath returns the store path from flag, env, config.yaml, or
// the platform default, in that order.
func resolveDBPath() (string, error) {
	if flags.dbPath != "" {
		return flags.dbPath, nil
	}
	if v := os.Getenv(paths.EnvDB); v != "" {
		return v, nil
	}
	if v := configValue(cfgKeyDBPath); v != "" {
		return v, nil
	}
	return paths.DefaultDBPath()
}

// resolveCanonDir returns the canon directory from flag, env, or
// config.yaml. Empty means no canon; merged queries degrade to memory
// results only.
func resolveCanonDir() string {
	if flags.canonDir != "" {
		return flags.canonDir
	}
	if v := os.Getenv(paths.EnvCanonDir); v != "" {
		return v
	}
	return configValue(cfgKeyCanonDir)
}

// openStore resolves the store path and opens it. The caller must defer
// store.Close().
func openStore() (*sqlite.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	store, err := sqlite.Open(dbPath, newLogger())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

// printJSON writes v to the command's stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
