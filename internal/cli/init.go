package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	DBPath   string `yaml:"db_path"`
	CanonDir string `yaml:"canon_dir,omitempty"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the memoir store",
		Long:  "Create the configuration and data directories, write config.yaml, and initialize the store schema.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	dbPath, err := resolveDBPath()
	if err != nil {
		return fmt.Errorf("resolve store path: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, dbPath, resolveCanonDir()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Opening creates the schema (or migrates an old store in place).
	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("finalize store: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Memoir store initialized at %s\n", dbPath)
	return nil
}

// writeConfigIfMissing creates config.yaml with the resolved values if
// the file does not exist. If it already exists, the function returns
// nil (idempotent).
func writeConfigIfMissing(path, dbPath, canonDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{
		DBPath:   dbPath,
		CanonDir: canonDir,
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
