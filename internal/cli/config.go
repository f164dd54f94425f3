// Config loading for the memoir CLI. config.yaml lives in the config
// directory and supplies the store path and canon directory; flags and
// environment variables take precedence over it.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDBPath   = "db_path"
	cfgKeyCanonDir = "canon_dir"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Memoir CLI configuration

# Store file path (optional; overridable by --db or MEMOIR_DB)
# db_path:

# Canon corpus directory (optional; overridable by --canon-dir or MEMOIR_CANON_DIR)
# canon_dir:
`

var (
	configOnce sync.Once
	configV    *viper.Viper
)

// configValue reads a key from config.yaml, loading it on first use.
// A missing or unreadable config file yields empty values; config is a
// convenience layer, never a hard requirement.
func configValue(key string) string {
	configOnce.Do(func() {
		configDir, err := resolveConfigDir()
		if err != nil {
			return
		}
		v, err := loadConfig(configDir)
		if err != nil {
			return
		}
		configV = v
	})
	if configV == nil {
		return ""
	}
	return configV.GetString(key)
}

// loadConfig reads config.yaml from the config directory using Viper.
// It creates the config directory and a default config.yaml on first
// run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file
// does not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
