// Package paths resolves configuration and data file locations for the
// memoir CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment variable overrides, checked before platform defaults.
const (
	EnvConfigDir = "MEMOIR_CONFIG_DIR"
	EnvDB        = "MEMOIR_DB"
	EnvCanonDir  = "MEMOIR_CANON_DIR"
)

// DBFileName is the store file created inside the data directory when
// no explicit path is configured.
const DBFileName = "memoir.db"

// platformDir holds platform-detection functions that can be overridden
// in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/memoir (fallback ~/.config/memoir)
// macOS:   ~/Library/Application Support/memoir
// Windows: %APPDATA%/memoir
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "memoir"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "memoir"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "memoir"), nil
	}
}

// DefaultDataDir returns the platform-specific default data directory,
// which holds the store file when no db path is configured.
//
// Linux:   $XDG_DATA_HOME/memoir (fallback ~/.local/share/memoir)
// macOS:   ~/Library/Application Support/memoir
// Windows: %APPDATA%/memoir
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "memoir"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "memoir"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "memoir"), nil
	}
}

// DefaultDBPath returns the default store file location.
func DefaultDBPath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DBFileName), nil
}
