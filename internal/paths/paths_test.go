package paths

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultConfigDirHonorsXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG resolution is linux-only")
	}
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	dir, err := DefaultConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != filepath.Join("/custom/config", "memoir") {
		t.Fatalf("unexpected config dir %q", dir)
	}
}

func TestDefaultDataDirHonorsXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG resolution is linux-only")
	}
	t.Setenv("XDG_DATA_HOME", "/custom/data")

	dir, err := DefaultDataDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != filepath.Join("/custom/data", "memoir") {
		t.Fatalf("unexpected data dir %q", dir)
	}
}

func TestDefaultDBPath(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Setenv("XDG_DATA_HOME", "/custom/data")
	}

	path, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("memoir", DBFileName)) {
		t.Fatalf("unexpected db path %q", path)
	}
}

func TestHomeFallback(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG resolution is linux-only")
	}
	t.Setenv("XDG_CONFIG_HOME", "")

	orig := platformDir.homeDir
	platformDir.homeDir = func() (string, error) { return "/home/dev", nil }
	t.Cleanup(func() { platformDir.homeDir = orig })

	dir, err := DefaultConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != "/home/dev/.config/memoir" {
		t.Fatalf("unexpected config dir %q", dir)
	}
}
