// Package paths resolves the configuration directory and the package
// database location for the rpmq CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment variable names for overrides.
const (
	EnvConfigDir = "RPMQ_CONFIG_DIR"
	EnvDBPath    = "RPMQ_DB_PATH"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/rpmq (fallback ~/.config/rpmq)
// macOS:   ~/Library/Application Support/rpmq
// Windows: %APPDATA%/rpmq
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "rpmq"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "rpmq"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "rpmq"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > RPMQ_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDBPath returns the rpmdb location following the precedence chain:
// flag > config.yaml db_path > RPMQ_DB_PATH env > "".
//
// The empty result means no override is active; the store then falls back to
// the system default (/var/lib/rpm/rpmdb.sqlite).
func ResolveDBPath(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return filepath.Abs(env)
	}
	return "", nil
}
