package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDir = "boringwm"

// ConfigDir returns the per-user configuration directory. Priority:
// 1) $XDG_CONFIG_HOME/boringwm (if set)
// 2) $HOME/.config/boringwm
func ConfigDir() (string, error) {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, appDir), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDir), nil
}

// AutostartPath returns the script run once when the window manager starts.
func AutostartPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autostart.sh"), nil
}

// IsExecutableFile reports whether path is a regular file with any execute
// bit set. Missing files are not an error.
func IsExecutableFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}
	return info.Mode().Perm()&0o111 != 0, nil
}
