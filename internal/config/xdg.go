// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "fluence"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultTextsDir returns the default directory scanned for texts.
func DefaultTextsDir() string {
	return filepath.Join(XDGConfigHome(), appName, "texts")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
