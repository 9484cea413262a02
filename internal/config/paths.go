package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the directory name for go-mojang configuration
	ConfigDirName = "go-mojang"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "config.yaml"
)

// GetConfigDir returns the path to the go-mojang configuration directory.
// It defaults to ~/.config/go-mojang/.
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configHome, ConfigDirName), nil
}

// GetConfigPath returns the path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// EnsureDir ensures that a directory exists, creating it if necessary.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to ensure directory %s: %w", path, err)
	}
	return nil
}
