package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Defaults are the locations used when no flag overrides them.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
}

// GetDefaults resolves default paths, checking environment variables first:
//   - GENFS_CONFIG_PATH: config file (default ~/.config/genfs.toml)
//   - GENFS_HOME: data directory (default ~/.local/share/genfs)
func GetDefaults() (*Defaults, error) {
	configPath := os.Getenv("GENFS_CONFIG_PATH")
	baseDir := os.Getenv("GENFS_HOME")

	if configPath == "" || baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		if configPath == "" {
			configPath = filepath.Join(home, ".config", "genfs.toml")
		}
		if baseDir == "" {
			baseDir = filepath.Join(home, ".local", "share", "genfs")
		}
	}

	return &Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
	}, nil
}
