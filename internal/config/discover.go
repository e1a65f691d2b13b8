package config

import (
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the directory name for medialaunch config.
	ConfigDirName = ".medialaunch"
	// ConfigFileName is the config file name within the config directory.
	ConfigFileName = "config.yaml"
)

// DiscoverConfig finds the config file using walk-up discovery.
// Search order:
//  1. Walk up from cwd looking for .medialaunch/config.yaml
//  2. Fall back to ~/.medialaunch/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func DiscoverConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return discoveredHomeConfig()
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ConfigDirName, ConfigFileName)
		if fileExists(configPath) {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, stop
			break
		}
		dir = parent
	}

	return discoveredHomeConfig()
}

// HomeConfigPath returns the path to ~/.medialaunch/config.yaml whether or
// not it exists.
func HomeConfigPath() string {
	return ExpandPath("~/" + ConfigDirName + "/" + ConfigFileName)
}

func discoveredHomeConfig() string {
	path := HomeConfigPath()
	if fileExists(path) {
		return path
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
