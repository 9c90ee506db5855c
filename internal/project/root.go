// Package project locates the project root and loads its configuration.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the configuration file that marks a project root.
const ConfigFileName = "bridgematrix.yaml"

// DotEnvFileName is the name of the optional dotenv file in the project root.
const DotEnvFileName = ".env"

// ErrNoProjectRoot is returned when bridgematrix.yaml is not found.
var ErrNoProjectRoot = errors.New("bridgematrix.yaml not found in the current directory or any parent")

// FindRoot walks up from the current working directory until it finds bridgematrix.yaml.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds bridgematrix.yaml.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}
