// Package datadir resolves where Study Squad keeps its files on disk.
package datadir

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "studysquad"

// Dir returns the application data directory:
// 1. $XDG_DATA_HOME/studysquad
// 2. ~/.local/share/studysquad
func Dir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName), nil
}

// Resolve returns envVar's value when set, otherwise name joined onto Dir().
// The parent directory of the result is created if missing.
func Resolve(envVar, name string) (string, error) {
	if p := os.Getenv(envVar); p != "" {
		return p, EnsureDir(p)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, name)
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
