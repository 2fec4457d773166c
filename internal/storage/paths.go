package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chess"

// DataDir returns the platform-specific data directory, creating it if
// needed.
// - macOS: ~/Library/Application Support/chess/
// - Linux: $XDG_DATA_HOME/chess/ or ~/.local/share/chess/
// - Windows: %APPDATA%/chess/
func DataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// DatabaseDir returns the directory holding the saved-games database under
// root, or under DataDir when root is empty.
func DatabaseDir(root string) (string, error) {
	if root == "" {
		var err error
		if root, err = DataDir(); err != nil {
			return "", err
		}
	}
	dbDir := filepath.Join(root, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
