package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the path to the agentgate data directory.
// - Windows: %APPDATA%\agentgate
// - Other OS: ~/.agentgate
func DataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "agentgate")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".agentgate"
	}
	return filepath.Join(home, ".agentgate")
}

// DBPath returns the path to the SQLite database file.
func DBPath() string {
	return filepath.Join(DataDir(), "agentgate.db")
}

// TemplateDir returns the default directory for YAML template overlays.
func TemplateDir() string {
	return filepath.Join(DataDir(), "templates")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}
