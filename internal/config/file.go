package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
type FileConfig struct {
	ServerPort   string `toml:"server_port"`
	StoreURL     string `toml:"store_url"`
	TemplateDir  string `toml:"template_dir"`
	AuthorizeURL string `toml:"authorize_url"`
}

// ConfigPath returns the path to the config file (~/.agentgate/config.toml).
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// LoadFile loads configuration from the TOML file.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile() (*FileConfig, error) {
	cfg := &FileConfig{}

	path := ConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	// If config already exists, do nothing
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	// Ensure directory exists
	if err := EnsureDataDir(); err != nil {
		return err
	}

	defaultConfig := `# Agentgate Configuration
# server_port = ":8819"

# Base URL the connect panel uses to reach the credential store
# store_url = "http://localhost:8819"

# Directory holding YAML agent-type template overlays
# template_dir = "~/.agentgate/templates"

# External OAuth authorization target for oauth-backed credentials
# authorize_url = "https://connect.agentgate.dev/authorize"
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
