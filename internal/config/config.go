package config

import "os"

// Config holds application configuration loaded from environment and file.
// Priority: Env vars → config.toml → defaults
type Config struct {
	// ServerPort is the address the credential store binds to (e.g., ":8819")
	ServerPort string

	// StoreURL is the base URL the connect panel uses to reach the store
	StoreURL string

	// TemplateDir holds YAML template overlays for agent types
	TemplateDir string

	// AuthorizeURL is the base URL of the external OAuth authorization target
	AuthorizeURL string
}

// Load reads configuration from file and environment variables.
// Environment variables override file config values.
func Load() *Config {
	fileConfig, _ := LoadFile() // Ignore error, use defaults

	return &Config{
		ServerPort:   getEnvOrFile("AGENTGATE_PORT", fileConfig.ServerPort, ":8819"),
		StoreURL:     getEnvOrFile("AGENTGATE_STORE_URL", fileConfig.StoreURL, "http://localhost:8819"),
		TemplateDir:  getEnvOrFile("AGENTGATE_TEMPLATE_DIR", fileConfig.TemplateDir, TemplateDir()),
		AuthorizeURL: getEnvOrFile("AGENTGATE_AUTHORIZE_URL", fileConfig.AuthorizeURL, "https://connect.agentgate.dev/authorize"),
	}
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}
