package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// overlayFile is the YAML structure of one template overlay.
type overlayFile struct {
	AgentType   string                 `yaml:"agent_type"`
	Credentials []CredentialDefinition `yaml:"credentials"`
}

// LoadDir merges YAML overlay files from dir into the registry.
// An overlay replaces the whole template for its agent-type key.
// A missing directory is not an error; operators may never create one.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read template dir: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", name, err)
		}

		var overlay overlayFile
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return fmt.Errorf("invalid template %s: %w", name, err)
		}
		if overlay.AgentType == "" {
			return fmt.Errorf("template %s: agent_type is required", name)
		}

		for _, def := range overlay.Credentials {
			if def.ID == "" {
				return fmt.Errorf("template %s: credential id is required", name)
			}
		}

		r.templates[overlay.AgentType] = overlay.Credentials
	}

	return nil
}
