// Package template defines the static credential templates for known agent types.
package template

// CredentialDefinition describes one credential an agent type is known to use.
// Definitions are static data; they carry no connection state.
type CredentialDefinition struct {
	ID          string `yaml:"id"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Required    bool   `yaml:"required"`
}

// builtin maps agent-type keys to their credential definitions.
// Overlay files loaded via LoadDir extend or replace these entries.
var builtin = map[string][]CredentialDefinition{
	"inbox-management": {
		{ID: "gmail", DisplayName: "Gmail", Description: "Read and triage incoming mail", Icon: "mail", Required: true},
		{ID: "gcal", DisplayName: "Google Calendar", Description: "Schedule follow-ups from threads", Icon: "calendar"},
		{ID: "gsheets", DisplayName: "Google Sheets", Description: "Log processed messages to a sheet", Icon: "table"},
	},
	"fitness-coach": {
		{ID: "strava", DisplayName: "Strava", Description: "Pull recent activity data", Icon: "activity"},
		{ID: "gsheets", DisplayName: "Google Sheets", Description: "Track workout plans", Icon: "table"},
	},
	"meeting-notes": {
		{ID: "slack", DisplayName: "Slack", Description: "Post meeting summaries to a channel", Icon: "message", Required: true},
		{ID: "gcal", DisplayName: "Google Calendar", Description: "Find upcoming meetings", Icon: "calendar", Required: true},
	},
	"security-research": {
		{ID: "shodan", DisplayName: "Shodan", Description: "Query exposed-host intelligence", Icon: "shield", Required: true},
	},
}

// Registry resolves agent-type keys to credential definitions.
type Registry struct {
	templates map[string][]CredentialDefinition
}

// NewRegistry returns a registry seeded with the built-in templates.
func NewRegistry() *Registry {
	templates := make(map[string][]CredentialDefinition, len(builtin))
	for key, defs := range builtin {
		templates[key] = defs
	}
	return &Registry{templates: templates}
}

// Lookup returns the credential definitions for an agent-type key.
// Unknown keys yield an empty slice; callers degrade to an empty panel.
func (r *Registry) Lookup(key string) []CredentialDefinition {
	defs := r.templates[key]
	out := make([]CredentialDefinition, len(defs))
	copy(out, defs)
	return out
}

// Keys returns all registered agent-type keys.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.templates))
	for key := range r.templates {
		keys = append(keys, key)
	}
	return keys
}
