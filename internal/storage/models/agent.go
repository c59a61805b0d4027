package models

import "time"

// RequirementSpec is one credential requirement an agent declares at
// registration. Only genuinely required credentials are declared.
type RequirementSpec struct {
	CredentialID   string `json:"credential_id"`
	CredentialName string `json:"credential_name"`
	Description    string `json:"description"`
	CredentialKey  string `json:"credential_key,omitempty"`
	OAuthSupported bool   `json:"oauth_supported"`
}

// Agent is a registered agent known to the credential store. Path is the
// agent's identity; TemplateKey links it to a static credential template.
type Agent struct {
	Path         string            `json:"path"`
	Name         string            `json:"name"`
	TemplateKey  string            `json:"template_key"`
	Requirements []RequirementSpec `json:"requirements"`
	CreatedAt    time.Time         `json:"created_at"`
}
