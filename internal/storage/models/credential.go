// Package models contains data models for storage operations.
package models

import "time"

// Credential is one stored credential, keyed by the service it connects
// (e.g. "gmail", "shodan"). Fields holds the secret values by field name
// and is encrypted at rest.
type Credential struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	Fields      map[string]string `json:"fields"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CredentialPreview is a safe representation of a credential (values masked).
type CredentialPreview struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	Fields      map[string]string `json:"fields"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// MaskSecret creates a masked preview of a secret value.
func MaskSecret(value string) string {
	if len(value) <= 10 {
		return "***"
	}
	return value[:4] + "..." + value[len(value)-4:]
}

// ToPreview converts a Credential to a safe CredentialPreview.
func (c *Credential) ToPreview() *CredentialPreview {
	masked := make(map[string]string, len(c.Fields))
	for key, value := range c.Fields {
		masked[key] = MaskSecret(value)
	}
	return &CredentialPreview{
		ID:          c.ID,
		DisplayName: c.DisplayName,
		Fields:      masked,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
