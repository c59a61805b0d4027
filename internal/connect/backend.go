// Package connect implements the credential connection protocol that gates an
// agent run: requirement resolution, per-credential connection state, and the
// required-credentials gate.
package connect

import (
	"context"
	"errors"
)

// ErrStoreUnavailable is returned by Backend implementations when the
// credential store cannot be reached.
var ErrStoreUnavailable = errors.New("credential store unavailable")

// StoredCredential identifies one credential held by the store.
type StoredCredential struct {
	CredentialID string `json:"credential_id"`
}

// Requirement is one entry of an agent-specific requirement query.
// The store only returns credentials the agent cannot run without.
type Requirement struct {
	CredentialID   string `json:"credential_id"`
	CredentialName string `json:"credential_name"`
	Description    string `json:"description"`
	CredentialKey  string `json:"credential_key,omitempty"`
	Available      bool   `json:"available"`
	OAuthSupported bool   `json:"oauth_supported"`
}

// Backend is the credential store collaborator. All four operations may fail
// with ErrStoreUnavailable; timeout and retry policy belong to implementations.
type Backend interface {
	// ListStoredCredentials returns the identifiers of all stored credentials.
	ListStoredCredentials(ctx context.Context) ([]StoredCredential, error)

	// CheckAgentRequirements returns the declared credential requirements of
	// the agent at agentPath, with live availability per credential.
	CheckAgentRequirements(ctx context.Context, agentPath string) ([]Requirement, error)

	// SaveCredential stores the given field values under the credential ID.
	SaveCredential(ctx context.Context, credentialID string, fields map[string]string) error

	// DeleteCredential removes a stored credential.
	DeleteCredential(ctx context.Context, credentialID string) error
}
