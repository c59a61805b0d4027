package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/mandalnilabja/agentgate/internal/connect"
	"github.com/mandalnilabja/agentgate/internal/storage"
)

// LocalBackend serves the connect.Backend contract directly from storage,
// for running the connect panel against the local database without a server.
type LocalBackend struct {
	store storage.Storage
}

// NewLocalBackend wraps a storage instance as a backend.
func NewLocalBackend(store storage.Storage) *LocalBackend {
	return &LocalBackend{store: store}
}

// ListStoredCredentials implements connect.Backend.
func (b *LocalBackend) ListStoredCredentials(ctx context.Context) ([]connect.StoredCredential, error) {
	creds, err := b.store.ListCredentials()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", connect.ErrStoreUnavailable, err)
	}

	stored := make([]connect.StoredCredential, 0, len(creds))
	for _, cred := range creds {
		stored = append(stored, connect.StoredCredential{CredentialID: cred.ID})
	}
	return stored, nil
}

// CheckAgentRequirements implements connect.Backend. Availability is checked
// per requirement against the credential table.
func (b *LocalBackend) CheckAgentRequirements(ctx context.Context, agentPath string) ([]connect.Requirement, error) {
	agent, err := b.store.GetAgent(agentPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: agent %q not registered", connect.ErrStoreUnavailable, agentPath)
		}
		return nil, fmt.Errorf("%w: %v", connect.ErrStoreUnavailable, err)
	}

	requirements := make([]connect.Requirement, 0, len(agent.Requirements))
	for _, spec := range agent.Requirements {
		available := false
		if _, err := b.store.GetCredential(spec.CredentialID); err == nil {
			available = true
		}
		requirements = append(requirements, connect.Requirement{
			CredentialID:   spec.CredentialID,
			CredentialName: spec.CredentialName,
			Description:    spec.Description,
			CredentialKey:  spec.CredentialKey,
			Available:      available,
			OAuthSupported: spec.OAuthSupported,
		})
	}
	return requirements, nil
}

// SaveCredential implements connect.Backend. The display name of an existing
// credential is preserved across saves.
func (b *LocalBackend) SaveCredential(ctx context.Context, credentialID string, fields map[string]string) error {
	displayName := credentialID
	if existing, err := b.store.GetCredential(credentialID); err == nil {
		displayName = existing.DisplayName
	}

	err := b.store.SaveCredential(&storage.Credential{
		ID:          credentialID,
		DisplayName: displayName,
		Fields:      fields,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", connect.ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteCredential implements connect.Backend.
func (b *LocalBackend) DeleteCredential(ctx context.Context, credentialID string) error {
	if err := b.store.DeleteCredential(credentialID); err != nil {
		return fmt.Errorf("%w: %v", connect.ErrStoreUnavailable, err)
	}
	return nil
}
