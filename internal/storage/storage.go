// Package storage provides the storage interface and implementations.
package storage

import (
	"github.com/mandalnilabja/agentgate/internal/storage/models"
	"github.com/mandalnilabja/agentgate/internal/storage/sqlite"
)

// Re-export types from models package for convenience
type (
	Credential        = models.Credential
	CredentialPreview = models.CredentialPreview
	Agent             = models.Agent
	RequirementSpec   = models.RequirementSpec
)

// Re-export functions from models package
var MaskSecret = models.MaskSecret

// Re-export errors from sqlite package
var (
	ErrNotFound        = sqlite.ErrNotFound
	ErrInvalidInput    = sqlite.ErrInvalidInput
	ErrStorageClosed   = sqlite.ErrStorageClosed
	ErrEncryptionError = sqlite.ErrEncryptionError
)

// Storage defines the interface for persistent data storage
type Storage interface {
	// Credential operations
	SaveCredential(cred *models.Credential) error
	GetCredential(id string) (*models.Credential, error)
	ListCredentials() ([]*models.Credential, error)
	DeleteCredential(id string) error

	// Agent registry operations
	RegisterAgent(agent *models.Agent) error
	GetAgent(path string) (*models.Agent, error)
	ListAgents() ([]*models.Agent, error)

	// Admin password operations
	GetAdminPasswordHash() (string, error)
	SetAdminPasswordHash(hash string) error
	HasAdminPassword() (bool, error)

	// Maintenance operations
	Close() error
}

// NewSQLiteStorage creates a new SQLite storage instance
// This is the main factory function for creating storage
func NewSQLiteStorage(dbPath string) (Storage, error) {
	return sqlite.New(dbPath)
}
