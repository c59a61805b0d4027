// Package store implements the credential store HTTP API consumed by the
// connect panel and its backend client.
package store

import (
	"log/slog"

	"github.com/mandalnilabja/agentgate/internal/storage"
	"github.com/mandalnilabja/agentgate/internal/template"
	"github.com/mandalnilabja/agentgate/internal/transport/http/middleware/auth"
)

// Handlers holds the dependencies for credential store HTTP handlers.
type Handlers struct {
	Store    storage.Storage
	Registry *template.Registry
	Sessions *auth.SessionStore
	Logger   *slog.Logger
}

// New creates a new instance of store handlers.
func New(store storage.Storage, registry *template.Registry, sessions *auth.SessionStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		Store:    store,
		Registry: registry,
		Sessions: sessions,
		Logger:   logger,
	}
}
