// Package handler wires HTTP handler groups to their dependencies.
package handler

import (
	"log/slog"
	"time"

	"github.com/mandalnilabja/agentgate/internal/storage"
	"github.com/mandalnilabja/agentgate/internal/template"
	"github.com/mandalnilabja/agentgate/internal/transport/http/handler/infra"
	"github.com/mandalnilabja/agentgate/internal/transport/http/handler/store"
	"github.com/mandalnilabja/agentgate/internal/transport/http/middleware/auth"
)

// Repo holds the dependencies for HTTP handlers
type Repo struct {
	Store *store.Handlers
	Infra *infra.Handlers
}

// NewRepo creates a new instance of the handler repository
func NewRepo(st storage.Storage, registry *template.Registry, sessions *auth.SessionStore, logger *slog.Logger) *Repo {
	return &Repo{
		Store: store.New(st, registry, sessions, logger),
		Infra: infra.New(time.Now()),
	}
}
