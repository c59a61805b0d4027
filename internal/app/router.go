package app

import (
	"log/slog"
	"net/http"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/mandalnilabja/agentgate/internal/storage"
	"github.com/mandalnilabja/agentgate/internal/transport/http/handler"
	"github.com/mandalnilabja/agentgate/internal/transport/http/middleware"
	"github.com/mandalnilabja/agentgate/internal/transport/http/middleware/auth"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	Logger       *slog.Logger
	Storage      storage.Storage
	SessionStore *auth.SessionStore
	TokenCache   *ristretto.Cache[string, bool]
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	mux := http.NewServeMux()

	// Public routes (no auth)
	mux.HandleFunc("GET /api/health", repo.Infra.HealthCheck)
	mux.HandleFunc("GET /api/credentials", repo.Store.ListCredentials)
	mux.HandleFunc("GET /api/agents/requirements", repo.Store.GetRequirements)
	mux.HandleFunc("POST /api/admin/login", repo.Store.Login)

	// Mutating routes (require admin auth when a password is configured)
	adminAuth := auth.AdminAuth(opts.Storage, opts.SessionStore, opts.TokenCache)
	mux.Handle("PUT /api/credentials/{id}", adminAuth(http.HandlerFunc(repo.Store.SaveCredential)))
	mux.Handle("DELETE /api/credentials/{id}", adminAuth(http.HandlerFunc(repo.Store.DeleteCredential)))
	mux.Handle("POST /api/agents", adminAuth(http.HandlerFunc(repo.Store.RegisterAgent)))
	mux.Handle("PUT /api/admin/password", adminAuth(http.HandlerFunc(repo.Store.ChangeAdminPassword)))

	// Root returns JSON status
	mux.HandleFunc("GET /", repo.Infra.RootStatus)

	// Apply middleware chain (order: outer to inner)
	var h http.Handler = mux

	// Request logging (if logger provided)
	if opts.Logger != nil {
		h = middleware.RequestLogger(opts.Logger)(h)
	}

	// Request ID (always applied)
	h = middleware.RequestID(h)

	// CORS (always applied for API clients)
	h = middleware.CORS(h)

	return h
}
