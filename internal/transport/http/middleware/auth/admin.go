// Package auth provides authentication middleware for HTTP routes.
package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/mandalnilabja/agentgate/internal/storage"
	"github.com/mandalnilabja/agentgate/internal/transport/http/handler/shared"
)

// verifiedTokenTTL bounds how long a password bearer token skips argon2
// verification via the cache.
const verifiedTokenTTL = 5 * time.Minute

// AdminAuth middleware protects mutating routes using the stored password
// hash. A Bearer token is accepted either as a session token issued by login
// or as the admin password itself; verified passwords are cached to avoid
// re-hashing on every request. When no admin password is configured all
// requests pass (localhost-first design).
func AdminAuth(store storage.Storage, sessions *SessionStore, cache *ristretto.Cache[string, bool]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			has, err := store.HasAdminPassword()
			if err != nil {
				shared.WriteUnauthorized(w, "server error")
				return
			}
			if !has {
				next.ServeHTTP(w, r)
				return
			}

			// Extract Bearer token
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				shared.WriteUnauthorized(w, "authorization required")
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			if sessions != nil && sessions.Get(token) != nil {
				next.ServeHTTP(w, r)
				return
			}

			if cache != nil {
				if ok, found := cache.Get(token); found && ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			hash, err := store.GetAdminPasswordHash()
			if err != nil {
				shared.WriteUnauthorized(w, "server error")
				return
			}

			valid, err := storage.VerifyPassword(token, hash)
			if err != nil || !valid {
				shared.WriteUnauthorized(w, "invalid credentials")
				return
			}

			if cache != nil {
				cache.SetWithTTL(token, true, 1, verifiedTokenTTL)
			}
			next.ServeHTTP(w, r)
		})
	}
}
