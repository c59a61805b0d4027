package store

import (
	"encoding/json"
	"net/http"

	"github.com/mandalnilabja/agentgate/internal/storage"
	"github.com/mandalnilabja/agentgate/internal/transport/http/handler/shared"
)

type loginRequest struct {
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Login handles POST /api/admin/login.
// Exchanges the admin password for a session token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	hash, err := h.Store.GetAdminPasswordHash()
	if err != nil {
		h.Logger.Error("failed to load admin password hash", "error", err)
		shared.WriteJSONError(w, "server error", http.StatusInternalServerError)
		return
	}
	if hash == "" {
		shared.WriteJSONError(w, "admin password not configured", http.StatusConflict)
		return
	}

	valid, err := storage.VerifyPassword(req.Password, hash)
	if err != nil || !valid {
		shared.WriteJSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	session := h.Sessions.Create()
	shared.WriteJSON(w, map[string]any{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
	}, http.StatusOK)
}

// ChangeAdminPassword handles PUT /api/admin/password.
func (h *Handlers) ChangeAdminPassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !shared.IsValidAdminPassword(req.NewPassword) {
		shared.WriteJSONError(w, "password must be alphanumeric with at least 8 characters", http.StatusBadRequest)
		return
	}

	hash, err := h.Store.GetAdminPasswordHash()
	if err != nil {
		h.Logger.Error("failed to load admin password hash", "error", err)
		shared.WriteJSONError(w, "server error", http.StatusInternalServerError)
		return
	}
	if hash != "" {
		valid, err := storage.VerifyPassword(req.CurrentPassword, hash)
		if err != nil || !valid {
			shared.WriteJSONError(w, "current password is incorrect", http.StatusUnauthorized)
			return
		}
	}

	newHash, err := storage.HashPassword(req.NewPassword, nil)
	if err != nil {
		h.Logger.Error("failed to hash password", "error", err)
		shared.WriteJSONError(w, "server error", http.StatusInternalServerError)
		return
	}
	if err := h.Store.SetAdminPasswordHash(newHash); err != nil {
		h.Logger.Error("failed to save password", "error", err)
		shared.WriteJSONError(w, "server error", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("admin password changed")
	shared.WriteJSON(w, map[string]string{"status": "updated"}, http.StatusOK)
}
