package store

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mandalnilabja/agentgate/internal/storage"
	"github.com/mandalnilabja/agentgate/internal/transport/http/handler/shared"
)

// saveCredentialRequest is the body of PUT /api/credentials/{id}.
type saveCredentialRequest struct {
	DisplayName string            `json:"display_name,omitempty"`
	Fields      map[string]string `json:"fields"`
}

// ListCredentials handles GET /api/credentials.
// Returns stored credentials with secret values masked.
func (h *Handlers) ListCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := h.Store.ListCredentials()
	if err != nil {
		h.Logger.Error("failed to list credentials", "error", err)
		shared.WriteJSONError(w, "failed to list credentials", http.StatusInternalServerError)
		return
	}

	previews := make([]*storage.CredentialPreview, 0, len(creds))
	for _, cred := range creds {
		previews = append(previews, cred.ToPreview())
	}

	shared.WriteJSON(w, map[string]any{
		"credentials": previews,
		"count":       len(previews),
	}, http.StatusOK)
}

// SaveCredential handles PUT /api/credentials/{id}.
// Creates or replaces the credential under the given service ID.
func (h *Handlers) SaveCredential(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		shared.WriteJSONError(w, "credential id is required", http.StatusBadRequest)
		return
	}

	var req saveCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Fields) == 0 {
		shared.WriteJSONError(w, "at least one field value is required", http.StatusBadRequest)
		return
	}
	for key, value := range req.Fields {
		if strings.TrimSpace(key) == "" || strings.TrimSpace(value) == "" {
			shared.WriteJSONError(w, "field names and values must be non-empty", http.StatusBadRequest)
			return
		}
	}

	displayName := req.DisplayName
	if displayName == "" {
		if existing, err := h.Store.GetCredential(id); err == nil {
			displayName = existing.DisplayName
		} else {
			displayName = id
		}
	}

	cred := &storage.Credential{
		ID:          id,
		DisplayName: displayName,
		Fields:      req.Fields,
	}
	if err := h.Store.SaveCredential(cred); err != nil {
		if errors.Is(err, storage.ErrInvalidInput) {
			shared.WriteJSONError(w, "invalid credential", http.StatusBadRequest)
			return
		}
		h.Logger.Error("failed to save credential", "id", id, "error", err)
		shared.WriteJSONError(w, "failed to save credential", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("credential saved", "id", id)
	shared.WriteJSON(w, map[string]string{"status": "saved", "id": id}, http.StatusOK)
}

// DeleteCredential handles DELETE /api/credentials/{id}.
func (h *Handlers) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		shared.WriteJSONError(w, "credential id is required", http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteCredential(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			shared.WriteJSONError(w, "credential not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to delete credential", "id", id, "error", err)
		shared.WriteJSONError(w, "failed to delete credential", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("credential deleted", "id", id)
	shared.WriteJSON(w, map[string]string{"status": "deleted", "id": id}, http.StatusOK)
}
