package store

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mandalnilabja/agentgate/internal/storage"
	"github.com/mandalnilabja/agentgate/internal/transport/http/handler/shared"
)

// registerAgentRequest is the body of POST /api/agents. Requirements may be
// omitted when a template key is given; required template rows are used.
type registerAgentRequest struct {
	Path         string                    `json:"path"`
	Name         string                    `json:"name"`
	TemplateKey  string                    `json:"template_key"`
	Requirements []storage.RequirementSpec `json:"requirements,omitempty"`
}

// requirementRow is one entry of a requirements response, a declared
// requirement joined with live credential availability.
type requirementRow struct {
	CredentialID   string `json:"credential_id"`
	CredentialName string `json:"credential_name"`
	Description    string `json:"description"`
	CredentialKey  string `json:"credential_key,omitempty"`
	Available      bool   `json:"available"`
	OAuthSupported bool   `json:"oauth_supported"`
}

// RegisterAgent handles POST /api/agents.
func (h *Handlers) RegisterAgent(w http.ResponseWriter, r *http.Request) {
	var req registerAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Path = strings.TrimSpace(req.Path)
	if req.Path == "" {
		shared.WriteJSONError(w, "agent path is required", http.StatusBadRequest)
		return
	}

	requirements := req.Requirements
	if len(requirements) == 0 && req.TemplateKey != "" {
		requirements = h.requirementsFromTemplate(req.TemplateKey)
	}

	agent := &storage.Agent{
		Path:         req.Path,
		Name:         req.Name,
		TemplateKey:  req.TemplateKey,
		Requirements: requirements,
	}
	if err := h.Store.RegisterAgent(agent); err != nil {
		h.Logger.Error("failed to register agent", "path", req.Path, "error", err)
		shared.WriteJSONError(w, "failed to register agent", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("agent registered", "path", req.Path, "template_key", req.TemplateKey)
	shared.WriteJSON(w, map[string]string{"status": "registered", "path": req.Path}, http.StatusCreated)
}

// GetRequirements handles GET /api/agents/requirements?path=.
// Joins the agent's declared requirements with stored credential availability.
func (h *Handlers) GetRequirements(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("path"))
	if path == "" {
		shared.WriteJSONError(w, "path query parameter is required", http.StatusBadRequest)
		return
	}

	agent, err := h.Store.GetAgent(path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			shared.WriteJSONError(w, "agent not registered", http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to load agent", "path", path, "error", err)
		shared.WriteJSONError(w, "failed to load agent", http.StatusInternalServerError)
		return
	}

	rows := make([]requirementRow, 0, len(agent.Requirements))
	for _, spec := range agent.Requirements {
		available := false
		if _, err := h.Store.GetCredential(spec.CredentialID); err == nil {
			available = true
		}
		rows = append(rows, requirementRow{
			CredentialID:   spec.CredentialID,
			CredentialName: spec.CredentialName,
			Description:    spec.Description,
			CredentialKey:  spec.CredentialKey,
			Available:      available,
			OAuthSupported: spec.OAuthSupported,
		})
	}

	shared.WriteJSON(w, map[string]any{
		"agent_path":   agent.Path,
		"requirements": rows,
	}, http.StatusOK)
}

// requirementsFromTemplate derives requirement specs from the required rows
// of a static template.
func (h *Handlers) requirementsFromTemplate(templateKey string) []storage.RequirementSpec {
	if h.Registry == nil {
		return nil
	}

	var specs []storage.RequirementSpec
	for _, def := range h.Registry.Lookup(templateKey) {
		if !def.Required {
			continue
		}
		specs = append(specs, storage.RequirementSpec{
			CredentialID:   def.ID,
			CredentialName: def.DisplayName,
			Description:    def.Description,
		})
	}
	return specs
}
