package store

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mandalnilabja/agentgate/internal/storage"
	"github.com/mandalnilabja/agentgate/internal/template"
	"github.com/mandalnilabja/agentgate/internal/transport/http/middleware/auth"
)

func setupHandlers(t *testing.T) *Handlers {
	t.Helper()

	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(st, template.NewRegistry(), auth.NewSessionStore(time.Hour), logger)
}

func putCredential(t *testing.T, h *Handlers, id, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPut, "/api/credentials/"+id, strings.NewReader(body))
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.SaveCredential(rec, req)
	return rec
}

func TestSaveAndListCredentials(t *testing.T) {
	h := setupHandlers(t)

	rec := putCredential(t, h, "gmail", `{"fields":{"api_key":"ya29.very-secret-token"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/credentials", nil)
	listRec := httptest.NewRecorder()
	h.ListCredentials(listRec, req)

	var resp struct {
		Credentials []struct {
			ID     string            `json:"id"`
			Fields map[string]string `json:"fields"`
		} `json:"credentials"`
		Count int `json:"count"`
	}
	if err := json.NewDecoder(listRec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if resp.Count != 1 || len(resp.Credentials) != 1 {
		t.Fatalf("expected 1 credential, got %+v", resp)
	}
	if resp.Credentials[0].ID != "gmail" {
		t.Errorf("expected gmail, got %q", resp.Credentials[0].ID)
	}
	if masked := resp.Credentials[0].Fields["api_key"]; strings.Contains(masked, "very-secret") {
		t.Errorf("expected masked value, got %q", masked)
	}
}

func TestSaveCredentialValidation(t *testing.T) {
	h := setupHandlers(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"empty fields", `{"fields":{}}`},
		{"blank value", `{"fields":{"api_key":"   "}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := putCredential(t, h, "gmail", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestDeleteCredential(t *testing.T) {
	h := setupHandlers(t)

	putCredential(t, h, "gmail", `{"fields":{"api_key":"ya29.token"}}`)

	req := httptest.NewRequest(http.MethodDelete, "/api/credentials/gmail", nil)
	req.SetPathValue("id", "gmail")
	rec := httptest.NewRecorder()
	h.DeleteCredential(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/credentials/gmail", nil)
	req.SetPathValue("id", "gmail")
	h.DeleteCredential(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing credential, got %d", rec.Code)
	}
}

func TestRegisterAgentDerivesTemplateRequirements(t *testing.T) {
	h := setupHandlers(t)

	body := `{"path":"agents/inbox","name":"Inbox Agent","template_key":"inbox-management"}`
	req := httptest.NewRequest(http.MethodPost, "/api/agents", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.RegisterAgent(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	agent, err := h.Store.GetAgent("agents/inbox")
	if err != nil {
		t.Fatalf("GetAgent failed: %v", err)
	}
	// Only the required template row becomes a requirement
	if len(agent.Requirements) != 1 || agent.Requirements[0].CredentialID != "gmail" {
		t.Errorf("unexpected derived requirements: %+v", agent.Requirements)
	}
}

func TestGetRequirementsAvailability(t *testing.T) {
	h := setupHandlers(t)

	registerBody := `{"path":"agents/recon","template_key":"security-research"}`
	req := httptest.NewRequest(http.MethodPost, "/api/agents", strings.NewReader(registerBody))
	h.RegisterAgent(httptest.NewRecorder(), req)

	fetch := func() []requirementRow {
		req := httptest.NewRequest(http.MethodGet, "/api/agents/requirements?path=agents/recon", nil)
		rec := httptest.NewRecorder()
		h.GetRequirements(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Requirements []requirementRow `json:"requirements"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode requirements: %v", err)
		}
		return resp.Requirements
	}

	rows := fetch()
	if len(rows) != 1 || rows[0].CredentialID != "shodan" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if rows[0].Available {
		t.Error("expected shodan unavailable before save")
	}

	putCredential(t, h, "shodan", `{"fields":{"api_key":"shodan-key-123"}}`)

	rows = fetch()
	if !rows[0].Available {
		t.Error("expected shodan available after save")
	}
}

func TestGetRequirementsErrors(t *testing.T) {
	h := setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/agents/requirements", nil)
	rec := httptest.NewRecorder()
	h.GetRequirements(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing path, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/agents/requirements?path=agents/unknown", nil)
	rec = httptest.NewRecorder()
	h.GetRequirements(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unregistered agent, got %d", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	h := setupHandlers(t)

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		return rec
	}

	if rec := login(`{"password":"whatever1"}`); rec.Code != http.StatusConflict {
		t.Errorf("expected 409 without configured password, got %d", rec.Code)
	}

	hash, _ := storage.HashPassword("adminsecret1", nil)
	if err := h.Store.SetAdminPasswordHash(hash); err != nil {
		t.Fatalf("SetAdminPasswordHash failed: %v", err)
	}

	if rec := login(`{"password":"wrongpassword"}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", rec.Code)
	}

	rec := login(`{"password":"adminsecret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if h.Sessions.Get(resp.Token) == nil {
		t.Error("expected issued token to resolve to a session")
	}
}
