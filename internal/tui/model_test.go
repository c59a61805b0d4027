package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mandalnilabja/agentgate/internal/connect"
	"github.com/mandalnilabja/agentgate/internal/template"
)

// downBackend fails both store calls so resolution falls to the static
// template with every row disconnected.
type downBackend struct{}

func (downBackend) ListStoredCredentials(ctx context.Context) ([]connect.StoredCredential, error) {
	return nil, connect.ErrStoreUnavailable
}

func (downBackend) CheckAgentRequirements(ctx context.Context, agentPath string) ([]connect.Requirement, error) {
	return nil, connect.ErrStoreUnavailable
}

func (downBackend) SaveCredential(ctx context.Context, credentialID string, fields map[string]string) error {
	return connect.ErrStoreUnavailable
}

func (downBackend) DeleteCredential(ctx context.Context, credentialID string) error {
	return connect.ErrStoreUnavailable
}

// recordingBackend accepts saves and reflects them back through the
// stored-credentials listing, so a refresh shows the row connected.
type recordingBackend struct {
	saveCalls  int
	lastID     string
	lastFields map[string]string
	stored     []string
}

func (b *recordingBackend) ListStoredCredentials(ctx context.Context) ([]connect.StoredCredential, error) {
	creds := make([]connect.StoredCredential, 0, len(b.stored))
	for _, id := range b.stored {
		creds = append(creds, connect.StoredCredential{CredentialID: id})
	}
	return creds, nil
}

func (b *recordingBackend) CheckAgentRequirements(ctx context.Context, agentPath string) ([]connect.Requirement, error) {
	return nil, connect.ErrStoreUnavailable
}

func (b *recordingBackend) SaveCredential(ctx context.Context, credentialID string, fields map[string]string) error {
	b.saveCalls++
	b.lastID = credentialID
	b.lastFields = fields
	b.stored = append(b.stored, credentialID)
	return nil
}

func (b *recordingBackend) DeleteCredential(ctx context.Context, credentialID string) error {
	for i, id := range b.stored {
		if id == credentialID {
			b.stored = append(b.stored[:i], b.stored[i+1:]...)
			return nil
		}
	}
	return connect.ErrStoreUnavailable
}

func newTestModel(t *testing.T, templateKey string) panelModel {
	t.Helper()

	backend := downBackend{}
	registry := template.NewRegistry()
	resolver := connect.NewResolver(backend, registry, nil)
	session := connect.NewSession(resolver, backend, connect.Request{TemplateKey: templateKey}, connect.SessionOptions{})
	session.Open(context.Background())

	return newPanelModel(session, templateKey)
}

func TestViewShowsRowsAndGateBanner(t *testing.T) {
	m := newTestModel(t, "meeting-notes")

	view := m.View()
	if !strings.Contains(view, "Slack") || !strings.Contains(view, "Google Calendar") {
		t.Errorf("expected template rows in view, got:\n%s", view)
	}
	if !strings.Contains(view, "required") {
		t.Errorf("expected required badge in view, got:\n%s", view)
	}
	if !strings.Contains(view, "0 of 2 required credentials connected") {
		t.Errorf("expected gate banner in view, got:\n%s", view)
	}
}

func TestViewVacuousGate(t *testing.T) {
	m := newTestModel(t, "fitness-coach")

	view := m.View()
	if !strings.Contains(view, "Ready to proceed") {
		t.Errorf("expected passing gate banner with no required rows, got:\n%s", view)
	}
}

func TestCursorNavigation(t *testing.T) {
	m := newTestModel(t, "inbox-management")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(panelModel)
	if m.cursor != 1 {
		t.Errorf("expected cursor 1 after down, got %d", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(panelModel)
	if m.cursor != 0 {
		t.Errorf("expected cursor 0 after up, got %d", m.cursor)
	}

	// Cursor does not move past the first row
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(panelModel)
	if m.cursor != 0 {
		t.Errorf("expected cursor pinned at 0, got %d", m.cursor)
	}
}

func TestEnterOpensSecretForm(t *testing.T) {
	m := newTestModel(t, "security-research")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(panelModel)

	if m.mode != viewEdit || m.form == nil {
		t.Fatal("expected edit mode with form after enter on disconnected row")
	}
	if _, _, editing := m.session.Editing(); !editing {
		t.Error("expected session to be editing")
	}
}

// pump feeds a message through Update and keeps executing returned commands
// the way the program loop would, until the model leaves edit mode or the
// message queue drains.
func pump(t *testing.T, m panelModel, msg tea.Msg) panelModel {
	t.Helper()

	queue := []tea.Msg{msg}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 16 {
			t.Fatal("message loop did not settle")
		}

		cur := queue[0]
		queue = queue[1:]
		if cur == nil {
			continue
		}
		if batch, ok := cur.(tea.BatchMsg); ok {
			for _, cmd := range batch {
				if cmd != nil {
					queue = append(queue, cmd())
				}
			}
			continue
		}

		next, cmd := m.Update(cur)
		m = next.(panelModel)
		if m.mode == viewPanel && m.form == nil {
			break
		}
		if cmd != nil {
			queue = append(queue, cmd())
		}
	}
	return m
}

func TestTypedValueReachesBackendOnSubmit(t *testing.T) {
	backend := &recordingBackend{}
	registry := template.NewRegistry()
	resolver := connect.NewResolver(backend, registry, nil)
	session := connect.NewSession(resolver, backend, connect.Request{TemplateKey: "security-research"}, connect.SessionOptions{})
	session.Open(context.Background())

	m := newPanelModel(session, "security-research")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(panelModel)
	if m.mode != viewEdit || m.form == nil {
		t.Fatal("expected edit form after enter on disconnected row")
	}
	m.form.Init()

	const secret = "shodan-key-123"
	for _, r := range secret {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(panelModel)
	}

	m = pump(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if backend.saveCalls != 1 {
		t.Fatalf("expected one save call, got %d", backend.saveCalls)
	}
	if backend.lastID != "shodan" {
		t.Errorf("expected save for shodan, got %q", backend.lastID)
	}
	if got := backend.lastFields[connect.DefaultCredentialKey]; got != secret {
		t.Errorf("expected typed value under %q, got %q", connect.DefaultCredentialKey, got)
	}

	if m.mode != viewPanel {
		t.Errorf("expected panel mode after successful save, got %v", m.mode)
	}
	if !m.session.Gate().AllRequiredMet {
		t.Error("expected gate to pass after connecting the required credential")
	}
}

func TestProceedBlockedUntilGatePasses(t *testing.T) {
	m := newTestModel(t, "security-research")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = next.(panelModel)

	if m.proceeded {
		t.Error("expected proceed to be blocked with required row disconnected")
	}
	if cmd != nil {
		t.Error("expected no quit command while gate fails")
	}
	if m.status == "" {
		t.Error("expected a status message explaining the block")
	}
}

func TestProceedWithVacuousGate(t *testing.T) {
	m := newTestModel(t, "fitness-coach")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = next.(panelModel)

	if !m.proceeded {
		t.Error("expected proceed with vacuously passing gate")
	}
	if cmd == nil {
		t.Error("expected quit command after proceeding")
	}
}
