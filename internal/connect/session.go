package connect

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Common errors returned by session operations
var (
	ErrOperationInFlight = errors.New("another credential operation is in flight")
	ErrRowNotFound       = errors.New("credential row not found")
	ErrAlreadyConnected  = errors.New("credential is already connected")
	ErrNotConnected      = errors.New("credential is not connected")
	ErrNotEditing        = errors.New("no credential is being edited")
	ErrEmptyValue        = errors.New("credential value must not be empty")
)

// SessionOptions configures the callbacks a session fires.
type SessionOptions struct {
	// OnChanged is invoked exactly once per successful save or delete.
	OnChanged func()

	// LegacyToggle is the caller-supplied fallback used when a delete fails
	// because no authoritative store is reachable.
	LegacyToggle func(credentialID string, connected bool)

	// Authorize performs the external authorization side effect for an
	// OAuth-backed row (open the authorization target). The row stays
	// disconnected until the operator refreshes.
	Authorize func(row Row)
}

// Session drives the per-credential connection state machine for one open
// connect panel. It owns the resolved row list and an optional single
// editing target; all mutating operations are serialized through a shared
// saving flag. The session never flips a row to connected on its own;
// refreshed truth always comes from the resolver.
type Session struct {
	resolver *Resolver
	backend  Backend
	req      Request
	opts     SessionOptions

	mu        sync.Mutex
	rows      []Row
	editingID string
	draft     string
	saving    bool
	errRowID  string
	errText   string

	// gen guards against stale backend responses mutating a session that
	// was reset or reopened while the call was in flight.
	gen int
}

// NewSession creates a session for one agent's connect panel.
func NewSession(resolver *Resolver, backend Backend, req Request, opts SessionOptions) *Session {
	return &Session{
		resolver: resolver,
		backend:  backend,
		req:      req,
		opts:     opts,
	}
}

// Open resets any prior editing state and resolves the row list. Called on
// every panel open so no stale draft survives across openings.
func (s *Session) Open(ctx context.Context) {
	s.mu.Lock()
	s.resetLocked()
	gen := s.gen
	s.mu.Unlock()

	rows := s.resolver.Resolve(ctx, s.req)

	s.mu.Lock()
	if s.gen == gen {
		s.rows = rows
	}
	s.mu.Unlock()
}

// Close discards editing state; a response resolving after Close is dropped.
func (s *Session) Close() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
}

// resetLocked clears editing state and bumps the generation counter.
func (s *Session) resetLocked() {
	s.editingID = ""
	s.draft = ""
	s.errRowID = ""
	s.errText = ""
	s.gen++
}

// Rows returns a copy of the current row list.
func (s *Session) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRows(s.rows)
}

// Gate evaluates the required-credentials gate over the current rows.
func (s *Session) Gate() GateResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Evaluate(s.rows)
}

// Editing reports the row being edited and its draft, if any.
func (s *Session) Editing() (rowID, draft string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID, s.draft, s.editingID != ""
}

// Saving reports whether a mutating operation is in flight.
func (s *Session) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// RowError returns the row-scoped error from the last failed save.
func (s *Session) RowError() (rowID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errRowID, s.errText
}

// BeginConnect starts connecting a disconnected row. A non-OAuth row enters
// editing, implicitly cancelling any other edit. An OAuth-backed row triggers
// the external authorization side effect and stays disconnected.
func (s *Session) BeginConnect(rowID string) error {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return ErrOperationInFlight
	}

	row, ok := s.findLocked(rowID)
	if !ok {
		s.mu.Unlock()
		return ErrRowNotFound
	}
	if row.Connected {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}

	s.errRowID = ""
	s.errText = ""

	if row.OAuthBacked {
		authorize := s.opts.Authorize
		s.mu.Unlock()
		if authorize != nil {
			authorize(row)
		}
		return nil
	}

	// Last edit wins; any other draft is discarded.
	s.editingID = rowID
	s.draft = ""
	s.mu.Unlock()
	return nil
}

// SetDraft replaces the draft value of the current edit.
func (s *Session) SetDraft(value string) {
	s.mu.Lock()
	if s.editingID != "" {
		s.draft = value
	}
	s.mu.Unlock()
}

// Cancel discards the draft and leaves editing. No store call is made.
func (s *Session) Cancel() {
	s.mu.Lock()
	s.editingID = ""
	s.draft = ""
	s.mu.Unlock()
}

// Save stores the drafted value under the row's credential key. On success
// the edit is cleared, the change callback fires once, and the row list is
// re-resolved so connected state reflects store truth rather than a guess.
// On failure the row stays in editing with the draft preserved and a
// row-scoped error set.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return ErrOperationInFlight
	}
	if s.editingID == "" {
		s.mu.Unlock()
		return ErrNotEditing
	}

	value := strings.TrimSpace(s.draft)
	if value == "" {
		s.mu.Unlock()
		return ErrEmptyValue
	}

	rowID := s.editingID
	row, ok := s.findLocked(rowID)
	if !ok {
		s.editingID = ""
		s.draft = ""
		s.mu.Unlock()
		return ErrRowNotFound
	}

	s.saving = true
	gen := s.gen
	s.mu.Unlock()

	err := s.backend.SaveCredential(ctx, rowID, map[string]string{row.CredentialKey: value})

	s.mu.Lock()
	s.saving = false
	if s.gen != gen {
		// Panel was closed or reopened mid-flight; drop the outcome.
		s.mu.Unlock()
		return nil
	}

	if err != nil {
		s.errRowID = rowID
		s.errText = "Failed to save credential: " + err.Error()
		s.mu.Unlock()
		return err
	}

	s.editingID = ""
	s.draft = ""
	s.errRowID = ""
	s.errText = ""
	s.mu.Unlock()

	if s.opts.OnChanged != nil {
		s.opts.OnChanged()
	}
	s.refresh(ctx, gen)
	return nil
}

// Disconnect deletes a connected credential from the store. When the store
// is unreachable the caller's legacy toggle is invoked instead and the row
// is flipped locally. Degraded, not an error.
func (s *Session) Disconnect(ctx context.Context, rowID string) error {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return ErrOperationInFlight
	}

	row, ok := s.findLocked(rowID)
	if !ok {
		s.mu.Unlock()
		return ErrRowNotFound
	}
	if !row.Connected {
		s.mu.Unlock()
		return ErrNotConnected
	}

	s.saving = true
	gen := s.gen
	s.mu.Unlock()

	err := s.backend.DeleteCredential(ctx, rowID)

	s.mu.Lock()
	s.saving = false
	if s.gen != gen {
		s.mu.Unlock()
		return nil
	}

	if err != nil {
		// No authoritative store to mutate; trust the caller's local state.
		for i := range s.rows {
			if s.rows[i].ID == rowID {
				s.rows[i].Connected = false
			}
		}
		toggle := s.opts.LegacyToggle
		s.mu.Unlock()
		if toggle != nil {
			toggle(rowID, false)
		}
		return nil
	}
	s.mu.Unlock()

	if s.opts.OnChanged != nil {
		s.opts.OnChanged()
	}
	s.refresh(ctx, gen)
	return nil
}

// refresh re-resolves the row list after a successful mutation, discarding
// the result if the session was reset while resolving.
func (s *Session) refresh(ctx context.Context, gen int) {
	rows := s.resolver.Resolve(ctx, s.req)

	s.mu.Lock()
	if s.gen == gen {
		s.rows = rows
	}
	s.mu.Unlock()
}

// findLocked returns the row with the given ID. Caller holds s.mu.
func (s *Session) findLocked(rowID string) (Row, bool) {
	for _, row := range s.rows {
		if row.ID == rowID {
			return row, true
		}
	}
	return Row{}, false
}
