package connect

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mandalnilabja/agentgate/internal/template"
)

// errTierSkipped marks a tier whose precondition is unmet (no agent identity,
// no legacy rows). Distinct from a backend failure only for logging.
var errTierSkipped = errors.New("tier skipped")

// Request describes one resolution: which agent, which template to fall back
// to, and the caller's last known row state for offline degradation.
type Request struct {
	// AgentPath is the concrete agent identity, if one exists.
	AgentPath string

	// TemplateKey selects the static template for tiers 2 and 4.
	TemplateKey string

	// LegacyRows is the caller-supplied last known state, used only when the
	// store is unreachable.
	LegacyRows []Row
}

// Resolver produces the authoritative credential row list for an agent by
// walking an ordered cascade of sources. Resolution never fails outwardly:
// the static template tier always succeeds.
type Resolver struct {
	backend  Backend
	registry *template.Registry
	logger   *slog.Logger
}

// NewResolver creates a resolver over the given store and template registry.
func NewResolver(backend Backend, registry *template.Registry, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{backend: backend, registry: registry, logger: logger}
}

// tier is one fallible source of row state. Exactly one tier's output is
// used per resolution; there is no merging across tiers.
type tier struct {
	name string
	run  func(ctx context.Context, req Request) ([]Row, error)
}

// Resolve walks the cascade in strict order and returns the first tier's
// output that succeeds. The final tier cannot fail.
func (r *Resolver) Resolve(ctx context.Context, req Request) []Row {
	tiers := []tier{
		{name: "agent-requirements", run: r.agentRequirements},
		{name: "stored-credentials", run: r.storedCredentials},
		{name: "legacy-rows", run: r.legacyRows},
	}

	for _, t := range tiers {
		rows, err := t.run(ctx, req)
		if err == nil {
			return rows
		}
		if !errors.Is(err, errTierSkipped) {
			r.logger.Debug("resolution tier failed", "tier", t.name, "error", err)
		}
	}

	return r.staticTemplate(req)
}

// agentRequirements queries the store for a concrete agent's declared
// requirements. Every returned row is required; connected state is the
// store-reported availability.
func (r *Resolver) agentRequirements(ctx context.Context, req Request) ([]Row, error) {
	if req.AgentPath == "" {
		return nil, errTierSkipped
	}

	reqs, err := r.backend.CheckAgentRequirements(ctx, req.AgentPath)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(reqs))
	for _, q := range reqs {
		key := q.CredentialKey
		if key == "" {
			key = DefaultCredentialKey
		}
		name := q.CredentialName
		if name == "" {
			name = q.CredentialID
		}
		rows = append(rows, Row{
			ID:            q.CredentialID,
			DisplayName:   name,
			Description:   q.Description,
			Icon:          "key",
			Required:      true,
			Connected:     q.Available,
			CredentialKey: key,
			OAuthBacked:   q.OAuthSupported,
		})
	}
	return rows, nil
}

// storedCredentials intersects the store's credential list against the
// static template: a template entry is connected iff its ID is stored.
func (r *Resolver) storedCredentials(ctx context.Context, req Request) ([]Row, error) {
	stored, err := r.backend.ListStoredCredentials(ctx)
	if err != nil {
		return nil, err
	}

	storedIDs := make(map[string]bool, len(stored))
	for _, s := range stored {
		storedIDs[s.CredentialID] = true
	}

	defs := r.registry.Lookup(req.TemplateKey)
	rows := make([]Row, 0, len(defs))
	for _, def := range defs {
		rows = append(rows, Row{
			ID:            def.ID,
			DisplayName:   def.DisplayName,
			Description:   def.Description,
			Icon:          def.Icon,
			Required:      def.Required,
			Connected:     storedIDs[def.ID],
			CredentialKey: DefaultCredentialKey,
		})
	}
	return rows, nil
}

// legacyRows trusts the caller's last known state as-is. Only reached when
// both store calls have failed; there is no backend to confirm against.
func (r *Resolver) legacyRows(_ context.Context, req Request) ([]Row, error) {
	if len(req.LegacyRows) == 0 {
		return nil, errTierSkipped
	}

	rows := make([]Row, 0, len(req.LegacyRows))
	for _, legacy := range req.LegacyRows {
		row := legacy
		if row.CredentialKey == "" {
			row.CredentialKey = DefaultCredentialKey
		}
		row.OAuthBacked = false
		rows = append(rows, row)
	}
	return rows, nil
}

// staticTemplate is the terminal tier: template definitions with every row
// disconnected. Always succeeds so the panel never renders blank.
func (r *Resolver) staticTemplate(req Request) []Row {
	defs := r.registry.Lookup(req.TemplateKey)
	rows := make([]Row, 0, len(defs))
	for _, def := range defs {
		rows = append(rows, Row{
			ID:            def.ID,
			DisplayName:   def.DisplayName,
			Description:   def.Description,
			Icon:          def.Icon,
			Required:      def.Required,
			CredentialKey: DefaultCredentialKey,
		})
	}
	return rows
}
