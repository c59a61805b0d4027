package connect

// DefaultCredentialKey is the field name the store expects when neither the
// backend nor a template names one.
const DefaultCredentialKey = "api_key"

// Row is the per-render view of one credential's connection state. Rows are
// rebuilt fresh on every resolution and never mutated once superseded.
type Row struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Required    bool   `json:"required"`
	Connected   bool   `json:"connected"`

	// CredentialKey is the field name used when saving a value for this row.
	CredentialKey string `json:"credential_key"`

	// OAuthBacked rows connect through an external authorization redirect
	// rather than a pasted secret.
	OAuthBacked bool `json:"oauth_backed"`
}

// cloneRows copies a row list so callers can never alias session state.
func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	return out
}
