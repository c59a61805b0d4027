package gateway

import "net/url"

// AuthorizeURL builds the external authorization URL for an OAuth-backed
// credential. The flow itself happens in the browser; the panel only hands
// the operator this URL.
func AuthorizeURL(base, credentialID string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("service", credentialID)
	u.RawQuery = q.Encode()
	return u.String()
}
