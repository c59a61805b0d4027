// Package gateway provides connect.Backend implementations: an HTTP client
// for a remote credential store and an in-process adapter over local storage.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mandalnilabja/agentgate/internal/connect"
)

const defaultTimeout = 10 * time.Second

// Client talks to a running credential store over HTTP. All failures are
// wrapped in connect.ErrStoreUnavailable so callers can treat the store as a
// single fallible collaborator.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a store client for the given base URL. The client owns
// its timeout; callers pass a context only for cancellation.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// WithToken sets the bearer token sent on every request. Required for
// mutating operations when the store has an admin password configured.
func (c *Client) WithToken(token string) *Client {
	c.token = token
	return c
}

type credentialsResponse struct {
	Credentials []struct {
		ID string `json:"id"`
	} `json:"credentials"`
}

type requirementsResponse struct {
	AgentPath    string                `json:"agent_path"`
	Requirements []connect.Requirement `json:"requirements"`
}

type saveCredentialRequest struct {
	Fields map[string]string `json:"fields"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// ListStoredCredentials implements connect.Backend.
func (c *Client) ListStoredCredentials(ctx context.Context) ([]connect.StoredCredential, error) {
	var resp credentialsResponse
	if err := c.do(ctx, http.MethodGet, "/api/credentials", nil, &resp); err != nil {
		return nil, err
	}

	stored := make([]connect.StoredCredential, 0, len(resp.Credentials))
	for _, cred := range resp.Credentials {
		stored = append(stored, connect.StoredCredential{CredentialID: cred.ID})
	}
	return stored, nil
}

// CheckAgentRequirements implements connect.Backend. An agent unknown to the
// store is reported as an error so resolution can fall through.
func (c *Client) CheckAgentRequirements(ctx context.Context, agentPath string) ([]connect.Requirement, error) {
	path := "/api/agents/requirements?path=" + url.QueryEscape(agentPath)

	var resp requirementsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Requirements, nil
}

// SaveCredential implements connect.Backend.
func (c *Client) SaveCredential(ctx context.Context, credentialID string, fields map[string]string) error {
	body := saveCredentialRequest{Fields: fields}
	return c.do(ctx, http.MethodPut, "/api/credentials/"+url.PathEscape(credentialID), body, nil)
}

// DeleteCredential implements connect.Backend.
func (c *Client) DeleteCredential(ctx context.Context, credentialID string) error {
	return c.do(ctx, http.MethodDelete, "/api/credentials/"+url.PathEscape(credentialID), nil, nil)
}

// do performs one request against the store and decodes the JSON response
// into out (when non-nil). Transport failures and non-2xx statuses are both
// wrapped in connect.ErrStoreUnavailable.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", connect.ErrStoreUnavailable, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", connect.ErrStoreUnavailable, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("store request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", connect.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%w: %s (status %d)", connect.ErrStoreUnavailable, apiErr.Error.Message, resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d", connect.ErrStoreUnavailable, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", connect.ErrStoreUnavailable, err)
		}
	}
	return nil
}
