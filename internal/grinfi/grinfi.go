// Package grinfi implements a minimal client for the Grinfi CRM REST API,
// covering the operations that the MCP tools expose.  Entities are owned and
// defined by the upstream service; the client treats responses as untyped
// JSON and never caches or mutates local copies.
package grinfi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the fixed origin of the Grinfi REST API.
const DefaultBaseURL = "https://api.grinfi.io"

// ErrNoToken is returned by New when the API credential is missing.  This is
// a configuration error and must surface before any network call is made.
var ErrNoToken = errors.New("grinfi: API token is empty")

// Client is the Grinfi API client.  All methods are safe for concurrent use.
type Client struct {
	cl      *http.Client
	baseURL string
	token   string
	lim     *rate.Limiter
	logger  *slog.Logger

	// number of concurrent lead lookups during the unread scan.  1 means
	// strictly sequential, which is the default: it bounds upstream load at
	// the cost of end-to-end latency.
	unreadWorkers int
}

// Option is the signature of a Client option-setting function.
type Option func(*Client)

// WithBaseURL overrides the upstream origin.  Used by tests and staging
// deployments.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hcl *http.Client) Option {
	return func(c *Client) {
		if hcl != nil {
			c.cl = hcl
		}
	}
}

// WithLimiter sets the upstream request limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.lim = l
		}
	}
}

// WithLogger sets the logger.  A nil logger falls back to slog.Default.
func WithLogger(lg *slog.Logger) Option {
	return func(c *Client) {
		if lg != nil {
			c.logger = lg
		}
	}
}

// WithUnreadWorkers sets the number of concurrent lead lookups during the
// unread-conversation scan.  n < 1 is reset to 1 (sequential).
func WithUnreadWorkers(n int) Option {
	return func(c *Client) {
		if n < 1 {
			n = 1
		}
		c.unreadWorkers = n
	}
}

// New creates a Grinfi API client.  token is the bearer credential; an empty
// token is a fatal configuration error.
func New(token string, opt ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	c := &Client{
		cl:            &http.Client{},
		baseURL:       DefaultBaseURL,
		token:         token,
		lim:           NewLimiter(TierStandard, defBurst, 0),
		logger:        slog.Default(),
		unreadWorkers: 1,
	}
	for _, o := range opt {
		o(c)
	}
	return c, nil
}

// APIError is returned when the upstream responds with a non-2xx status.  It
// carries the status and the raw response body verbatim; the client never
// retries.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("grinfi: upstream returned %s: %s", e.Status, e.Body)
}

// ack is the synthetic success object substituted for 204 No Content
// responses, so that every call yields a JSON value.
var ack = map[string]any{
	"success": true,
	"message": "operation completed successfully (no content returned)",
}

// call issues a single request and decodes the response as loosely typed
// JSON.  204 maps to a synthetic acknowledgement; a 2xx body that is not
// valid JSON is wrapped as {"rawResponse": ...} rather than failing.
func (c *Client) call(ctx context.Context, method, path string, q url.Values, body any) (any, error) {
	raw, status, err := c.do(ctx, method, path, q, body)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return ack, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return map[string]any{"rawResponse": string(raw)}, nil
	}
	return v, nil
}

// get issues a GET request and decodes the response into dst.  Used by the
// aggregation code paths that need typed access to the response.
func (c *Client) get(ctx context.Context, path string, p *Params, dst any) error {
	raw, status, err := c.do(ctx, http.MethodGet, path, p.Values(), nil)
	if err != nil {
		return err
	}
	if status == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("grinfi: decode %s: %w", path, err)
	}
	return nil
}

// do performs the HTTP exchange: bearer auth, JSON body, query string with
// unset values already dropped by Params.  Returns the raw body and status.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any) ([]byte, int, error) {
	if err := c.lim.Wait(ctx); err != nil {
		return nil, 0, err
	}
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("grinfi: marshal %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.cl.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("grinfi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("grinfi: read response of %s %s: %w", method, path, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, resp.StatusCode, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(data),
		}
	}
	return data, resp.StatusCode, nil
}
