package revizto

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"golang.org/x/oauth2"

	"github.com/hashicorp-forge/revizto/pkg/revizto/tokenstore"
)

// Client calls the Revizto API on behalf of one user in one region.
// A Client is safe for concurrent use.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	oauth      *oauth2.Config
	store      tokenstore.Store
	log        hclog.Logger
	now        func() time.Time

	// refreshMu serializes token exchanges so concurrent calls refresh once.
	refreshMu sync.Mutex

	mu    sync.RWMutex
	creds *tokenstore.Credentials
}

// Option customizes a Client.
type Option func(*Client)

// WithTokenStore persists tokens through store instead of the file named by
// Config.TokenFile. Supplying a store enables persistence.
func WithTokenStore(store tokenstore.Store) Option {
	return func(c *Client) { c.store = store }
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(log hclog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient replaces the HTTP client built from the Config.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock sets the time source used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a client for cfg.Region. Zero fields in cfg take their values
// from DefaultConfig. When persistence is enabled, previously saved tokens
// for the region are loaded.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		baseURL: cfg.baseURL(),
		log:     hclog.NewNullLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("region", cfg.Region)

	if c.httpClient == nil {
		hc, err := cfg.NewHTTPClient()
		if err != nil {
			return nil, err
		}
		c.httpClient = hc
	}

	if c.store == nil && cfg.SaveToken {
		c.store = tokenstore.NewFileStore(afero.NewOsFs(), cfg.TokenFile)
	}

	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = c.baseURL + "/oauth2/authorize"
	}
	c.oauth = &oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  c.baseURL + "/oauth2",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	if cfg.Scope != "" {
		c.oauth.Scopes = strings.Fields(cfg.Scope)
	}

	if c.store != nil {
		creds, err := c.store.Load(cfg.Region)
		switch {
		case errors.Is(err, tokenstore.ErrNotFound):
			c.log.Debug("no saved tokens")
		case err != nil:
			return nil, fmt.Errorf("load saved tokens: %w", err)
		default:
			c.creds = creds
			c.log.Debug("loaded saved tokens", "expiry", creds.Expiry)
		}
	}

	return c, nil
}

// Region returns the configured region.
func (c *Client) Region() string {
	return c.cfg.Region
}

// BaseURL returns the API root, including the version prefix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ===================================================================
// Request plumbing
// ===================================================================

// request describes one API call.
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

// get issues a GET with optional query parameters.
func (c *Client) get(ctx context.Context, path string, q url.Values) (Response, error) {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: q})
}

// postJSON issues a POST with payload encoded as JSON.
func (c *Client) postJSON(ctx context.Context, path string, payload any) (Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(data),
		contentType: "application/json",
	})
}

// do sends r with the current access token and decodes the JSON response.
func (c *Client) do(ctx context.Context, r request) (Response, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	start := c.now()
	c.log.Debug("sending request", "method", r.method, "path", r.path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: request failed: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response: %w", r.method, r.path, err)
	}

	c.log.Debug("received response",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", c.now().Sub(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Method:     r.method,
			Path:       r.path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	out := Response{}
	if len(bytes.TrimSpace(body)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%s %s: failed to decode response: %w", r.method, r.path, err)
	}
	return out, nil
}

// pathf formats an API path, escaping each argument as a path segment.
func pathf(format string, args ...any) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(a))
	}
	return fmt.Sprintf(format, escaped...)
}
