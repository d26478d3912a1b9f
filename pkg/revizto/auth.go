package revizto

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/hashicorp-forge/revizto/pkg/revizto/tokenstore"
)

// GetTokens exchanges an authorization code for an access/refresh token pair
// at {base}/v5/oauth2. On success the pair replaces the client's credentials
// and is persisted when a store is configured. On failure nothing changes.
func (c *Client) GetTokens(ctx context.Context, code string) (*tokenstore.Credentials, error) {
	if code == "" {
		return nil, &AuthError{Reason: "authorization code is empty"}
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	var opts []oauth2.AuthCodeOption
	if c.cfg.State != "" {
		opts = append(opts, oauth2.SetAuthURLParam("state", c.cfg.State))
	}
	if c.cfg.Scope != "" {
		opts = append(opts, oauth2.SetAuthURLParam("scope", c.cfg.Scope))
	}

	c.log.Debug("exchanging authorization code")
	tok, err := c.oauth.Exchange(c.oauthContext(ctx), code, opts...)
	if err != nil {
		return nil, tokenError(err)
	}
	return c.accept(tok, nil)
}

// RefreshTokens exchanges the stored refresh token for a new pair. If the
// server does not issue a new refresh token the current one is kept.
// ErrRefreshExpired is returned when no usable refresh token is held.
func (c *Client) RefreshTokens(ctx context.Context) (*tokenstore.Credentials, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Client) refreshLocked(ctx context.Context) (*tokenstore.Credentials, error) {
	prev := c.Credentials()
	if prev == nil || !prev.CanRefresh(c.now()) {
		return nil, ErrRefreshExpired
	}

	c.log.Debug("refreshing access token")
	src := c.oauth.TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: prev.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, tokenError(err)
	}
	return c.accept(tok, prev)
}

// Credentials returns a copy of the current token pair, or nil.
func (c *Client) Credentials() *tokenstore.Credentials {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds.Clone()
}

// AuthCodeURL returns the page a user visits to grant access and obtain an
// authorization code.
func (c *Client) AuthCodeURL(state string) string {
	if state == "" {
		state = c.cfg.State
	}
	return c.oauth.AuthCodeURL(state)
}

// accept validates tok, records it, and persists it when a store is set.
func (c *Client) accept(tok *oauth2.Token, prev *tokenstore.Credentials) (*tokenstore.Credentials, error) {
	if !strings.EqualFold(tok.TokenType, "bearer") {
		return nil, &AuthError{
			StatusCode: http.StatusOK,
			Reason:     fmt.Sprintf("unexpected token type %q", tok.TokenType),
		}
	}

	now := c.now()
	creds := &tokenstore.Credentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       now.Add(c.cfg.TokenValidity),
	}
	if tok.ExpiresIn > 0 {
		creds.Expiry = now.Add(time.Duration(tok.ExpiresIn) * time.Second)
	}

	switch {
	case prev != nil && (creds.RefreshToken == "" || creds.RefreshToken == prev.RefreshToken):
		creds.RefreshToken = prev.RefreshToken
		creds.RefreshExpiry = prev.RefreshExpiry
	case creds.RefreshToken != "":
		creds.RefreshExpiry = now.Add(c.cfg.RefreshTokenValidity)
	}

	c.mu.Lock()
	c.creds = creds.Clone()
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.Save(c.cfg.Region, creds); err != nil {
			return nil, fmt.Errorf("save tokens: %w", err)
		}
		c.log.Debug("saved tokens")
	}
	return creds, nil
}

// accessToken returns a token for the next call, refreshing it first when
// it is known to be expired and the refresh token is still usable.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	creds := c.Credentials()
	if creds == nil || creds.AccessToken == "" {
		return "", ErrNotAuthenticated
	}
	now := c.now()
	if !creds.Expired(now) || !creds.CanRefresh(now) {
		return creds.AccessToken, nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another call may have refreshed while this one waited.
	if creds = c.Credentials(); !creds.Expired(c.now()) {
		return creds.AccessToken, nil
	}
	fresh, err := c.refreshLocked(ctx)
	if err != nil {
		return "", err
	}
	return fresh.AccessToken, nil
}

func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// tokenError converts an oauth2 failure into an *AuthError. Transport
// failures are wrapped unchanged.
func tokenError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		ae := &AuthError{Body: string(re.Body)}
		if re.Response != nil {
			ae.StatusCode = re.Response.StatusCode
		}
		return ae
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("token request failed: %w", err)
	}
	return &AuthError{Reason: err.Error()}
}
