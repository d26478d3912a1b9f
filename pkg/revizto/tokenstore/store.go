package tokenstore

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Load when no credentials are stored for a region.
var ErrNotFound = errors.New("tokenstore: credentials not found")

// Credentials is the token pair issued by the Revizto token endpoint.
// A zero Expiry or RefreshExpiry means the lifetime is unknown.
type Credentials struct {
	AccessToken   string    `json:"access_token"`
	RefreshToken  string    `json:"refresh_token,omitempty"`
	TokenType     string    `json:"token_type,omitempty"`
	Expiry        time.Time `json:"expiry"`
	RefreshExpiry time.Time `json:"refresh_expiry"`
}

// Expired reports whether the access token is known to be expired at now.
func (c *Credentials) Expired(now time.Time) bool {
	return !c.Expiry.IsZero() && !now.Before(c.Expiry)
}

// CanRefresh reports whether the refresh token may still be used at now.
func (c *Credentials) CanRefresh(now time.Time) bool {
	if c.RefreshToken == "" {
		return false
	}
	return c.RefreshExpiry.IsZero() || now.Before(c.RefreshExpiry)
}

// Clone returns a copy of c, or nil.
func (c *Credentials) Clone() *Credentials {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Store is a pluggable persistence layer for credentials.
type Store interface {
	// Load returns the credentials saved for region, or ErrNotFound.
	Load(region string) (*Credentials, error)
	// Save replaces the credentials saved for region.
	Save(region string, creds *Credentials) error
}

// MemoryStore is a Store that keeps credentials in memory only.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]*Credentials
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: map[string]*Credentials{}}
}

func (m *MemoryStore) Load(region string) (*Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.tokens[region]; ok {
		return c.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) Save(region string, creds *Credentials) error {
	if creds == nil {
		return errors.New("tokenstore: nil credentials")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		m.tokens = map[string]*Credentials{}
	}
	m.tokens[region] = creds.Clone()
	return nil
}
