package tokenstore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/iancoleman/strcase"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

const (
	// Default lifetimes assumed when the dotenv file only records issue times.
	DefaultAccessTokenValidity  = 30 * time.Minute
	DefaultRefreshTokenValidity = 30 * 24 * time.Hour

	// timestampLayout is an ISO 8601 local time with microseconds.
	timestampLayout = "2006-01-02T15:04:05.000000"
)

// EnvFileStore persists credentials in a dotenv file using the key layout
//
//	{REGION}_ACCESS_TOKEN
//	{REGION}_ACCESS_TOKEN_TIMESTAMP
//	{REGION}_REFRESH_TOKEN
//	{REGION}_REFRESH_TOKEN_TIMESTAMP
//
// The timestamps record when each token was issued; expiry is derived from
// the configured validity. Keys with a lowercase region prefix are read too
// and replaced by the canonical keys on Save. Unrelated keys are left
// untouched.
type EnvFileStore struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string

	AccessValidity  time.Duration
	RefreshValidity time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewEnvFileStore creates an EnvFileStore at path on fs with the default
// token lifetimes.
func NewEnvFileStore(fs afero.Fs, path string) *EnvFileStore {
	return &EnvFileStore{
		fs:              fs,
		path:            path,
		AccessValidity:  DefaultAccessTokenValidity,
		RefreshValidity: DefaultRefreshTokenValidity,
		Now:             time.Now,
	}
}

// Path returns the location of the dotenv file.
func (e *EnvFileStore) Path() string {
	return e.path
}

type envKeys struct {
	access, accessTS, refresh, refreshTS string
}

func keysFor(prefix string) envKeys {
	return envKeys{
		access:    prefix + "_ACCESS_TOKEN",
		accessTS:  prefix + "_ACCESS_TOKEN_TIMESTAMP",
		refresh:   prefix + "_REFRESH_TOKEN",
		refreshTS: prefix + "_REFRESH_TOKEN_TIMESTAMP",
	}
}

// candidatePrefixes returns the canonical prefix first, then the region as
// written, if different.
func candidatePrefixes(region string) []string {
	canonical := strcase.ToScreamingSnake(region)
	if canonical == region {
		return []string{canonical}
	}
	return []string{canonical, region}
}

func (e *EnvFileStore) Load(region string) (*Credentials, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	env, err := e.read()
	if err != nil {
		return nil, err
	}

	for _, prefix := range candidatePrefixes(region) {
		k := keysFor(prefix)
		access := env[k.access]
		if access == "" {
			continue
		}
		creds := &Credentials{
			AccessToken:  access,
			RefreshToken: env[k.refresh],
			TokenType:    "Bearer",
		}
		if issued, err := parseTimestamp(env[k.accessTS]); err != nil {
			return nil, fmt.Errorf("parse %s: %w", k.accessTS, err)
		} else if !issued.IsZero() {
			creds.Expiry = issued.Add(e.AccessValidity)
		}
		if issued, err := parseTimestamp(env[k.refreshTS]); err != nil {
			return nil, fmt.Errorf("parse %s: %w", k.refreshTS, err)
		} else if !issued.IsZero() && creds.RefreshToken != "" {
			creds.RefreshExpiry = issued.Add(e.RefreshValidity)
		}
		return creds, nil
	}
	return nil, ErrNotFound
}

func (e *EnvFileStore) Save(region string, creds *Credentials) error {
	if creds == nil {
		return errors.New("tokenstore: nil credentials")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	env, err := e.read()
	if err != nil {
		return err
	}

	prefixes := candidatePrefixes(region)
	for _, legacy := range prefixes[1:] {
		k := keysFor(legacy)
		delete(env, k.access)
		delete(env, k.accessTS)
		delete(env, k.refresh)
		delete(env, k.refreshTS)
	}

	k := keysFor(prefixes[0])
	env[k.access] = creds.AccessToken
	env[k.accessTS] = e.issuedAt(creds.Expiry, e.AccessValidity).Format(timestampLayout)
	if creds.RefreshToken != "" {
		env[k.refresh] = creds.RefreshToken
		env[k.refreshTS] = e.issuedAt(creds.RefreshExpiry, e.RefreshValidity).Format(timestampLayout)
	} else {
		delete(env, k.refresh)
		delete(env, k.refreshTS)
	}

	return e.write(env)
}

// issuedAt converts an expiry back into an issue time. An unknown expiry is
// recorded as issued now.
func (e *EnvFileStore) issuedAt(expiry time.Time, validity time.Duration) time.Time {
	if expiry.IsZero() {
		return e.now().Local()
	}
	return expiry.Add(-validity).Local()
}

func (e *EnvFileStore) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *EnvFileStore) read() (map[string]string, error) {
	data, err := afero.ReadFile(e.fs, e.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read env file: %w", err)
	}
	env, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse env file %s: %w", e.path, err)
	}
	return env, nil
}

func (e *EnvFileStore) write(env map[string]string) error {
	content, err := godotenv.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode env file: %w", err)
	}
	if dir := filepath.Dir(e.path); dir != "." {
		if err := e.fs.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create env file directory: %w", err)
		}
	}
	tmp := e.path + ".tmp"
	if err := afero.WriteFile(e.fs, tmp, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("write env file: %w", err)
	}
	if err := e.fs.Rename(tmp, e.path); err != nil {
		return fmt.Errorf("replace env file: %w", err)
	}
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseLocal(s)
}
