// Package config loads the revizto CLI configuration.
//
// Configuration comes from an HCL file, then environment variables
// (optionally seeded from a .env file), then built-in defaults:
//
//	log_level = "info"
//	format    = "json"
//
//	revizto {
//	  region       = "eu"
//	  client_id    = "my-client"
//	  redirect_uri = "https://example.com/callback"
//	  timeout      = "30s"
//
//	  tokens {
//	    store = "file"
//	    path  = "~/.revizto/tokens.json"
//	  }
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/revizto/pkg/revizto"
	"github.com/hashicorp-forge/revizto/pkg/revizto/tokenstore"
)

// DefaultFile is read when no config path is given and it exists in the
// working directory.
const DefaultFile = "revizto.hcl"

// Environment variables that override the config file.
const (
	EnvRegion      = "REVIZTO_REGION"
	EnvClientID    = "REVIZTO_CLIENT_ID"
	EnvRedirectURI = "REVIZTO_REDIRECT_URI"
	EnvLogLevel    = "REVIZTO_LOG_LEVEL"
)

// Token store kinds.
const (
	StoreFile   = "file"
	StoreEnv    = "env"
	StoreMemory = "memory"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the root of the CLI configuration file.
type Config struct {
	LogLevel string   `hcl:"log_level,optional"`
	Format   string   `hcl:"format,optional"`
	Revizto  *Revizto `hcl:"revizto,block"`
}

// Revizto configures the API client.
type Revizto struct {
	Region      string `hcl:"region,optional"`
	BaseURL     string `hcl:"base_url,optional"`
	AuthURL     string `hcl:"auth_url,optional"`
	ClientID    string `hcl:"client_id,optional"`
	RedirectURI string `hcl:"redirect_uri,optional"`
	State       string `hcl:"state,optional"`
	Scope       string `hcl:"scope,optional"`

	TLSVerify *bool  `hcl:"tls_verify,optional"`
	CertFile  string `hcl:"cert_file,optional"`
	KeyFile   string `hcl:"key_file,optional"`

	// Durations use Go syntax, e.g. "30s" or "720h".
	Timeout              string `hcl:"timeout,optional"`
	TokenValidity        string `hcl:"token_validity,optional"`
	RefreshTokenValidity string `hcl:"refresh_token_validity,optional"`

	Tokens *Tokens `hcl:"tokens,block"`
}

// Tokens selects where credentials are persisted.
type Tokens struct {
	// Store is one of "file" (JSON), "env" (dotenv) or "memory".
	Store string `hcl:"store,optional"`
	Path  string `hcl:"path,optional"`
}

// NewConfig loads path (or DefaultFile when path is empty), applies
// environment overrides from the process and from .env, then defaults, and
// validates the result.
func NewConfig(path string) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg, os.Getenv)
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load decodes an HCL config file. An empty path reads DefaultFile if it
// exists and otherwise returns an empty Config.
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return &Config{}, nil
		}
		path = DefaultFile
	}

	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDotEnv adds variables from a dotenv file to the environment without
// overriding ones already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if cfg.Revizto == nil {
		cfg.Revizto = &Revizto{}
	}
	if v := getenv(EnvRegion); v != "" {
		cfg.Revizto.Region = v
	}
	if v := getenv(EnvClientID); v != "" {
		cfg.Revizto.ClientID = v
	}
	if v := getenv(EnvRedirectURI); v != "" {
		cfg.Revizto.RedirectURI = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.Format == "" {
		cfg.Format = FormatJSON
	}
	if cfg.Revizto == nil {
		cfg.Revizto = &Revizto{}
	}
	if cfg.Revizto.Tokens == nil {
		cfg.Revizto.Tokens = &Tokens{}
	}
	t := cfg.Revizto.Tokens
	if t.Store == "" {
		t.Store = StoreFile
	}
	if t.Path == "" {
		switch t.Store {
		case StoreEnv:
			t.Path = ".env"
		case StoreFile:
			t.Path = revizto.DefaultTokenFile()
		}
	}
	t.Path = expandHome(t.Path)
}

// Validate reports every problem with the CLI-level settings. Client
// settings are validated by revizto.New.
func (c *Config) Validate() error {
	var result *multierror.Error

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	if c.Format != FormatJSON && c.Format != FormatYAML {
		result = multierror.Append(result, fmt.Errorf("format: must be %q or %q, got %q", FormatJSON, FormatYAML, c.Format))
	}
	if r := c.Revizto; r != nil {
		for name, v := range map[string]string{
			"timeout":                r.Timeout,
			"token_validity":         r.TokenValidity,
			"refresh_token_validity": r.RefreshTokenValidity,
		} {
			if _, err := parseDuration(v); err != nil {
				result = multierror.Append(result, fmt.Errorf("revizto.%s: %w", name, err))
			}
		}
		if t := r.Tokens; t != nil {
			switch t.Store {
			case StoreFile, StoreEnv, StoreMemory:
			default:
				result = multierror.Append(result, fmt.Errorf("revizto.tokens.store: unknown store %q", t.Store))
			}
		}
	}

	return result.ErrorOrNil()
}

// ClientConfig converts the revizto block into a client configuration.
func (c *Config) ClientConfig() (revizto.Config, error) {
	cfg := *revizto.DefaultConfig()
	r := c.Revizto
	if r == nil {
		return cfg, nil
	}

	cfg.Region = r.Region
	cfg.BaseURL = r.BaseURL
	cfg.AuthURL = r.AuthURL
	cfg.ClientID = r.ClientID
	cfg.RedirectURI = r.RedirectURI
	cfg.State = r.State
	cfg.Scope = r.Scope
	cfg.CertFile = r.CertFile
	cfg.KeyFile = r.KeyFile
	if r.TLSVerify != nil {
		cfg.TLSVerify = r.TLSVerify
	}

	var err error
	if cfg.Timeout, err = durationOr(r.Timeout, cfg.Timeout); err != nil {
		return cfg, fmt.Errorf("revizto.timeout: %w", err)
	}
	if cfg.TokenValidity, err = durationOr(r.TokenValidity, cfg.TokenValidity); err != nil {
		return cfg, fmt.Errorf("revizto.token_validity: %w", err)
	}
	if cfg.RefreshTokenValidity, err = durationOr(r.RefreshTokenValidity, cfg.RefreshTokenValidity); err != nil {
		return cfg, fmt.Errorf("revizto.refresh_token_validity: %w", err)
	}

	if t := r.Tokens; t != nil && t.Store == StoreFile {
		cfg.SaveToken = true
		cfg.TokenFile = t.Path
	}
	return cfg, nil
}

// TokenStore returns the store selected by the tokens block, on fs.
func (c *Config) TokenStore(fs afero.Fs) (tokenstore.Store, error) {
	t := &Tokens{Store: StoreFile, Path: revizto.DefaultTokenFile()}
	if c.Revizto != nil && c.Revizto.Tokens != nil {
		t = c.Revizto.Tokens
	}

	switch t.Store {
	case StoreFile:
		return tokenstore.NewFileStore(fs, t.Path), nil
	case StoreEnv:
		s := tokenstore.NewEnvFileStore(fs, t.Path)
		if c.Revizto != nil {
			if d, err := durationOr(c.Revizto.TokenValidity, s.AccessValidity); err == nil {
				s.AccessValidity = d
			}
			if d, err := durationOr(c.Revizto.RefreshTokenValidity, s.RefreshValidity); err == nil {
				s.RefreshValidity = d
			}
		}
		return s, nil
	case StoreMemory:
		return tokenstore.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown token store %q", t.Store)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative, got %s", s)
	}
	return d, nil
}

func durationOr(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return parseDuration(s)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
