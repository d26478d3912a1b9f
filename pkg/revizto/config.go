package revizto

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const apiVersionPath = "/v5"

// regions maps each supported region to its API host.
var regions = map[string]string{
	"eu": "https://api.eu.revizto.com",
	"us": "https://api.us.revizto.com",
	"sa": "https://api.sa.revizto.com",
	"sg": "https://api.sg.revizto.com",
}

// Regions returns the supported region identifiers in sorted order.
func Regions() []string {
	out := make([]string, 0, len(regions))
	for r := range regions {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// RegionBaseURL returns the API host for region.
func RegionBaseURL(region string) (string, bool) {
	u, ok := regions[region]
	return u, ok
}

// Config contains configuration for the Revizto client.
type Config struct {
	// Region selects the API host (eu, us, sa, sg) and keys persisted tokens.
	Region string `json:"region"`

	// BaseURL overrides the region's API host, e.g. for a proxy or a test
	// server. The /v5 prefix is appended by the client.
	BaseURL string `json:"baseUrl,omitempty"`

	// AuthURL is the browser authorization page used by AuthCodeURL.
	// Default: {base}/v5/oauth2/authorize
	AuthURL string `json:"authUrl,omitempty"`

	// OAuth parameters sent to the token endpoint.
	ClientID    string `json:"clientId,omitempty"`
	RedirectURI string `json:"redirectUri,omitempty"`
	State       string `json:"state,omitempty"`
	Scope       string `json:"scope,omitempty"`

	// SaveToken persists tokens to TokenFile when no store is injected.
	SaveToken bool   `json:"saveToken,omitempty"`
	TokenFile string `json:"tokenFile,omitempty"`

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `json:"tlsVerify,omitempty"`

	// CertFile and KeyFile configure a TLS client certificate. Both or
	// neither must be set.
	CertFile string `json:"certFile,omitempty"`
	KeyFile  string `json:"keyFile,omitempty"`

	// Timeout for API requests
	// Default: 30 seconds
	Timeout time.Duration `json:"timeout,omitempty"`

	// Assumed token lifetimes when the token endpoint does not report one.
	TokenValidity        time.Duration `json:"tokenValidity,omitempty"`
	RefreshTokenValidity time.Duration `json:"refreshTokenValidity,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		TokenFile:            DefaultTokenFile(),
		TLSVerify:            &tlsVerify,
		Timeout:              30 * time.Second,
		TokenValidity:        30 * time.Minute,
		RefreshTokenValidity: 30 * 24 * time.Hour,
	}
}

// DefaultTokenFile returns $HOME/.revizto/tokens.json, or a path relative to
// the working directory if the home directory is unknown.
func DefaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".revizto", "tokens.json")
	}
	return filepath.Join(home, ".revizto", "tokens.json")
}

// applyDefaults fills zero fields from DefaultConfig.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.TLSVerify == nil {
		c.TLSVerify = d.TLSVerify
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.TokenValidity == 0 {
		c.TokenValidity = d.TokenValidity
	}
	if c.RefreshTokenValidity == 0 {
		c.RefreshTokenValidity = d.RefreshTokenValidity
	}
	if c.TokenFile == "" {
		c.TokenFile = d.TokenFile
	}
}

// Validate checks if the configuration is valid. The returned error is a
// *ConfigError.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Region,
			validation.Required,
			validation.In(regionValues()...).Error(
				"must be one of "+strings.Join(Regions(), ", ")),
		),
		validation.Field(&c.BaseURL, validation.By(httpURL)),
		validation.Field(&c.AuthURL, validation.By(httpURL)),
		validation.Field(&c.CertFile, validation.When(c.KeyFile != "", validation.Required)),
		validation.Field(&c.KeyFile, validation.When(c.CertFile != "", validation.Required)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&c.TokenValidity, validation.Min(time.Duration(0))),
		validation.Field(&c.RefreshTokenValidity, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return &ConfigError{Err: err}
	}
	return nil
}

func regionValues() []interface{} {
	out := make([]interface{}, 0, len(regions))
	for _, r := range Regions() {
		out = append(out, r)
	}
	return out
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host")
	}
	return nil
}

// baseURL returns the API root including the version prefix.
func (c *Config) baseURL() string {
	base := c.BaseURL
	if base == "" {
		base = regions[c.Region]
	}
	return strings.TrimRight(base, "/") + apiVersionPath
}

// NewHTTPClient creates a configured HTTP client for the API.
func (c *Config) NewHTTPClient() (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if c.TLSVerify != nil && !*c.TLSVerify {
		tlsConfig.InsecureSkipVerify = true
	}
	if c.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, &ConfigError{Err: fmt.Errorf("load client certificate: %w", err)}
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	transport.TLSClientConfig = tlsConfig

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}, nil
}
