package revizto

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Config)
		wantErr  bool
		errorMsg string
	}{
		{
			name:   "valid region",
			modify: func(c *Config) { c.Region = "eu" },
		},
		{
			name: "valid base URL override",
			modify: func(c *Config) {
				c.Region = "us"
				c.BaseURL = "http://127.0.0.1:8080"
			},
		},
		{
			name:     "missing region",
			modify:   func(c *Config) {},
			wantErr:  true,
			errorMsg: "region",
		},
		{
			name:     "unknown region",
			modify:   func(c *Config) { c.Region = "mars" },
			wantErr:  true,
			errorMsg: "must be one of eu, sa, sg, us",
		},
		{
			name:     "region is case sensitive",
			modify:   func(c *Config) { c.Region = "EU" },
			wantErr:  true,
			errorMsg: "region",
		},
		{
			name: "invalid base URL scheme",
			modify: func(c *Config) {
				c.Region = "eu"
				c.BaseURL = "ftp://api.eu.revizto.com"
			},
			wantErr:  true,
			errorMsg: "baseUrl",
		},
		{
			name: "certificate without key",
			modify: func(c *Config) {
				c.Region = "eu"
				c.CertFile = "client.pem"
			},
			wantErr:  true,
			errorMsg: "keyFile",
		},
		{
			name: "negative timeout",
			modify: func(c *Config) {
				c.Region = "eu"
				c.Timeout = -time.Second
			},
			wantErr:  true,
			errorMsg: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
			var ce *ConfigError
			assert.True(t, errors.As(err, &ce))
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestConfig_BaseURL(t *testing.T) {
	cfg := Config{Region: "sg"}
	assert.Equal(t, "https://api.sg.revizto.com/v5", cfg.baseURL())

	cfg.BaseURL = "http://localhost:9000/"
	assert.Equal(t, "http://localhost:9000/v5", cfg.baseURL())
}

func TestRegions(t *testing.T) {
	assert.Equal(t, []string{"eu", "sa", "sg", "us"}, Regions())

	u, ok := RegionBaseURL("us")
	assert.True(t, ok)
	assert.Equal(t, "https://api.us.revizto.com", u)

	_, ok = RegionBaseURL("xx")
	assert.False(t, ok)
}

func TestConfig_NewHTTPClient(t *testing.T) {
	t.Run("insecure", func(t *testing.T) {
		cfg := DefaultConfig()
		insecure := false
		cfg.TLSVerify = &insecure
		hc, err := cfg.NewHTTPClient()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, hc.Timeout)
	})

	t.Run("missing client certificate", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CertFile = "/nonexistent/client.pem"
		cfg.KeyFile = "/nonexistent/client.key"
		_, err := cfg.NewHTTPClient()
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestErrors(t *testing.T) {
	assert.ErrorIs(t, ErrRefreshExpired, ErrAuthentication)

	authErr := &AuthError{StatusCode: 400, Body: `{"error":"invalid_grant"}`}
	assert.ErrorIs(t, authErr, ErrAuthentication)
	assert.NotErrorIs(t, authErr, ErrAPI)
	assert.Contains(t, authErr.Error(), "400")

	apiErr := &APIError{Method: "GET", Path: "/user", StatusCode: 403, Body: "forbidden"}
	assert.ErrorIs(t, apiErr, ErrAPI)
	assert.Equal(t, "GET /user: API returned status 403: forbidden", apiErr.Error())
}

func TestPathf(t *testing.T) {
	assert.Equal(t, "/project/a%2Fb/team", pathf("/project/%s/team", "a/b"))
	assert.Equal(t, "/license/42/team", pathf("/license/%s/team", 42))
}
