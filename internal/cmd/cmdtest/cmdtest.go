// Package cmdtest runs CLI commands against a mock Revizto server.
package cmdtest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/revizto/internal/cmd/base"
	"github.com/hashicorp-forge/revizto/pkg/revizto/mock"
	"github.com/hashicorp-forge/revizto/pkg/revizto/tokenstore"
)

// AccessToken is the token Authenticate stores.
const AccessToken = "cli-access-token"

// Env is a configured CLI environment.
type Env struct {
	Server     *mock.Server
	ConfigPath string
	TokenFile  string
	UI         *cli.MockUi
	Base       *base.Command
}

// New starts a mock server and writes a config file pointing at it. The
// server is closed when the test ends.
func New(t *testing.T) *Env {
	t.Helper()

	srv := mock.NewServer()
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "tokens.json")
	configPath := filepath.Join(dir, "revizto.hcl")
	content := fmt.Sprintf(`
log_level = "error"

revizto {
  region       = "eu"
  base_url     = %q
  client_id    = %q
  redirect_uri = "https://example.com/callback"

  tokens {
    store = "file"
    path  = %q
  }
}
`, srv.URL, mock.DefaultClientID, tokenFile)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	ui := cli.NewMockUi()
	b := base.NewCommand(hclog.NewNullLogger(), ui)
	b.Fs = afero.NewOsFs()

	return &Env{
		Server:     srv,
		ConfigPath: configPath,
		TokenFile:  tokenFile,
		UI:         ui,
		Base:       b,
	}
}

// Authenticate stores a valid token pair for the eu region.
func (e *Env) Authenticate(t *testing.T) {
	t.Helper()
	store := tokenstore.NewFileStore(afero.NewOsFs(), e.TokenFile)
	require.NoError(t, store.Save("eu", &tokenstore.Credentials{
		AccessToken:  AccessToken,
		RefreshToken: e.Server.IssueRefreshToken(),
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
	}))
}

// Args prefixes args with the -config flag.
func (e *Env) Args(args ...string) []string {
	return append([]string{"-config=" + e.ConfigPath}, args...)
}

// Stdout returns everything written to the UI's output.
func (e *Env) Stdout() string {
	return e.UI.OutputWriter.String()
}

// Stderr returns everything written to the UI's error output.
func (e *Env) Stderr() string {
	return e.UI.ErrorWriter.String()
}
