package auth

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/revizto/internal/cmd/cmdtest"
	"github.com/hashicorp-forge/revizto/pkg/revizto/mock"
	"github.com/hashicorp-forge/revizto/pkg/revizto/tokenstore"
)

func savedCredentials(t *testing.T, env *cmdtest.Env) *tokenstore.Credentials {
	t.Helper()
	creds, err := tokenstore.NewFileStore(afero.NewOsFs(), env.TokenFile).Load("eu")
	require.NoError(t, err)
	return creds
}

func TestGroupShowsHelp(t *testing.T) {
	env := cmdtest.New(t)
	c := &Command{Command: env.Base}
	assert.Equal(t, cli.RunResultHelp, c.Run(nil))
}

func TestLogin(t *testing.T) {
	t.Run("code flag", func(t *testing.T) {
		env := cmdtest.New(t)
		c := &LoginCommand{Command: env.Base}

		code := c.Run(env.Args("-code=" + mock.DefaultValidCode))
		require.Equal(t, 0, code, env.Stderr())

		assert.Contains(t, env.Stdout(), "Authenticated (region eu)")
		creds := savedCredentials(t, env)
		assert.NotEmpty(t, creds.AccessToken)
		assert.NotContains(t, env.Stdout(), creds.AccessToken)

		reqs := env.Server.TokenRequests()
		require.Len(t, reqs, 1)
		assert.Equal(t, "authorization_code", reqs[0].Get("grant_type"))
		assert.Equal(t, mock.DefaultValidCode, reqs[0].Get("code"))
	})

	t.Run("prompt opens browser", func(t *testing.T) {
		env := cmdtest.New(t)
		env.UI.InputReader = strings.NewReader(mock.DefaultValidCode + "\n")

		var opened string
		orig := openURL
		openURL = func(u string) error {
			opened = u
			return nil
		}
		t.Cleanup(func() { openURL = orig })

		c := &LoginCommand{Command: env.Base}
		code := c.Run(env.Args("-state=abc"))
		require.Equal(t, 0, code, env.Stderr())

		assert.Contains(t, opened, "state=abc")
		assert.Contains(t, opened, "client_id="+mock.DefaultClientID)
		assert.Contains(t, env.Stdout(), opened)
		assert.NotEmpty(t, savedCredentials(t, env).AccessToken)
	})

	t.Run("browser disabled", func(t *testing.T) {
		env := cmdtest.New(t)
		env.UI.InputReader = strings.NewReader(mock.DefaultValidCode + "\n")

		orig := openURL
		openURL = func(string) error {
			t.Fatal("browser should not be opened")
			return nil
		}
		t.Cleanup(func() { openURL = orig })

		c := &LoginCommand{Command: env.Base}
		assert.Equal(t, 0, c.Run(env.Args("-browser=false")), env.Stderr())
	})

	t.Run("rejected code", func(t *testing.T) {
		env := cmdtest.New(t)
		c := &LoginCommand{Command: env.Base}

		assert.Equal(t, 1, c.Run(env.Args("-code=wrong")))
		assert.Contains(t, env.Stderr(), "error exchanging authorization code")
		assert.NoFileExists(t, env.TokenFile)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("rotates tokens", func(t *testing.T) {
		env := cmdtest.New(t)
		env.Authenticate(t)
		c := &RefreshCommand{Command: env.Base}

		code := c.Run(env.Args())
		require.Equal(t, 0, code, env.Stderr())

		assert.Contains(t, env.Stdout(), "Tokens refreshed")
		assert.NotEqual(t, cmdtest.AccessToken, savedCredentials(t, env).AccessToken)
	})

	t.Run("not authenticated", func(t *testing.T) {
		env := cmdtest.New(t)
		c := &RefreshCommand{Command: env.Base}

		assert.Equal(t, 1, c.Run(env.Args()))
		assert.Contains(t, env.Stderr(), "error refreshing tokens")
		assert.Empty(t, env.Server.TokenRequests())
	})
}

func TestStatus(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		env := cmdtest.New(t)
		env.Authenticate(t)
		c := &StatusCommand{Command: env.Base}

		code := c.Run(env.Args())
		require.Equal(t, 0, code, env.Stderr())

		var out map[string]any
		require.NoError(t, json.Unmarshal([]byte(env.Stdout()), &out))
		assert.Equal(t, "eu", out["region"])
		assert.Equal(t, true, out["authenticated"])
		assert.Equal(t, false, out["expired"])
		assert.Equal(t, true, out["canRefresh"])
		assert.Contains(t, out, "expiry")
		assert.NotContains(t, env.Stdout(), cmdtest.AccessToken)
	})

	t.Run("not authenticated", func(t *testing.T) {
		env := cmdtest.New(t)
		c := &StatusCommand{Command: env.Base}

		code := c.Run(env.Args("-format=yaml"))
		require.Equal(t, 0, code, env.Stderr())

		assert.Contains(t, env.Stdout(), "authenticated: false")
		assert.NotContains(t, env.Stdout(), "expiry")
	})
}
