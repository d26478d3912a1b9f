package user

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/revizto/internal/cmd/cmdtest"
)

func TestRun(t *testing.T) {
	t.Run("prints the user", func(t *testing.T) {
		env := cmdtest.New(t)
		env.Authenticate(t)
		env.Server.Handle(http.MethodGet, "/v5/user", http.StatusOK, map[string]any{
			"result": 0,
			"data":   map[string]any{"email": "ada@example.com"},
		})

		c := &Command{Command: env.Base}
		code := c.Run(env.Args())
		require.Equal(t, 0, code, env.Stderr())

		assert.JSONEq(t, `{"result":0,"data":{"email":"ada@example.com"}}`, env.Stdout())
		req, ok := env.Server.LastRequest()
		require.True(t, ok)
		assert.Equal(t, "Bearer "+cmdtest.AccessToken, req.Header.Get("Authorization"))
	})

	t.Run("yaml", func(t *testing.T) {
		env := cmdtest.New(t)
		env.Authenticate(t)
		env.Server.Handle(http.MethodGet, "/v5/user", http.StatusOK, map[string]any{"result": 0})

		c := &Command{Command: env.Base}
		code := c.Run(env.Args("-format=yaml"))
		require.Equal(t, 0, code, env.Stderr())
		assert.Equal(t, "result: 0", strings.TrimSpace(env.Stdout()))
	})

	t.Run("not authenticated", func(t *testing.T) {
		env := cmdtest.New(t)

		c := &Command{Command: env.Base}
		assert.Equal(t, 1, c.Run(env.Args()))
		assert.Contains(t, env.Stderr(), "access token is not available")
		assert.Empty(t, env.Server.Requests())
	})

	t.Run("api error", func(t *testing.T) {
		env := cmdtest.New(t)
		env.Authenticate(t)
		env.Server.Handle(http.MethodGet, "/v5/user", http.StatusForbidden, `{"result":-1}`)

		c := &Command{Command: env.Base}
		assert.Equal(t, 1, c.Run(env.Args()))
		assert.Contains(t, env.Stderr(), "API returned status 403")
	})

	t.Run("bad format", func(t *testing.T) {
		env := cmdtest.New(t)

		c := &Command{Command: env.Base}
		assert.Equal(t, 1, c.Run(env.Args("-format=xml")))
		assert.Contains(t, env.Stderr(), `unknown output format "xml"`)
	})
}
