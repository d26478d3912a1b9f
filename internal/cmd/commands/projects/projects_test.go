package projects

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/revizto/internal/cmd/cmdtest"
)

const (
	license = "6f1c2d4e-8a9b-4c3d-9e8f-7a6b5c4d3e2f"
	project = "0b7e9d3a-1c2f-4e5d-8a6b-9c0d1e2f3a4b"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		path      string
		wantQuery string
	}{
		{
			name:      "projects",
			args:      []string{"-license=" + license},
			path:      "/v5/project/list/" + license + "/paged",
			wantQuery: "page=0",
		},
		{
			name:      "sorted page",
			args:      []string{"-license=" + license, "-page=2", "-sorting=-created", "-type=active"},
			path:      "/v5/project/list/" + license + "/paged",
			wantQuery: "page=2&sorting=-created&type=active",
		},
		{
			name: "members",
			args: []string{"-members=" + project},
			path: "/v5/project/" + project + "/team",
		},
		{
			name:      "stamps",
			args:      []string{"-stamps=" + project, "-page=3"},
			path:      "/v5/project/" + project + "/issue-preset/list",
			wantQuery: "page=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := cmdtest.New(t)
			env.Authenticate(t)
			env.Server.Handle(http.MethodGet, tt.path, http.StatusOK, map[string]any{"result": 0})

			c := &Command{Command: env.Base}
			code := c.Run(env.Args(tt.args...))
			require.Equal(t, 0, code, env.Stderr())

			req, ok := env.Server.LastRequest()
			require.True(t, ok)
			assert.Equal(t, tt.path, req.Path)
			assert.Equal(t, tt.wantQuery, req.Query.Encode())
		})
	}
}

func TestRunRequiresTarget(t *testing.T) {
	env := cmdtest.New(t)

	c := &Command{Command: env.Base}
	assert.Equal(t, 1, c.Run(env.Args()))
	assert.Contains(t, env.Stderr(), "one of -license, -members or -stamps is required")
}
