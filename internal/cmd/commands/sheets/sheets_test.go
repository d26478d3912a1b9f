package sheets

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/revizto/internal/cmd/cmdtest"
)

const (
	project = "0b7e9d3a-1c2f-4e5d-8a6b-9c0d1e2f3a4b"
	sheet   = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		args []string
		path string
	}{
		{
			name: "sheets",
			args: []string{"-project=" + project},
			path: "/v5/project/" + project + "/sheet/list",
		},
		{
			name: "history",
			args: []string{"-project=" + project, "-sheet=" + sheet},
			path: "/v5/project/" + project + "/sheet/" + sheet + "/history",
		},
		{
			name: "filters",
			args: []string{"-project=" + project, "-filters"},
			path: "/v5/project/" + project + "/sheet/field-variants",
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
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing project",
			wantErr: "-project is required",
		},
		{
			name:    "filters and sheet",
			args:    []string{"-project=" + project, "-sheet=" + sheet, "-filters"},
			wantErr: "-filters and -sheet are mutually exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := cmdtest.New(t)

			c := &Command{Command: env.Base}
			assert.Equal(t, 1, c.Run(env.Args(tt.args...)))
			assert.Contains(t, env.Stderr(), tt.wantErr)
		})
	}
}
