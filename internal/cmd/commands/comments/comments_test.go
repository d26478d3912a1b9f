package comments

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/revizto/internal/cmd/cmdtest"
)

const issue = "3c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e6f"

func TestRun(t *testing.T) {
	for _, date := range []string{"2025-03-01", "03/01/2025", "March 1, 2025"} {
		t.Run(date, func(t *testing.T) {
			env := cmdtest.New(t)
			env.Authenticate(t)
			path := "/v5/issue/" + issue + "/comments/date"
			env.Server.Handle(http.MethodGet, path, http.StatusOK, map[string]any{"result": 0})

			c := &Command{Command: env.Base}
			code := c.Run(env.Args("-project-id=42", "-issue="+issue, "-date="+date, "-page=1"))
			require.Equal(t, 0, code, env.Stderr())

			req, ok := env.Server.LastRequest()
			require.True(t, ok)
			assert.Equal(t, path, req.Path)
			assert.Equal(t, url.Values{
				"projectId": {"42"},
				"date":      {"2025-03-01"},
				"page":      {"1"},
			}, req.Query)
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
			name:    "missing project id",
			args:    []string{"-issue=" + issue, "-date=2025-03-01"},
			wantErr: "-project-id is required",
		},
		{
			name:    "missing issue",
			args:    []string{"-project-id=42", "-date=2025-03-01"},
			wantErr: "-issue is required",
		},
		{
			name:    "missing date",
			args:    []string{"-project-id=42", "-issue=" + issue},
			wantErr: "-date is required",
		},
		{
			name:    "bad date",
			args:    []string{"-project-id=42", "-issue=" + issue, "-date=someday"},
			wantErr: "error parsing -date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := cmdtest.New(t)

			c := &Command{Command: env.Base}
			assert.Equal(t, 1, c.Run(env.Args(tt.args...)))
			assert.Contains(t, env.Stderr(), tt.wantErr)
			assert.Empty(t, env.Server.Requests())
		})
	}
}
