package issues

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/revizto/internal/cmd/cmdtest"
)

const project = "0b7e9d3a-1c2f-4e5d-8a6b-9c0d1e2f3a4b"

func TestRun(t *testing.T) {
	since := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local).Format(time.RFC3339)

	tests := []struct {
		name      string
		args      []string
		path      string
		wantQuery url.Values
	}{
		{
			name:      "issues",
			args:      []string{"-project=" + project},
			path:      "/v5/project/" + project + "/issue-filter/filter",
			wantQuery: url.Values{"page": {"0"}, "limit": {"100"}},
		},
		{
			name:      "paged",
			args:      []string{"-project=" + project, "-page=4", "-limit=25"},
			path:      "/v5/project/" + project + "/issue-filter/filter",
			wantQuery: url.Values{"page": {"4"}, "limit": {"25"}},
		},
		{
			name: "deleted",
			args: []string{
				"-project=" + project, "-deleted",
				"-statuses=open, closed", "-since=2025-03-01",
			},
			path: "/v5/project/" + project + "/issue-filter/filter_deleted",
			wantQuery: url.Values{
				"page":              {"0"},
				"limit":             {"100"},
				"sendFullIssueData": {"false"},
				"statuses[]":        {"open", "closed"},
				"synchronized":      {since},
			},
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
			assert.Equal(t, tt.wantQuery, req.Query)
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
			name:    "statuses without deleted",
			args:    []string{"-project=" + project, "-statuses=open"},
			wantErr: "-statuses and -since require -deleted",
		},
		{
			name:    "bad since",
			args:    []string{"-project=" + project, "-deleted", "-since=not a date"},
			wantErr: "error parsing -since",
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
