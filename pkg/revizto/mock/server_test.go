package mock

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postToken(t *testing.T, s *Server, form url.Values) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.PostForm(s.URL+TokenPath, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestServer_TokenEndpoint(t *testing.T) {
	s := NewServer()
	defer s.Close()

	resp, body := postToken(t, s, url.Values{
		"grant_type": {"authorization_code"},
		"code":       {DefaultValidCode},
		"client_id":  {DefaultClientID},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer", body["token_type"])
	assert.Equal(t, float64(1800), body["expires_in"])

	claims, err := s.ParseToken(body["access_token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "access_token", claims["typ"])

	resp, body = postToken(t, s, url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {body["refresh_token"].(string)},
		"client_id":     {DefaultClientID},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access_token"])

	assert.Len(t, s.TokenRequests(), 2)
	assert.Empty(t, s.Requests())
}

func TestServer_TokenEndpointErrors(t *testing.T) {
	s := NewServer()
	defer s.Close()

	tests := []struct {
		name   string
		form   url.Values
		status int
		code   string
	}{
		{"bad code", url.Values{"grant_type": {"authorization_code"}, "code": {"nope"}, "client_id": {DefaultClientID}}, http.StatusBadRequest, "invalid_grant"},
		{"bad client", url.Values{"grant_type": {"authorization_code"}, "code": {DefaultValidCode}, "client_id": {"other"}}, http.StatusUnauthorized, "invalid_client"},
		{"unknown refresh token", url.Values{"grant_type": {"refresh_token"}, "refresh_token": {"x"}, "client_id": {DefaultClientID}}, http.StatusBadRequest, "invalid_grant"},
		{"unsupported grant", url.Values{"grant_type": {"password"}, "client_id": {DefaultClientID}}, http.StatusBadRequest, "unsupported_grant_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postToken(t, s, tt.form)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body["error"])
		})
	}
}

func TestServer_CannedReplies(t *testing.T) {
	s := NewServer()
	defer s.Close()
	s.Handle(http.MethodGet, "/v5/user", http.StatusOK, map[string]any{"result": 0, "data": map[string]any{"email": "a@example.com"}})

	req, err := http.NewRequest(http.MethodGet, s.URL+"/v5/user?x=1", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer t")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Missing bearer token.
	resp, err = http.Get(s.URL + "/v5/user")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Unregistered path.
	req, err = http.NewRequest(http.MethodPost, s.URL+"/v5/unknown", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer t")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	reqs := s.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, "1", reqs[0].Query.Get("x"))
	last, ok := s.LastRequest()
	require.True(t, ok)
	var body map[string]any
	require.NoError(t, last.JSON(&body))
	assert.Equal(t, float64(1), body["a"])
}
