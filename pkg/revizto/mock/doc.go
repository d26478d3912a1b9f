// Package mock provides an in-process fake of the Revizto API for tests.
//
// The server implements the OAuth token endpoint (/v5/oauth2) for the
// authorization_code and refresh_token grants, minting HS256 JWTs, and
// replies to any other request from a table of canned responses. Every
// request is recorded so tests can assert on paths, query strings, headers
// and bodies.
//
//	srv := mock.NewServer()
//	defer srv.Close()
//	srv.Handle(http.MethodGet, "/v5/user", http.StatusOK, map[string]any{"result": 0})
//
//	cfg := revizto.DefaultConfig()
//	cfg.Region = "eu"
//	cfg.BaseURL = srv.URL
package mock
