package mock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPath is the token endpoint served by the mock.
const TokenPath = "/v5/oauth2"

// Default values used by NewServer.
const (
	DefaultClientID  = "test-client"
	DefaultValidCode = "valid-code"
)

// Request is a recorded API request.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into out.
func (r Request) JSON(out any) error {
	return json.Unmarshal(r.Body, out)
}

// Form parses a multipart or urlencoded body. Files are returned by part name.
func (r Request) Form() (url.Values, map[string][]byte, error) {
	req, err := http.NewRequest(r.Method, r.Path, bytes.NewReader(r.Body))
	if err != nil {
		return nil, nil, err
	}
	req.Header = r.Header.Clone()

	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/") {
		if err := req.ParseMultipartForm(32 << 20); err != nil {
			return nil, nil, err
		}
		files := map[string][]byte{}
		for name, headers := range req.MultipartForm.File {
			f, err := headers[0].Open()
			if err != nil {
				return nil, nil, err
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, nil, err
			}
			files[name] = data
		}
		return url.Values(req.MultipartForm.Value), files, nil
	}

	if err := req.ParseForm(); err != nil {
		return nil, nil, err
	}
	return req.PostForm, nil, nil
}

type reply struct {
	status int
	body   []byte
}

// Server is a fake Revizto API.
type Server struct {
	*httptest.Server

	// ClientID is required on token requests when non-empty.
	ClientID string
	// ValidCode is the only authorization code the server accepts.
	ValidCode string
	// TokenType is returned in token responses. Default "Bearer".
	TokenType string
	// ExpiresIn is the access token lifetime in seconds. Zero omits
	// expires_in from the response.
	ExpiresIn int
	// RotateRefreshToken controls whether a refresh grant issues a new
	// refresh token.
	RotateRefreshToken bool

	signingKey []byte

	mu            sync.Mutex
	minted        int
	replies       map[string]reply
	requests      []Request
	tokenRequests []url.Values
	refreshTokens map[string]bool
}

// NewServer starts a fake Revizto API. Call Close when done.
func NewServer() *Server {
	s := &Server{
		ClientID:           DefaultClientID,
		ValidCode:          DefaultValidCode,
		TokenType:          "Bearer",
		ExpiresIn:          1800,
		RotateRefreshToken: true,
		signingKey:         []byte("revizto-mock-signing-key"),
		replies:            map[string]reply{},
		refreshTokens:      map[string]bool{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	return s
}

// Handle registers the response for method and path (including the /v5
// prefix). body is encoded as JSON unless it is a []byte or string.
func (s *Server) Handle(method, path string, status int, body any) {
	var data []byte
	switch b := body.(type) {
	case []byte:
		data = b
	case string:
		data = []byte(b)
	default:
		var err error
		if data, err = json.Marshal(b); err != nil {
			panic(fmt.Sprintf("mock: encode reply for %s %s: %v", method, path, err))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[method+" "+path] = reply{status: status, body: data}
}

// Requests returns the recorded API requests, oldest first. Token requests
// are recorded separately.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent API request.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// TokenRequests returns the forms posted to the token endpoint.
func (s *Server) TokenRequests() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.tokenRequests...)
}

// IssueRefreshToken mints a refresh token the server will accept.
func (s *Server) IssueRefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, err := s.mintLocked("refresh_token", 30*24*time.Hour)
	if err != nil {
		panic(fmt.Sprintf("mock: mint refresh token: %v", err))
	}
	s.refreshTokens[tok] = true
	return tok
}

// ParseToken verifies a token minted by this server and returns its claims.
func (s *Server) ParseToken(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == TokenPath {
		s.tokenHandler(w, r)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	rep, ok := s.replies[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"result":-206,"message":"Unauthorized"}`))
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":-1,"message":"Not found"}`))
		return
	}
	w.WriteHeader(rep.status)
	_, _ = w.Write(rep.body)
}

// tokenHandler handles /v5/oauth2 requests
func (s *Server) tokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenRequests = append(s.tokenRequests, r.PostForm)

	if s.ClientID != "" && r.PostForm.Get("client_id") != s.ClientID {
		writeTokenError(w, http.StatusUnauthorized, "invalid_client")
		return
	}

	rotate := true
	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		if r.PostForm.Get("code") != s.ValidCode {
			writeTokenError(w, http.StatusBadRequest, "invalid_grant")
			return
		}
	case "refresh_token":
		if !s.refreshTokens[r.PostForm.Get("refresh_token")] {
			writeTokenError(w, http.StatusBadRequest, "invalid_grant")
			return
		}
		rotate = s.RotateRefreshToken
	default:
		writeTokenError(w, http.StatusBadRequest, "unsupported_grant_type")
		return
	}

	lifetime := time.Duration(s.ExpiresIn) * time.Second
	if lifetime == 0 {
		lifetime = 30 * time.Minute
	}
	access, err := s.mintLocked("access_token", lifetime)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	response := map[string]any{
		"access_token": access,
		"token_type":   s.TokenType,
	}
	if s.ExpiresIn > 0 {
		response["expires_in"] = s.ExpiresIn
	}
	if rotate {
		refresh, err := s.mintLocked("refresh_token", 30*24*time.Hour)
		if err != nil {
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}
		s.refreshTokens[refresh] = true
		response["refresh_token"] = refresh
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

// mintLocked creates a signed JWT. s.mu must be held.
func (s *Server) mintLocked(tokenType string, expiry time.Duration) (string, error) {
	s.minted++
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": "revizto-mock",
		"sub": "test_subject",
		"aud": s.ClientID,
		"exp": now.Add(expiry).Unix(),
		"iat": now.Unix(),
		"jti": fmt.Sprintf("%d", s.minted),
		"typ": tokenType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

func writeTokenError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
