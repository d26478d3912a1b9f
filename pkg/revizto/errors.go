package revizto

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration matches invalid client configuration.
	ErrConfiguration = errors.New("revizto: invalid configuration")

	// ErrAuthentication matches failures at the token endpoint.
	ErrAuthentication = errors.New("revizto: authentication failed")

	// ErrRefreshExpired is returned when a refresh is requested without a
	// usable refresh token.
	ErrRefreshExpired = fmt.Errorf("%w: refresh token missing or expired", ErrAuthentication)

	// ErrNotAuthenticated is returned by API calls made before any tokens
	// were obtained.
	ErrNotAuthenticated = errors.New("revizto: access token is not available")

	// ErrAPI matches non-2xx responses from API endpoints.
	ErrAPI = errors.New("revizto: API request failed")
)

// ConfigError describes an invalid Config.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid revizto config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

// AuthError is returned when the token endpoint rejects a request or issues
// an unusable token.
type AuthError struct {
	// StatusCode is the HTTP status of the token response.
	StatusCode int
	// Body is the raw response body.
	Body string
	// Reason is set when the response was 2xx but unusable.
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason != "" && e.StatusCode == 0 {
		return "token request rejected: " + e.Reason
	}
	if e.Reason != "" {
		return fmt.Sprintf("token endpoint returned status %d: %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("token endpoint returned status %d: %s", e.StatusCode, truncate(e.Body))
}

func (e *AuthError) Is(target error) bool { return target == ErrAuthentication }

// APIError is returned when an endpoint responds with a non-2xx status.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: API returned status %d: %s", e.Method, e.Path, e.StatusCode, truncate(e.Body))
}

func (e *APIError) Is(target error) bool { return target == ErrAPI }

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 512 {
		return s[:512] + "..."
	}
	return s
}
