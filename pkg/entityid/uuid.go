package entityid

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// UUID identifies a Revizto entity (license, project, issue, sheet, member,
// role, stamp) when it is routed into a request path or body.
//
// Parsing accepts any case and optional hyphens; String always renders the
// canonical lowercase hyphenated form the API expects.
type UUID struct {
	value uuid.UUID
}

// NewUUID generates a new random UUID (v4).
// Used for client-assigned identifiers such as new issues and comments.
func NewUUID() UUID {
	return UUID{value: uuid.New()}
}

// MustParseUUID parses a UUID from string, panicking on error.
// This is useful for test fixtures and constants where the UUID is known valid.
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic(fmt.Sprintf("invalid UUID: %s: %v", s, err))
	}
	return u
}

// ParseUUID parses a UUID from string (e.g., "550e8400-e29b-41d4-a716-446655440000").
func ParseUUID(s string) (UUID, error) {
	if s == "" {
		return UUID{}, fmt.Errorf("UUID cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{value: u}, nil
}

// ParseList parses every string in ss, preserving order. All invalid entries
// are reported together rather than stopping at the first one.
func ParseList(ss []string) ([]UUID, error) {
	var result *multierror.Error
	out := make([]UUID, 0, len(ss))
	for i, s := range ss {
		u, err := ParseUUID(s)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("entry %d (%q): %w", i, s, err))
			continue
		}
		out = append(out, u)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// Strings renders ids in order.
func Strings(ids []UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// String returns the canonical UUID string in lowercase with hyphens.
func (u UUID) String() string {
	return u.value.String()
}

// IsZero returns true if this is the zero/nil UUID.
func (u UUID) IsZero() bool {
	return u.value == uuid.Nil
}

// Equal returns true if two UUIDs are equal.
func (u UUID) Equal(other UUID) bool {
	return u.value == other.value
}

// Set implements flag.Value so identifiers can be taken straight from
// command-line flags.
func (u *UUID) Set(s string) error {
	parsed, err := ParseUUID(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
// UUIDs are serialized as strings: "550e8400-e29b-41d4-a716-446655440000"
func (u UUID) MarshalJSON() ([]byte, error) {
	if u.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(u.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *UUID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*u = UUID{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("UUID must be a string: %w", err)
	}
	if s == "" {
		*u = UUID{}
		return nil
	}
	parsed, err := ParseUUID(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
