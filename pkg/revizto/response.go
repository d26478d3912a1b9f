package revizto

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Response is the decoded JSON body of an API response. Revizto wraps
// payloads in an envelope of the form
//
//	{"result": 0, "message": "...", "data": {...}}
//
// The client does not interpret the envelope; the helpers below only read it.
type Response map[string]any

// Result returns the envelope's result code and whether it was present.
func (r Response) Result() (int, bool) {
	switch v := r["result"].(type) {
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case int:
		return v, true
	}
	return 0, false
}

// Message returns the envelope's message, or "".
func (r Response) Message() string {
	s, _ := r["message"].(string)
	return s
}

// Data returns the envelope's data field, or nil.
func (r Response) Data() any {
	return r["data"]
}

// Decode copies the envelope's data field into out, matching keys against
// `json` struct tags.
func (r Response) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(r.Data()); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
