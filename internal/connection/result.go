package connection

import (
	"encoding/json"
)

// Result is a successful cluster response.
type Result struct {
	StatusCode int
	URL        string
	// Body is the raw JSON payload; it is nil when the cluster returned no content.
	Body json.RawMessage
}

// Empty reports whether the request succeeded without a payload.
func (r *Result) Empty() bool {
	return len(r.Body) == 0
}

// Decode unmarshals the payload into v. An empty result leaves v untouched.
func (r *Result) Decode(v interface{}) error {
	if r.Empty() {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &DecodeError{URL: r.URL, Err: err}
	}
	return nil
}

// Map decodes the payload as a generic JSON object.
func (r *Result) Map() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := r.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
