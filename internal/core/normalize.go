package core

import "encoding/json"

// Clients written by early versions of the application carry no isActive
// field at all. The rule is permanent, not a one-time migration: every read
// path must treat a missing or null flag as active, and only an explicit
// false deactivates a client.

// NormalizeActive resolves a stored isActive representation to its effective
// value. Idempotent by construction: feeding the result back in (as a
// pointer) returns the same value.
func NormalizeActive(v *bool) bool {
	return v == nil || *v
}

// UnmarshalJSON decodes a client and applies the isActive normalization, so
// every JSON boundary (remote fetch, import file, request body) goes through
// the same shim.
func (c *Client) UnmarshalJSON(data []byte) error {
	type alias Client
	aux := struct {
		*alias
		IsActive *bool `json:"isActive"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.IsActive = NormalizeActive(aux.IsActive)
	return nil
}
