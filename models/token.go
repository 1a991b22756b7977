package models

import "time"

// SessionToken is an authenticated-session token issued by the identity
// service after a successful handshake. The client treats the token string
// as opaque; ExpiresAt is a best-effort hint parsed from the token itself.
type SessionToken struct {
	// Value is the raw bearer token.
	Value string `json:"token"`

	// ExpiresAt is the token expiry, zero if unknown.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Valid reports whether the token is non-empty and not known to be expired.
func (t SessionToken) Valid() bool {
	if t.Value == "" {
		return false
	}
	if t.ExpiresAt.IsZero() {
		return true
	}
	return time.Now().Before(t.ExpiresAt)
}
