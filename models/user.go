package models

import "time"

// UserRecord represents an account entity as returned by the identity
// service. It carries identity attributes plus the account's crypto profile.
// Sensitive fields must never be exposed outside trusted boundaries.
type UserRecord struct {
	// UserID is the server-side unique identifier of the user.
	UserID int64 `json:"user_id"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Name is the display name of the user. Non-sensitive.
	Name string `json:"name"`

	// Crypto is the account's persisted cryptographic profile. Opaque to the
	// server; the client is the only party able to unwrap it.
	Crypto AccountCryptoProfile `json:"crypto_profile"`

	// CreatedAt is the account creation timestamp, for auditing.
	CreatedAt time.Time `json:"created_at"`
}

// NeedsKeyBootstrap reports whether this account still has to run the full
// key-generation path. True for accounts that authenticated through an
// external identity provider and never set an encryption password.
func (u UserRecord) NeedsKeyBootstrap() bool {
	return !u.Crypto.HasKeySetup()
}
