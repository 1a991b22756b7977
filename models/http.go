package models

// Wire models exchanged with the identity service. All binary values are
// base64 (standard encoding) strings.

// SRPChallengeRequest opens a password login: the client sends its ephemeral
// public value A together with the account email.
type SRPChallengeRequest struct {
	Email string `json:"email"`
	A     string `json:"a"`
}

// SRPChallengeResponse is the server's reply: a login session identifier,
// the account's SRP salt and the server ephemeral public value B.
type SRPChallengeResponse struct {
	SessionID string `json:"session_id"`
	Salt      string `json:"salt"`
	B         string `json:"b"`
}

// SRPVerifyRequest carries the client proof M1 for the opened session.
type SRPVerifyRequest struct {
	Email       string `json:"email"`
	SessionID   string `json:"session_id"`
	ClientProof string `json:"client_proof"`
}

// SRPVerifyResponse closes the handshake: the server proof M2, which the
// client MUST verify before trusting anything else in this response, the
// session token and the account record.
type SRPVerifyResponse struct {
	ServerProof string     `json:"server_proof"`
	Token       string     `json:"token"`
	User        UserRecord `json:"user"`
}

// OpaqueMessage is one serialized OPAQUE protocol message. The client never
// interprets the payload beyond handing it to the OPAQUE driver.
type OpaqueMessage struct {
	SessionID string `json:"session_id,omitempty"`
	Payload   string `json:"payload"`
}

// OpaqueLoginResult closes an OPAQUE login: the session token and the
// account record. Only returned after the server verified KE3.
type OpaqueLoginResult struct {
	Token string     `json:"token"`
	User  UserRecord `json:"user"`
}

// OAuthRegistrationBundle is everything a freshly bootstrapped
// OAuth-originated account persists server-side in one call: the full
// crypto profile plus the OPAQUE registration record for future direct logins.
type OAuthRegistrationBundle struct {
	Profile      AccountCryptoProfile `json:"crypto_profile"`
	OpaqueRecord string               `json:"opaque_record"`
}
