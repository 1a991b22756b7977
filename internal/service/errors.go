package service

import "errors"

// Error taxonomy surfaced to the UI layer. Every failure below the service
// boundary is folded into one of these so screens can react uniformly.
var (
	// ErrCredential covers wrong password, wrong recovery phrase, and any
	// authentication rejection by the server.
	ErrCredential = errors.New("invalid credentials")

	// ErrCorruption means key material failed integrity or bounds checks
	// even after refetching the authoritative profile from the server.
	ErrCorruption = errors.New("key material corrupted")

	// ErrServerTrust means the server failed to prove knowledge of the
	// account verifier. The session must be abandoned immediately.
	ErrServerTrust = errors.New("server failed mutual authentication")

	// ErrTransport covers network failures and unexpected server statuses.
	ErrTransport = errors.New("transport failure")

	// ErrKeySetupRequired means the account exists but has no crypto
	// profile yet; the signup bootstrap must run first.
	ErrKeySetupRequired = errors.New("account has no key setup")

	// ErrPolicyViolation means the operation is not allowed in the current
	// account state.
	ErrPolicyViolation = errors.New("operation not allowed")
)
