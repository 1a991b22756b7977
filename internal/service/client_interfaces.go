// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

// Package service implements the client-side account lifecycle: signup
// bootstrap, password login, key initialization, recovery, and the backup
// confirmation flow. Services speak to the identity server only through
// [adapter.IdentityAPI] and keep all secrets inside the process.
package service

import (
	"context"

	"github.com/mkarpenko/zkvault/internal/crypto"
	"github.com/mkarpenko/zkvault/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_services_mock.go -package=mock

// ClientAuthService authenticates an existing account and brings its keys
// into memory.
type ClientAuthService interface {
	// PasswordLogin runs the SRP-6a exchange for the account, verifies the
	// server proof, and initializes the session keyring. The password never
	// leaves the process. Returns ErrServerTrust if the server cannot prove
	// knowledge of the verifier; no token is kept in that case.
	PasswordLogin(ctx context.Context, email string, password []byte) (models.UserRecord, *crypto.SessionKeyring, error)

	// OpaqueLogin authenticates through the OPAQUE aPAKE, for accounts
	// whose server-side credential is an OPAQUE record rather than an SRP
	// verifier. Semantics otherwise match PasswordLogin.
	OpaqueLogin(ctx context.Context, email string, password []byte) (models.UserRecord, *crypto.SessionKeyring, error)

	// Logout drops the session token and zeroes all cached key material.
	Logout(ctx context.Context)
}

// ClientOnboardService finishes account setup for OAuth-originated
// identities.
type ClientOnboardService interface {
	// CompleteOAuthSignup runs after the OAuth redirect handed the client a
	// provisional token. For a brand-new account it generates the full
	// crypto profile (master key, four keypairs, recovery artifacts),
	// registers an OPAQUE credential for future direct logins, and uploads
	// everything in one call; the recovery phrase is stashed in the session
	// for the backup flow. For an account that already has a key setup it
	// behaves like a login with the supplied password.
	CompleteOAuthSignup(ctx context.Context, provisionalToken string, password []byte) (models.UserRecord, *crypto.SessionKeyring, error)
}

// ClientKeyService turns a fetched account profile plus the password into
// a live session keyring.
type ClientKeyService interface {
	// Initialize derives the master key from the password and the profile's
	// account salt, validates keypair field bounds, and decrypts all four
	// keypairs. On any failure it invalidates the local cache, refetches
	// the authoritative profile from the server, and retries exactly once.
	// The final error is returned unclassified; the caller knows whether
	// the password was already proven and maps it accordingly.
	Initialize(ctx context.Context, user models.UserRecord, password []byte) (*crypto.SessionKeyring, error)

	// InitializeCached initializes the keyring from the locally cached
	// profile without contacting the server, for starting the client while
	// the server is unreachable. The cache is never invalidated on failure:
	// an offline mistype must not destroy the only usable copy.
	InitializeCached(ctx context.Context, email string, password []byte) (models.UserRecord, *crypto.SessionKeyring, error)
}

// ClientRecoveryService restores access with the 12-word phrase and moves
// the account to a new password.
type ClientRecoveryService interface {
	// RecoverWithMnemonic unwraps the master key from the recovery
	// artifacts, rewraps all keypairs under a key derived from newPassword
	// and a fresh salt, issues a new recovery phrase (stashed for the
	// backup flow), re-registers the OPAQUE credential under the new
	// password, and uploads the replacement profile.
	RecoverWithMnemonic(ctx context.Context, mnemonic string, newPassword []byte) (models.UserRecord, *crypto.SessionKeyring, error)
}
