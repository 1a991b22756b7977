// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

// Package adapter provides transport-layer abstractions for communicating
// with the zkvault identity service.
//
// The primary abstraction is [IdentityAPI], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPIdentityAPI]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/mkarpenko/zkvault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/identity_api_mock.go -package=mock

// IdentityAPI defines transport-agnostic communication with the identity
// service. Implementations are responsible for serialisation, bearer token
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type IdentityAPI interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// SRPChallenge opens a password login: it sends the client ephemeral
	// public value A and returns the server's (sessionID, salt, B) challenge.
	SRPChallenge(ctx context.Context, req models.SRPChallengeRequest) (models.SRPChallengeResponse, error)

	// SRPVerify sends the client proof M1 and returns the server proof M2,
	// the session token and the account record. The caller MUST verify M2
	// before trusting anything else in the response.
	SRPVerify(ctx context.Context, req models.SRPVerifyRequest) (models.SRPVerifyResponse, error)

	// CompleteOAuthRegistration uploads the crypto profile and OPAQUE record
	// of a freshly bootstrapped OAuth-originated account in one call. The
	// provisional OAuth token must already be set on the adapter.
	CompleteOAuthRegistration(ctx context.Context, bundle models.OAuthRegistrationBundle) (models.UserRecord, error)

	// GetProfile fetches the authenticated account record, including the
	// full crypto profile.
	GetProfile(ctx context.Context) (models.UserRecord, error)

	// UpdateCryptoProfile replaces the stored crypto profile, e.g. after a
	// password reset re-wrapped the master key under a new salt.
	UpdateCryptoProfile(ctx context.Context, profile models.AccountCryptoProfile) error

	// OpaqueRegisterInit relays the serialized OPAQUE registration request
	// and returns the server's registration response.
	OpaqueRegisterInit(ctx context.Context, msg models.OpaqueMessage) (models.OpaqueMessage, error)

	// OpaqueRegisterFinalize uploads the serialized OPAQUE client record.
	OpaqueRegisterFinalize(ctx context.Context, msg models.OpaqueMessage) error

	// OpaqueLoginInit relays KE1 and returns KE2.
	OpaqueLoginInit(ctx context.Context, msg models.OpaqueMessage) (models.OpaqueMessage, error)

	// OpaqueLoginFinish relays KE3 and returns the session token and account
	// record once the server has verified it.
	OpaqueLoginFinish(ctx context.Context, msg models.OpaqueMessage) (models.OpaqueLoginResult, error)
}
