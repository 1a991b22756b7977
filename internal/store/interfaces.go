// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

// Package store provides the local SQLite cache of account crypto
// profiles. The cache lets a returning client start key initialization
// without waiting for the network, and is invalidated whenever the cached
// material fails to decrypt.
package store

import (
	"context"

	"github.com/mkarpenko/zkvault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/profile_cache_mock.go -package=mock

// ProfileCache persists the last known account record per email. Cached
// data is ciphertext and public values only; nothing in the cache is
// usable without the password or recovery phrase.
type ProfileCache interface {
	// SaveProfile inserts or replaces the cached record for user.Email.
	SaveProfile(ctx context.Context, user models.UserRecord) error

	// GetProfile returns the cached record for the email, or
	// ErrProfileNotCached when none is stored.
	GetProfile(ctx context.Context, email string) (models.UserRecord, error)

	// Invalidate removes the cached record for the email. Removing an
	// absent record is not an error.
	Invalidate(ctx context.Context, email string) error
}
