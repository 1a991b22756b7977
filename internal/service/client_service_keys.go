package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mkarpenko/zkvault/internal/adapter"
	"github.com/mkarpenko/zkvault/internal/crypto"
	"github.com/mkarpenko/zkvault/internal/keyring"
	"github.com/mkarpenko/zkvault/internal/logger"
	"github.com/mkarpenko/zkvault/internal/store"
	"github.com/mkarpenko/zkvault/internal/workers"
	"github.com/mkarpenko/zkvault/models"
)

type clientKeyService struct {
	api    adapter.IdentityAPI
	cache  store.ProfileCache
	keys   *keyring.Manager
	vault  crypto.KeypairVault
	pool   *workers.Pool
	logger *logger.Logger
}

// NewClientKeyService constructs a [ClientKeyService].
func NewClientKeyService(api adapter.IdentityAPI, cache store.ProfileCache, keys *keyring.Manager, vault crypto.KeypairVault, pool *workers.Pool, log *logger.Logger) ClientKeyService {
	return &clientKeyService{api: api, cache: cache, keys: keys, vault: vault, pool: pool, logger: log}
}

// Initialize implements [ClientKeyService].
func (s *clientKeyService) Initialize(ctx context.Context, user models.UserRecord, password []byte) (*crypto.SessionKeyring, error) {
	if !user.Crypto.HasKeySetup() {
		return nil, ErrKeySetupRequired
	}

	ring, firstErr := s.tryInitialize(ctx, user, password)
	if firstErr == nil {
		s.saveCache(ctx, user)
		return ring, nil
	}

	s.logger.Warn().Err(firstErr).Str("email", user.Email).
		Msg("key initialization failed, refetching profile")

	// The local copy may be stale. Drop it, take the server's word once.
	if err := s.cache.Invalidate(ctx, user.Email); err != nil {
		s.logger.Warn().Err(err).Msg("cache invalidation failed")
	}

	fresh, err := s.api.GetProfile(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	if !fresh.Crypto.HasKeySetup() {
		return nil, ErrKeySetupRequired
	}

	ring, err = s.tryInitialize(ctx, fresh, password)
	if err != nil {
		return nil, err
	}

	s.saveCache(ctx, fresh)
	return ring, nil
}

// InitializeCached implements [ClientKeyService].
func (s *clientKeyService) InitializeCached(ctx context.Context, email string, password []byte) (models.UserRecord, *crypto.SessionKeyring, error) {
	user, err := s.cache.GetProfile(ctx, email)
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("load cached profile: %w", err)
	}
	if !user.Crypto.HasKeySetup() {
		return models.UserRecord{}, nil, ErrKeySetupRequired
	}

	ring, err := s.tryInitialize(ctx, user, password)
	if err != nil {
		return models.UserRecord{}, nil, err
	}

	s.logger.Info().Str("email", email).Msg("keys initialized from cached profile")
	return user, ring, nil
}

func (s *clientKeyService) tryInitialize(ctx context.Context, user models.UserRecord, password []byte) (*crypto.SessionKeyring, error) {
	salt, err := base64.StdEncoding.DecodeString(user.Crypto.AccountSalt)
	if err != nil {
		return nil, fmt.Errorf("decode account salt: %w", crypto.ErrMalformedKeypair)
	}

	// Bounds run before the expensive derivation: an oversized field fails
	// fast and never reaches the KDF or the AEAD.
	if err := s.vault.ValidateBounds(user.Crypto.Keypairs); err != nil {
		return nil, err
	}

	var masterKey []byte
	err = s.pool.Do(ctx, func() error {
		var derr error
		masterKey, derr = s.keys.DeriveAndCache(password, salt)
		return derr
	})
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}

	ring, err := s.vault.DecryptAll(user.Crypto.Keypairs, masterKey)
	if err != nil {
		s.keys.Clear()
		return nil, err
	}

	return ring, nil
}

func (s *clientKeyService) saveCache(ctx context.Context, user models.UserRecord) {
	if err := s.cache.SaveProfile(ctx, user); err != nil {
		// The cache is an optimization; a failed write must not fail login.
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("profile cache write failed")
	}
}
