package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mkarpenko/zkvault/internal/adapter"
	"github.com/mkarpenko/zkvault/internal/crypto"
	"github.com/mkarpenko/zkvault/internal/keyring"
	"github.com/mkarpenko/zkvault/internal/logger"
	"github.com/mkarpenko/zkvault/internal/opaqueauth"
	"github.com/mkarpenko/zkvault/internal/session"
	"github.com/mkarpenko/zkvault/internal/store"
	"github.com/mkarpenko/zkvault/internal/workers"
	"github.com/mkarpenko/zkvault/models"
)

type clientRecoveryService struct {
	api            adapter.IdentityAPI
	cache          store.ProfileCache
	keys           *keyring.Manager
	session        *session.Manager
	deriver        crypto.KeyDeriver
	vault          crypto.KeypairVault
	recovery       crypto.RecoveryVault
	pool           *workers.Pool
	serverIdentity string
	logger         *logger.Logger
}

// NewClientRecoveryService constructs a [ClientRecoveryService].
func NewClientRecoveryService(
	api adapter.IdentityAPI,
	cache store.ProfileCache,
	keys *keyring.Manager,
	sess *session.Manager,
	deriver crypto.KeyDeriver,
	vault crypto.KeypairVault,
	recovery crypto.RecoveryVault,
	pool *workers.Pool,
	serverIdentity string,
	log *logger.Logger,
) ClientRecoveryService {
	return &clientRecoveryService{
		api:            api,
		cache:          cache,
		keys:           keys,
		session:        sess,
		deriver:        deriver,
		vault:          vault,
		recovery:       recovery,
		pool:           pool,
		serverIdentity: serverIdentity,
		logger:         log,
	}
}

// RecoverWithMnemonic implements [ClientRecoveryService]. The caller must
// already hold a session (re-authenticated through the OAuth provider);
// the phrase proves ownership of the key material, not the identity.
func (r *clientRecoveryService) RecoverWithMnemonic(ctx context.Context, mnemonic string, newPassword []byte) (models.UserRecord, *crypto.SessionKeyring, error) {
	user, err := r.api.GetProfile(ctx)
	if err != nil {
		return models.UserRecord{}, nil, mapAdapterError(err)
	}
	if !user.Crypto.HasKeySetup() {
		return models.UserRecord{}, nil, ErrKeySetupRequired
	}

	var oldMaster []byte
	err = r.pool.Do(ctx, func() error {
		var rerr error
		oldMaster, rerr = r.recovery.Recover(mnemonic, user.Crypto.Recovery())
		return rerr
	})
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidMnemonic) || errors.Is(err, crypto.ErrWrongMnemonic) ||
			errors.Is(err, crypto.ErrEmptySecret) {
			return models.UserRecord{}, nil, fmt.Errorf("%w: %v", ErrCredential, err)
		}
		return models.UserRecord{}, nil, fmt.Errorf("recover master key: %w", err)
	}

	// The phrase checked out, so the keypairs must open under this key.
	ring, err := r.vault.DecryptAll(user.Crypto.Keypairs, oldMaster)
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("%w: %v", ErrCorruption, err)
	}

	newSalt, err := r.deriver.GenerateSalt()
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("generate account salt: %w", err)
	}

	var newMaster []byte
	err = r.pool.Do(ctx, func() error {
		var derr error
		newMaster, derr = r.deriver.DeriveKey(newPassword, newSalt)
		return derr
	})
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("derive new master key: %w", err)
	}

	rewrapped, err := r.vault.Rewrap(user.Crypto.Keypairs, oldMaster, newMaster)
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("%w: %v", ErrCorruption, err)
	}

	// The old phrase dies with the old password; mint a fresh one.
	bundle, err := r.recovery.Generate(newMaster)
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("generate recovery artifacts: %w", err)
	}

	if err := r.reregisterOpaque(ctx, user.Email, newPassword); err != nil {
		return models.UserRecord{}, nil, err
	}

	profile := models.AccountCryptoProfile{
		AccountSalt:          base64.StdEncoding.EncodeToString(newSalt),
		Keypairs:             rewrapped,
		EncryptedMasterKey:   bundle.Artifacts.EncryptedMasterKey,
		MasterKeyNonce:       bundle.Artifacts.MasterKeyNonce,
		EncryptedRecoveryKey: bundle.Artifacts.EncryptedRecoveryKey,
		RecoveryKeyNonce:     bundle.Artifacts.RecoveryKeyNonce,
		MnemonicHash:         bundle.Artifacts.MnemonicHash,
	}

	if err := r.api.UpdateCryptoProfile(ctx, profile); err != nil {
		return models.UserRecord{}, nil, mapAdapterError(err)
	}

	if err := r.keys.CacheExisting(newMaster, newSalt); err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("cache master key: %w", err)
	}
	r.session.StashMnemonic(bundle.Mnemonic)

	user.Crypto = profile
	if err := r.cache.SaveProfile(ctx, user); err != nil {
		r.logger.Warn().Err(err).Msg("profile cache write failed")
	}

	r.logger.Info().Str("email", user.Email).Msg("account recovered under new password")
	return user, ring, nil
}

// reregisterOpaque replaces the server-side OPAQUE record so future
// direct logins work with the new password.
func (r *clientRecoveryService) reregisterOpaque(ctx context.Context, email string, password []byte) error {
	flow, err := opaqueauth.NewFlow(email, r.serverIdentity)
	if err != nil {
		return fmt.Errorf("open opaque flow: %w", err)
	}

	resp, err := r.api.OpaqueRegisterInit(ctx, models.OpaqueMessage{
		Payload: base64.StdEncoding.EncodeToString(flow.RegisterInit(password)),
	})
	if err != nil {
		return mapAdapterError(err)
	}

	serverResponse, err := base64.StdEncoding.DecodeString(resp.Payload)
	if err != nil {
		return fmt.Errorf("%w: undecodable registration response", ErrServerTrust)
	}

	record, _, err := flow.RegisterFinalize(serverResponse)
	if err != nil {
		return fmt.Errorf("finalize opaque registration: %w", err)
	}

	err = r.api.OpaqueRegisterFinalize(ctx, models.OpaqueMessage{
		SessionID: resp.SessionID,
		Payload:   base64.StdEncoding.EncodeToString(record),
	})
	if err != nil {
		return mapAdapterError(err)
	}

	return nil
}
