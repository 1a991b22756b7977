package service

import (
	"context"
	"encoding/base64"
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

type clientOnboardService struct {
	api            adapter.IdentityAPI
	cache          store.ProfileCache
	keys           *keyring.Manager
	session        *session.Manager
	keyService     ClientKeyService
	deriver        crypto.KeyDeriver
	vault          crypto.KeypairVault
	recovery       crypto.RecoveryVault
	pool           *workers.Pool
	serverIdentity string
	logger         *logger.Logger
}

// NewClientOnboardService constructs a [ClientOnboardService].
func NewClientOnboardService(
	api adapter.IdentityAPI,
	cache store.ProfileCache,
	keys *keyring.Manager,
	sess *session.Manager,
	keySvc ClientKeyService,
	deriver crypto.KeyDeriver,
	vault crypto.KeypairVault,
	recovery crypto.RecoveryVault,
	pool *workers.Pool,
	serverIdentity string,
	log *logger.Logger,
) ClientOnboardService {
	return &clientOnboardService{
		api:            api,
		cache:          cache,
		keys:           keys,
		session:        sess,
		keyService:     keySvc,
		deriver:        deriver,
		vault:          vault,
		recovery:       recovery,
		pool:           pool,
		serverIdentity: serverIdentity,
		logger:         log,
	}
}

// CompleteOAuthSignup implements [ClientOnboardService].
func (o *clientOnboardService) CompleteOAuthSignup(ctx context.Context, provisionalToken string, password []byte) (models.UserRecord, *crypto.SessionKeyring, error) {
	o.api.SetToken(provisionalToken)
	if err := o.session.SetToken(provisionalToken); err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("store provisional token: %w", err)
	}

	user, err := o.api.GetProfile(ctx)
	if err != nil {
		return models.UserRecord{}, nil, mapAdapterError(err)
	}

	if !user.NeedsKeyBootstrap() {
		// Returning user authenticating through the OAuth provider. The
		// password was never proven on this path, so a decrypt failure
		// means the password is wrong.
		ring, err := o.keyService.Initialize(ctx, user, password)
		if err != nil {
			return models.UserRecord{}, nil, fmt.Errorf("%w: %v", ErrCredential, err)
		}
		return user, ring, nil
	}

	return o.bootstrap(ctx, user, password)
}

// bootstrap creates the complete crypto profile for a brand-new account.
func (o *clientOnboardService) bootstrap(ctx context.Context, user models.UserRecord, password []byte) (models.UserRecord, *crypto.SessionKeyring, error) {
	o.logger.Info().Str("email", user.Email).Msg("bootstrapping account keys")

	accountSalt, err := o.deriver.GenerateSalt()
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("generate account salt: %w", err)
	}

	var masterKey []byte
	var keypairs []models.EncryptedKeypair
	err = o.pool.Do(ctx, func() error {
		var derr error
		if masterKey, derr = o.keys.DeriveAndCache(password, accountSalt); derr != nil {
			return fmt.Errorf("derive master key: %w", derr)
		}
		if keypairs, derr = o.vault.GenerateAll(masterKey); derr != nil {
			return fmt.Errorf("generate keypairs: %w", derr)
		}
		return nil
	})
	if err != nil {
		o.discardBootstrap()
		return models.UserRecord{}, nil, err
	}

	bundle, err := o.recovery.Generate(masterKey)
	if err != nil {
		o.discardBootstrap()
		return models.UserRecord{}, nil, fmt.Errorf("generate recovery artifacts: %w", err)
	}

	opaqueRecord, err := o.registerOpaque(ctx, user.Email, password)
	if err != nil {
		o.discardBootstrap()
		return models.UserRecord{}, nil, err
	}

	profile := models.AccountCryptoProfile{
		AccountSalt:          base64.StdEncoding.EncodeToString(accountSalt),
		Keypairs:             keypairs,
		EncryptedMasterKey:   bundle.Artifacts.EncryptedMasterKey,
		MasterKeyNonce:       bundle.Artifacts.MasterKeyNonce,
		EncryptedRecoveryKey: bundle.Artifacts.EncryptedRecoveryKey,
		RecoveryKeyNonce:     bundle.Artifacts.RecoveryKeyNonce,
		MnemonicHash:         bundle.Artifacts.MnemonicHash,
	}

	created, err := o.api.CompleteOAuthRegistration(ctx, models.OAuthRegistrationBundle{
		Profile:      profile,
		OpaqueRecord: opaqueRecord,
	})
	if err != nil {
		o.discardBootstrap()
		return models.UserRecord{}, nil, mapAdapterError(err)
	}

	// Held in memory until the backup flow confirms the user wrote it down.
	o.session.StashMnemonic(bundle.Mnemonic)

	if err := o.cache.SaveProfile(ctx, created); err != nil {
		o.logger.Warn().Err(err).Msg("profile cache write failed")
	}

	ring, err := o.vault.DecryptAll(keypairs, masterKey)
	if err != nil {
		o.discardBootstrap()
		return models.UserRecord{}, nil, fmt.Errorf("%w: %v", ErrCorruption, err)
	}

	return created, ring, nil
}

// discardBootstrap drops the half-established state of a failed bootstrap
// so no master key or provisional token survives the error.
func (o *clientOnboardService) discardBootstrap() {
	o.keys.Clear()
	o.session.Clear()
	o.api.SetToken("")
}

// registerOpaque runs the OPAQUE registration under the provisional token
// and returns the base64 client record.
func (o *clientOnboardService) registerOpaque(ctx context.Context, email string, password []byte) (string, error) {
	flow, err := opaqueauth.NewFlow(email, o.serverIdentity)
	if err != nil {
		return "", fmt.Errorf("open opaque flow: %w", err)
	}

	resp, err := o.api.OpaqueRegisterInit(ctx, models.OpaqueMessage{
		Payload: base64.StdEncoding.EncodeToString(flow.RegisterInit(password)),
	})
	if err != nil {
		return "", mapAdapterError(err)
	}

	serverResponse, err := base64.StdEncoding.DecodeString(resp.Payload)
	if err != nil {
		return "", fmt.Errorf("%w: undecodable registration response", ErrServerTrust)
	}

	record, _, err := flow.RegisterFinalize(serverResponse)
	if err != nil {
		return "", fmt.Errorf("finalize opaque registration: %w", err)
	}

	return base64.StdEncoding.EncodeToString(record), nil
}
