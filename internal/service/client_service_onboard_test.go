// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkarpenko/zkvault/internal/adapter"
	"github.com/mkarpenko/zkvault/internal/keyring"
	"github.com/mkarpenko/zkvault/internal/logger"
	"github.com/mkarpenko/zkvault/internal/mock"
	"github.com/mkarpenko/zkvault/internal/session"
	"github.com/mkarpenko/zkvault/models"
)

type onboardEnv struct {
	svc     ClientOnboardService
	api     *mock.MockIdentityAPI
	cache   *mock.MockProfileCache
	keys    *keyring.Manager
	session *session.Manager
	fx      *cryptoFixture
}

func newOnboardEnv(t *testing.T, ctrl *gomock.Controller, fx *cryptoFixture) *onboardEnv {
	t.Helper()

	api := mock.NewMockIdentityAPI(ctrl)
	cache := mock.NewMockProfileCache(ctrl)
	keys := keyring.NewManager(fx.deriver)
	sess := session.NewManager()
	pool := newTestPool(t)

	keySvc := NewClientKeyService(api, cache, keys, fx.vault, pool, logger.Nop())
	svc := NewClientOnboardService(api, cache, keys, sess, keySvc, fx.deriver, fx.vault, fx.recovery, pool, testServerIdentity, logger.Nop())

	return &onboardEnv{svc: svc, api: api, cache: cache, keys: keys, session: sess, fx: fx}
}

func TestClientOnboardService_CompleteOAuthSignup_NewAccountBootstrap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "new@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newOnboardEnv(t, ctrl, fx)
	stub := newOpaqueStub(t)

	// Account straight from the OAuth redirect: identity only, no keys.
	fresh := models.UserRecord{UserID: 42, Email: email, Name: "New User"}
	require.True(t, fresh.NeedsKeyBootstrap())

	var uploaded models.OAuthRegistrationBundle
	gomock.InOrder(
		env.api.EXPECT().SetToken("provisional-token"),
		env.api.EXPECT().GetProfile(gomock.Any()).Return(fresh, nil),
		env.api.EXPECT().OpaqueRegisterInit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msg models.OpaqueMessage) (models.OpaqueMessage, error) {
				request, err := base64.StdEncoding.DecodeString(msg.Payload)
				require.NoError(t, err)
				return models.OpaqueMessage{
					Payload: base64.StdEncoding.EncodeToString(stub.registerResponse(t, request)),
				}, nil
			}),
		env.api.EXPECT().CompleteOAuthRegistration(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, bundle models.OAuthRegistrationBundle) (models.UserRecord, error) {
				uploaded = bundle
				created := fresh
				created.Crypto = bundle.Profile
				return created, nil
			}),
		env.cache.EXPECT().SaveProfile(gomock.Any(), gomock.Any()).Return(nil),
	)

	user, ring, err := env.svc.CompleteOAuthSignup(context.Background(), "provisional-token", []byte(password))
	require.NoError(t, err)
	require.NotNil(t, ring)
	assert.Equal(t, email, user.Email)

	// The uploaded bundle is a complete profile.
	assert.Len(t, uploaded.Profile.Keypairs, 4)
	assert.NotEmpty(t, uploaded.Profile.AccountSalt)
	assert.NotEmpty(t, uploaded.Profile.EncryptedMasterKey)
	assert.NotEmpty(t, uploaded.Profile.EncryptedRecoveryKey)
	assert.NotEmpty(t, uploaded.Profile.MnemonicHash)
	assert.NotEmpty(t, uploaded.OpaqueRecord)
	assert.True(t, user.Crypto.HasKeySetup())

	// The master key is cached and the phrase waits for backup.
	assert.True(t, env.keys.HasKey())
	phrase, ok := env.session.PeekMnemonic()
	require.True(t, ok)
	assert.Len(t, strings.Fields(phrase), 12)

	// The stashed phrase really recovers the cached master key.
	recovered, err := fx.recovery.Recover(phrase, uploaded.Profile.Recovery())
	require.NoError(t, err)
	cached, err := env.keys.Get()
	require.NoError(t, err)
	assert.Equal(t, cached, recovered)
}

func TestClientOnboardService_CompleteOAuthSignup_ConfirmedPuzzleClearsPhrase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "new@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newOnboardEnv(t, ctrl, fx)
	stub := newOpaqueStub(t)

	fresh := models.UserRecord{UserID: 42, Email: email}
	gomock.InOrder(
		env.api.EXPECT().SetToken("provisional-token"),
		env.api.EXPECT().GetProfile(gomock.Any()).Return(fresh, nil),
		env.api.EXPECT().OpaqueRegisterInit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msg models.OpaqueMessage) (models.OpaqueMessage, error) {
				request, err := base64.StdEncoding.DecodeString(msg.Payload)
				require.NoError(t, err)
				return models.OpaqueMessage{
					Payload: base64.StdEncoding.EncodeToString(stub.registerResponse(t, request)),
				}, nil
			}),
		env.api.EXPECT().CompleteOAuthRegistration(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, bundle models.OAuthRegistrationBundle) (models.UserRecord, error) {
				created := fresh
				created.Crypto = bundle.Profile
				return created, nil
			}),
		env.cache.EXPECT().SaveProfile(gomock.Any(), gomock.Any()).Return(nil),
	)

	_, _, err := env.svc.CompleteOAuthSignup(context.Background(), "provisional-token", []byte(password))
	require.NoError(t, err)

	// Solve the backup puzzle against the stashed phrase, then discard it.
	phrase, ok := env.session.PeekMnemonic()
	require.True(t, ok)

	puzzle, err := NewBackupPuzzle(phrase)
	require.NoError(t, err)
	words, err := puzzle.Words()
	require.NoError(t, err)
	require.NoError(t, puzzle.StartVerification())
	for _, i := range puzzle.Hidden() {
		require.NoError(t, puzzle.Fill(i, words[i]))
	}
	require.NoError(t, puzzle.Confirm())

	_, ok = env.session.TakeMnemonic()
	require.True(t, ok)
	_, ok = env.session.PeekMnemonic()
	assert.False(t, ok)
}

func TestClientOnboardService_CompleteOAuthSignup_ExistingAccountLogsIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "user@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newOnboardEnv(t, ctrl, fx)

	gomock.InOrder(
		env.api.EXPECT().SetToken("provisional-token"),
		env.api.EXPECT().GetProfile(gomock.Any()).Return(fx.user, nil),
		env.cache.EXPECT().SaveProfile(gomock.Any(), fx.user).Return(nil),
	)

	user, ring, err := env.svc.CompleteOAuthSignup(context.Background(), "provisional-token", []byte(password))
	require.NoError(t, err)
	require.NotNil(t, ring)
	assert.Equal(t, email, user.Email)
	assert.True(t, env.keys.HasKey())

	// No new phrase on this path.
	_, ok := env.session.PeekMnemonic()
	assert.False(t, ok)
}

func TestClientOnboardService_CompleteOAuthSignup_ExistingAccountWrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "user@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newOnboardEnv(t, ctrl, fx)

	gomock.InOrder(
		env.api.EXPECT().SetToken("provisional-token"),
		env.api.EXPECT().GetProfile(gomock.Any()).Return(fx.user, nil),
		env.cache.EXPECT().Invalidate(gomock.Any(), email).Return(nil),
		env.api.EXPECT().GetProfile(gomock.Any()).Return(fx.user, nil),
	)

	// Nothing proved this password, so the failure is a credential error.
	_, ring, err := env.svc.CompleteOAuthSignup(context.Background(), "provisional-token", []byte("a wrong guess"))
	assert.ErrorIs(t, err, ErrCredential)
	assert.Nil(t, ring)
	assert.False(t, env.keys.HasKey())
}

// Keypair material decrypted during bootstrap must round-trip through the
// profile that was uploaded.
func TestClientOnboardService_BootstrapProfileDecryptsUnderDerivedKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "new@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newOnboardEnv(t, ctrl, fx)
	stub := newOpaqueStub(t)

	var uploaded models.OAuthRegistrationBundle
	gomock.InOrder(
		env.api.EXPECT().SetToken("provisional-token"),
		env.api.EXPECT().GetProfile(gomock.Any()).Return(models.UserRecord{Email: email}, nil),
		env.api.EXPECT().OpaqueRegisterInit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msg models.OpaqueMessage) (models.OpaqueMessage, error) {
				request, err := base64.StdEncoding.DecodeString(msg.Payload)
				require.NoError(t, err)
				return models.OpaqueMessage{
					Payload: base64.StdEncoding.EncodeToString(stub.registerResponse(t, request)),
				}, nil
			}),
		env.api.EXPECT().CompleteOAuthRegistration(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, bundle models.OAuthRegistrationBundle) (models.UserRecord, error) {
				uploaded = bundle
				return models.UserRecord{Email: email, Crypto: bundle.Profile}, nil
			}),
		env.cache.EXPECT().SaveProfile(gomock.Any(), gomock.Any()).Return(nil),
	)

	_, _, err := env.svc.CompleteOAuthSignup(context.Background(), "provisional-token", []byte(password))
	require.NoError(t, err)

	// Re-derive from scratch, as a later login on another device would.
	salt, err := base64.StdEncoding.DecodeString(uploaded.Profile.AccountSalt)
	require.NoError(t, err)
	masterKey, err := fx.deriver.DeriveKey([]byte(password), salt)
	require.NoError(t, err)

	ring, err := fx.vault.DecryptAll(uploaded.Profile.Keypairs, masterKey)
	require.NoError(t, err)
	assert.NotNil(t, ring)
}

func TestClientOnboardService_FailedBootstrapLeavesNoState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "new@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newOnboardEnv(t, ctrl, fx)

	gomock.InOrder(
		env.api.EXPECT().SetToken("provisional-token"),
		env.api.EXPECT().GetProfile(gomock.Any()).Return(models.UserRecord{UserID: 42, Email: email}, nil),
		env.api.EXPECT().OpaqueRegisterInit(gomock.Any(), gomock.Any()).
			Return(models.OpaqueMessage{}, adapter.ErrInternalServerError),
		env.api.EXPECT().SetToken(""),
	)

	_, _, err := env.svc.CompleteOAuthSignup(context.Background(), "provisional-token", []byte(password))
	assert.ErrorIs(t, err, ErrTransport)

	// The half-built bootstrap must not survive the failure.
	assert.False(t, env.keys.HasKey())
	assert.False(t, env.session.IsAuthenticated())
	_, stashed := env.session.PeekMnemonic()
	assert.False(t, stashed)
}
