// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/bytemare/opaque"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkarpenko/zkvault/internal/adapter"
	"github.com/mkarpenko/zkvault/internal/keyring"
	"github.com/mkarpenko/zkvault/internal/logger"
	"github.com/mkarpenko/zkvault/internal/mock"
	"github.com/mkarpenko/zkvault/internal/opaqueauth"
	"github.com/mkarpenko/zkvault/internal/session"
	"github.com/mkarpenko/zkvault/internal/srp"
	"github.com/mkarpenko/zkvault/internal/store"
	"github.com/mkarpenko/zkvault/models"
)

const testServerIdentity = "zkvault"

type authEnv struct {
	svc     ClientAuthService
	api     *mock.MockIdentityAPI
	cache   *mock.MockProfileCache
	keys    *keyring.Manager
	session *session.Manager
}

func newAuthEnv(t *testing.T, ctrl *gomock.Controller, fx *cryptoFixture) *authEnv {
	t.Helper()

	api := mock.NewMockIdentityAPI(ctrl)
	cache := mock.NewMockProfileCache(ctrl)
	keys := keyring.NewManager(fx.deriver)
	sess := session.NewManager()
	pool := newTestPool(t)

	keySvc := NewClientKeyService(api, cache, keys, fx.vault, pool, logger.Nop())
	svc := NewClientAuthService(api, keys, sess, keySvc, pool, testServerIdentity, logger.Nop())

	return &authEnv{svc: svc, api: api, cache: cache, keys: keys, session: sess}
}

// srpStub answers the two SRP endpoints with the real verifier-holder math.
type srpStub struct {
	server  *srp.Server
	clientA []byte
}

func newSRPStub(t *testing.T, email, password string) *srpStub {
	t.Helper()
	salt := []byte("srp-salt-16-byte")
	verifier := srp.ComputeVerifier(email, password, salt)
	return &srpStub{server: srp.NewServer(salt, verifier)}
}

func (s *srpStub) challenge(t *testing.T, req models.SRPChallengeRequest) (models.SRPChallengeResponse, error) {
	t.Helper()
	var err error
	s.clientA, err = base64.StdEncoding.DecodeString(req.A)
	require.NoError(t, err)

	salt, serverB, err := s.server.Challenge()
	require.NoError(t, err)
	return models.SRPChallengeResponse{
		SessionID: "sess-1",
		Salt:      base64.StdEncoding.EncodeToString(salt),
		B:         base64.StdEncoding.EncodeToString(serverB),
	}, nil
}

func (s *srpStub) verify(t *testing.T, req models.SRPVerifyRequest, token string, user models.UserRecord) (models.SRPVerifyResponse, error) {
	t.Helper()
	m1, err := base64.StdEncoding.DecodeString(req.ClientProof)
	require.NoError(t, err)

	m2, err := s.server.Verify(req.Email, s.clientA, m1)
	if err != nil {
		return models.SRPVerifyResponse{}, adapter.ErrUnauthorized
	}
	return models.SRPVerifyResponse{
		ServerProof: base64.StdEncoding.EncodeToString(m2),
		Token:       token,
		User:        user,
	}, nil
}

func TestClientAuthService_PasswordLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "user@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newAuthEnv(t, ctrl, fx)
	stub := newSRPStub(t, email, password)

	gomock.InOrder(
		env.api.EXPECT().SRPChallenge(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.SRPChallengeRequest) (models.SRPChallengeResponse, error) {
				assert.Equal(t, email, req.Email)
				return stub.challenge(t, req)
			}),
		env.api.EXPECT().SRPVerify(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.SRPVerifyRequest) (models.SRPVerifyResponse, error) {
				return stub.verify(t, req, "token-123", fx.user)
			}),
		env.api.EXPECT().SetToken("token-123"),
		env.cache.EXPECT().SaveProfile(gomock.Any(), fx.user).Return(nil),
	)

	user, ring, err := env.svc.PasswordLogin(context.Background(), email, []byte(password))
	require.NoError(t, err)
	require.NotNil(t, ring)
	assert.Equal(t, email, user.Email)
	assert.True(t, env.session.IsAuthenticated())
	assert.True(t, env.keys.HasKey())
}

func TestClientAuthService_PasswordLogin_TamperedServerProofAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "user@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newAuthEnv(t, ctrl, fx)
	stub := newSRPStub(t, email, password)

	gomock.InOrder(
		env.api.EXPECT().SRPChallenge(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.SRPChallengeRequest) (models.SRPChallengeResponse, error) {
				return stub.challenge(t, req)
			}),
		env.api.EXPECT().SRPVerify(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.SRPVerifyRequest) (models.SRPVerifyResponse, error) {
				resp, err := stub.verify(t, req, "token-123", fx.user)
				require.NoError(t, err)

				// Single bit flip in M2. The server accepted M1, but the
				// client must still refuse the session.
				m2, derr := base64.StdEncoding.DecodeString(resp.ServerProof)
				require.NoError(t, derr)
				m2[0] ^= 0x01
				resp.ServerProof = base64.StdEncoding.EncodeToString(m2)
				return resp, nil
			}),
	)

	// No SetToken expectation: the token from the response must be dropped.
	_, _, err := env.svc.PasswordLogin(context.Background(), email, []byte(password))
	assert.ErrorIs(t, err, ErrServerTrust)
	assert.False(t, env.session.IsAuthenticated())
	assert.False(t, env.keys.HasKey())
}

func TestClientAuthService_PasswordLogin_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "user@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newAuthEnv(t, ctrl, fx)
	stub := newSRPStub(t, email, password)

	gomock.InOrder(
		env.api.EXPECT().SRPChallenge(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.SRPChallengeRequest) (models.SRPChallengeResponse, error) {
				return stub.challenge(t, req)
			}),
		env.api.EXPECT().SRPVerify(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.SRPVerifyRequest) (models.SRPVerifyResponse, error) {
				return stub.verify(t, req, "token-123", fx.user)
			}),
	)

	_, _, err := env.svc.PasswordLogin(context.Background(), email, []byte("a wrong guess"))
	assert.ErrorIs(t, err, ErrCredential)
}

func TestClientAuthService_PasswordLogin_OfflineStartsFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "user@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newAuthEnv(t, ctrl, fx)

	// No SetToken expectation: an offline start never issues a session.
	gomock.InOrder(
		env.api.EXPECT().SRPChallenge(gomock.Any(), gomock.Any()).
			Return(models.SRPChallengeResponse{}, adapter.ErrBadGateway),
		env.cache.EXPECT().GetProfile(gomock.Any(), email).Return(fx.user, nil),
	)

	user, ring, err := env.svc.PasswordLogin(context.Background(), email, []byte(password))
	require.NoError(t, err)
	require.NotNil(t, ring)
	assert.Equal(t, fx.user, user)
	assert.True(t, env.keys.HasKey())
	assert.False(t, env.session.IsAuthenticated())
}

func TestClientAuthService_PasswordLogin_OfflineWrongPasswordExposesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "user@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newAuthEnv(t, ctrl, fx)

	gomock.InOrder(
		env.api.EXPECT().SRPChallenge(gomock.Any(), gomock.Any()).
			Return(models.SRPChallengeResponse{}, adapter.ErrBadGateway),
		env.cache.EXPECT().GetProfile(gomock.Any(), email).Return(fx.user, nil),
	)

	_, _, err := env.svc.PasswordLogin(context.Background(), email, []byte("a wrong guess"))
	assert.ErrorIs(t, err, ErrCredential)
	assert.False(t, env.keys.HasKey())
}

func TestClientAuthService_PasswordLogin_OfflineWithoutCacheIsTransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "user@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newAuthEnv(t, ctrl, fx)

	gomock.InOrder(
		env.api.EXPECT().SRPChallenge(gomock.Any(), gomock.Any()).
			Return(models.SRPChallengeResponse{}, adapter.ErrBadGateway),
		env.cache.EXPECT().GetProfile(gomock.Any(), email).
			Return(models.UserRecord{}, store.ErrProfileNotCached),
	)

	_, _, err := env.svc.PasswordLogin(context.Background(), email, []byte(password))
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClientAuthService_PasswordLogin_CorruptKeypairsAfterProvenPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "user@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newAuthEnv(t, ctrl, fx)
	stub := newSRPStub(t, email, password)

	// A profile whose wrapped keys no longer open, even though the password
	// is right: both the login response and the refetched copy carry it.
	corrupt := fx.user
	corrupt.Crypto.Keypairs = append([]models.EncryptedKeypair(nil), fx.user.Crypto.Keypairs...)
	corrupt.Crypto.Keypairs[0].EncryptionKey = base64.StdEncoding.EncodeToString([]byte("not the wrapped key, tag fails"))

	gomock.InOrder(
		env.api.EXPECT().SRPChallenge(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.SRPChallengeRequest) (models.SRPChallengeResponse, error) {
				return stub.challenge(t, req)
			}),
		env.api.EXPECT().SRPVerify(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.SRPVerifyRequest) (models.SRPVerifyResponse, error) {
				return stub.verify(t, req, "token-123", corrupt)
			}),
		env.api.EXPECT().SetToken("token-123"),
		env.cache.EXPECT().Invalidate(gomock.Any(), email).Return(nil),
		env.api.EXPECT().GetProfile(gomock.Any()).Return(corrupt, nil),
	)

	_, _, err := env.svc.PasswordLogin(context.Background(), email, []byte(password))
	assert.ErrorIs(t, err, ErrCorruption)
}

// opaqueStub drives the server half of the OPAQUE protocol for login and
// registration endpoints.
type opaqueStub struct {
	conf       *opaque.Configuration
	server     *opaque.Server
	privateKey []byte
	publicKey  []byte
	oprfSeed   []byte
	serverID   []byte

	record *opaque.ClientRecord
}

func newOpaqueStub(t *testing.T) *opaqueStub {
	t.Helper()
	conf := opaque.DefaultConfiguration()
	server, err := conf.Server()
	require.NoError(t, err)
	sk, pk := conf.KeyGen()
	return &opaqueStub{
		conf:       conf,
		server:     server,
		privateKey: sk,
		publicKey:  pk,
		oprfSeed:   conf.GenerateOPRFSeed(),
		serverID:   []byte(testServerIdentity),
	}
}

// registerResponse answers an OPAQUE registration request.
func (st *opaqueStub) registerResponse(t *testing.T, request []byte) []byte {
	t.Helper()
	req, err := st.server.Deserialize.RegistrationRequest(request)
	require.NoError(t, err)
	pks, err := st.server.Deserialize.DecodeAkePublicKey(st.publicKey)
	require.NoError(t, err)
	credID := opaque.RandomBytes(64)
	st.record = &opaque.ClientRecord{CredentialIdentifier: credID}
	return st.server.RegistrationResponse(req, pks, credID, st.oprfSeed).Serialize()
}

// storeRecord finishes a registration with the client's record.
func (st *opaqueStub) storeRecord(t *testing.T, clientIdentity string, record []byte) {
	t.Helper()
	rec, err := st.server.Deserialize.RegistrationRecord(record)
	require.NoError(t, err)
	st.record.ClientIdentity = []byte(clientIdentity)
	st.record.RegistrationRecord = rec
}

// enroll runs the whole client-side registration so login tests start from
// an account with a stored credential.
func (st *opaqueStub) enroll(t *testing.T, clientID string, password []byte) {
	t.Helper()
	flow, err := opaqueauth.NewFlow(clientID, testServerIdentity)
	require.NoError(t, err)
	response := st.registerResponse(t, flow.RegisterInit(password))
	record, _, err := flow.RegisterFinalize(response)
	require.NoError(t, err)
	st.storeRecord(t, clientID, record)
}

// loginResponse answers KE1 with KE2.
func (st *opaqueStub) loginResponse(t *testing.T, ke1Bytes []byte) []byte {
	t.Helper()
	ke1, err := st.server.Deserialize.KE1(ke1Bytes)
	require.NoError(t, err)
	require.NoError(t, st.server.SetKeyMaterial(st.serverID, st.privateKey, st.publicKey, st.oprfSeed))
	ke2, err := st.server.LoginInit(ke1, st.record)
	require.NoError(t, err)
	return ke2.Serialize()
}

// loginFinish verifies KE3.
func (st *opaqueStub) loginFinish(t *testing.T, ke3Bytes []byte) error {
	t.Helper()
	ke3, err := st.server.Deserialize.KE3(ke3Bytes)
	if err != nil {
		return err
	}
	return st.server.LoginFinish(ke3)
}

func TestClientAuthService_OpaqueLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "user@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newAuthEnv(t, ctrl, fx)

	stub := newOpaqueStub(t)
	stub.enroll(t, email, []byte(password))

	gomock.InOrder(
		env.api.EXPECT().OpaqueLoginInit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msg models.OpaqueMessage) (models.OpaqueMessage, error) {
				ke1, err := base64.StdEncoding.DecodeString(msg.Payload)
				require.NoError(t, err)
				return models.OpaqueMessage{
					SessionID: "sess-1",
					Payload:   base64.StdEncoding.EncodeToString(stub.loginResponse(t, ke1)),
				}, nil
			}),
		env.api.EXPECT().OpaqueLoginFinish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msg models.OpaqueMessage) (models.OpaqueLoginResult, error) {
				assert.Equal(t, "sess-1", msg.SessionID)
				ke3, err := base64.StdEncoding.DecodeString(msg.Payload)
				require.NoError(t, err)
				require.NoError(t, stub.loginFinish(t, ke3))
				return models.OpaqueLoginResult{Token: "token-456", User: fx.user}, nil
			}),
		env.api.EXPECT().SetToken("token-456"),
		env.cache.EXPECT().SaveProfile(gomock.Any(), fx.user).Return(nil),
	)

	user, ring, err := env.svc.OpaqueLogin(context.Background(), email, []byte(password))
	require.NoError(t, err)
	require.NotNil(t, ring)
	assert.Equal(t, email, user.Email)
	assert.True(t, env.session.IsAuthenticated())
}

func TestClientAuthService_OpaqueLogin_WrongPasswordNeverSendsKE3(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const email, password = "user@example.com", "correct-horse-battery"
	fx := newCryptoFixture(t, email, []byte(password))
	env := newAuthEnv(t, ctrl, fx)

	stub := newOpaqueStub(t)
	stub.enroll(t, email, []byte(password))

	// No OpaqueLoginFinish expectation: the client aborts before KE3.
	env.api.EXPECT().OpaqueLoginInit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.OpaqueMessage) (models.OpaqueMessage, error) {
			ke1, err := base64.StdEncoding.DecodeString(msg.Payload)
			require.NoError(t, err)
			return models.OpaqueMessage{
				Payload: base64.StdEncoding.EncodeToString(stub.loginResponse(t, ke1)),
			}, nil
		})

	_, _, err := env.svc.OpaqueLogin(context.Background(), email, []byte("a wrong guess"))
	assert.ErrorIs(t, err, ErrCredential)
	assert.False(t, env.session.IsAuthenticated())
}

func TestClientAuthService_Logout_PurgesEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := newCryptoFixture(t, "user@example.com", []byte("pw-logout-test"))
	env := newAuthEnv(t, ctrl, fx)

	require.NoError(t, env.session.SetToken("token-123"))
	env.session.StashMnemonic("some phrase")
	require.NoError(t, env.keys.CacheExisting(fx.masterKey, fx.salt))

	env.api.EXPECT().SetToken("")

	env.svc.Logout(context.Background())
	assert.False(t, env.session.IsAuthenticated())
	assert.False(t, env.keys.HasKey())
	_, ok := env.session.PeekMnemonic()
	assert.False(t, ok)
}
