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
	"github.com/mkarpenko/zkvault/internal/srp"
	"github.com/mkarpenko/zkvault/internal/store"
	"github.com/mkarpenko/zkvault/internal/workers"
	"github.com/mkarpenko/zkvault/models"
)

type clientAuthService struct {
	api            adapter.IdentityAPI
	keys           *keyring.Manager
	session        *session.Manager
	keyService     ClientKeyService
	pool           *workers.Pool
	serverIdentity string
	logger         *logger.Logger
}

// NewClientAuthService constructs a [ClientAuthService].
func NewClientAuthService(api adapter.IdentityAPI, keys *keyring.Manager, sess *session.Manager, keySvc ClientKeyService, pool *workers.Pool, serverIdentity string, log *logger.Logger) ClientAuthService {
	return &clientAuthService{
		api:            api,
		keys:           keys,
		session:        sess,
		keyService:     keySvc,
		pool:           pool,
		serverIdentity: serverIdentity,
		logger:         log,
	}
}

// PasswordLogin implements [ClientAuthService].
func (a *clientAuthService) PasswordLogin(ctx context.Context, email string, password []byte) (models.UserRecord, *crypto.SessionKeyring, error) {
	srpSession, clientA, err := srp.NewSession(email)
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("open srp session: %w", err)
	}

	challenge, err := a.api.SRPChallenge(ctx, models.SRPChallengeRequest{
		Email: email,
		A:     base64.StdEncoding.EncodeToString(clientA),
	})
	if err != nil {
		mapped := mapAdapterError(err)
		if errors.Is(mapped, ErrTransport) {
			return a.offlineStart(ctx, email, password, mapped)
		}
		return models.UserRecord{}, nil, mapped
	}

	salt, err := base64.StdEncoding.DecodeString(challenge.Salt)
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("%w: undecodable srp salt", ErrServerTrust)
	}
	serverB, err := base64.StdEncoding.DecodeString(challenge.B)
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("%w: undecodable srp public value", ErrServerTrust)
	}

	var clientProof []byte
	err = a.pool.Do(ctx, func() error {
		var cerr error
		clientProof, cerr = srpSession.Complete(string(password), salt, serverB)
		return cerr
	})
	if err != nil {
		// A degenerate B is the server trying to cheat, not a network issue.
		if errors.Is(err, srp.ErrBadServerPublic) || errors.Is(err, srp.ErrBadScrambler) {
			return models.UserRecord{}, nil, fmt.Errorf("%w: %v", ErrServerTrust, err)
		}
		return models.UserRecord{}, nil, fmt.Errorf("compute client proof: %w", err)
	}

	verify, err := a.api.SRPVerify(ctx, models.SRPVerifyRequest{
		Email:       email,
		SessionID:   challenge.SessionID,
		ClientProof: base64.StdEncoding.EncodeToString(clientProof),
	})
	if err != nil {
		return models.UserRecord{}, nil, mapAdapterError(err)
	}

	serverProof, err := base64.StdEncoding.DecodeString(verify.ServerProof)
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("%w: undecodable server proof", ErrServerTrust)
	}
	// The token in this response is untrusted until M2 checks out.
	if err := srpSession.VerifyServerProof(serverProof); err != nil {
		a.logger.Warn().Str("email", email).Msg("server proof mismatch, dropping session")
		return models.UserRecord{}, nil, fmt.Errorf("%w: %v", ErrServerTrust, err)
	}

	a.api.SetToken(verify.Token)
	if err := a.session.SetToken(verify.Token); err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("store session token: %w", err)
	}

	ring, err := a.keyService.Initialize(ctx, verify.User, password)
	if err != nil {
		// SRP already proved the password, so a decrypt failure here means
		// the stored key material is bad, not the credential.
		return models.UserRecord{}, nil, a.classifyInitError(err)
	}

	return verify.User, ring, nil
}

// OpaqueLogin implements [ClientAuthService].
func (a *clientAuthService) OpaqueLogin(ctx context.Context, email string, password []byte) (models.UserRecord, *crypto.SessionKeyring, error) {
	flow, err := opaqueauth.NewFlow(email, a.serverIdentity)
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("open opaque flow: %w", err)
	}

	var ke1 []byte
	if err := a.pool.Do(ctx, func() error {
		ke1 = flow.LoginInit(password)
		return nil
	}); err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("compute ke1: %w", err)
	}

	ke2Msg, err := a.api.OpaqueLoginInit(ctx, models.OpaqueMessage{
		Payload: base64.StdEncoding.EncodeToString(ke1),
	})
	if err != nil {
		return models.UserRecord{}, nil, mapAdapterError(err)
	}

	ke2, err := base64.StdEncoding.DecodeString(ke2Msg.Payload)
	if err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("%w: undecodable ke2", ErrServerTrust)
	}

	ke3, _, _, err := flow.LoginFinish(ke2)
	if err != nil {
		// OPAQUE folds "wrong password" and "impostor server" into one
		// failure; either way the client aborts without sending ke3.
		return models.UserRecord{}, nil, fmt.Errorf("%w: %v", ErrCredential, err)
	}

	result, err := a.api.OpaqueLoginFinish(ctx, models.OpaqueMessage{
		SessionID: ke2Msg.SessionID,
		Payload:   base64.StdEncoding.EncodeToString(ke3),
	})
	if err != nil {
		return models.UserRecord{}, nil, mapAdapterError(err)
	}

	a.api.SetToken(result.Token)
	if err := a.session.SetToken(result.Token); err != nil {
		return models.UserRecord{}, nil, fmt.Errorf("store session token: %w", err)
	}

	ring, err := a.keyService.Initialize(ctx, result.User, password)
	if err != nil {
		return models.UserRecord{}, nil, a.classifyInitError(err)
	}

	return result.User, ring, nil
}

// Logout implements [ClientAuthService].
func (a *clientAuthService) Logout(ctx context.Context) {
	a.session.Clear()
	a.keys.Clear()
	a.api.SetToken("")
	a.logger.Debug().Msg("session cleared")
}

// offlineStart opens the account from the local profile cache when the
// server cannot be reached. No session token is issued; the keyring is
// usable until the next successful login replaces it.
func (a *clientAuthService) offlineStart(ctx context.Context, email string, password []byte, cause error) (models.UserRecord, *crypto.SessionKeyring, error) {
	user, ring, err := a.keyService.InitializeCached(ctx, email, password)
	switch {
	case err == nil:
		a.logger.Warn().Str("email", email).Msg("server unreachable, starting from cached profile")
		return user, ring, nil
	case errors.Is(err, store.ErrProfileNotCached), errors.Is(err, ErrKeySetupRequired):
		// Nothing usable locally; the transport failure is the real story.
		return models.UserRecord{}, nil, cause
	default:
		// A cached copy exists but would not open. The password was never
		// proven, so the credential is the prime suspect.
		return models.UserRecord{}, nil, fmt.Errorf("%w: %v", ErrCredential, err)
	}
}

// classifyInitError maps a key-initialization failure on a
// password-proven path. The password was verified by the exchange, so
// decrypt failures indicate corrupted key material.
func (a *clientAuthService) classifyInitError(err error) error {
	switch {
	case errors.Is(err, ErrKeySetupRequired),
		errors.Is(err, ErrTransport),
		errors.Is(err, ErrCredential),
		errors.Is(err, ErrPolicyViolation):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrCorruption, err)
	}
}
