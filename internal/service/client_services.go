package service

import (
	"github.com/mkarpenko/zkvault/internal/adapter"
	"github.com/mkarpenko/zkvault/internal/crypto"
	"github.com/mkarpenko/zkvault/internal/keyring"
	"github.com/mkarpenko/zkvault/internal/logger"
	"github.com/mkarpenko/zkvault/internal/session"
	"github.com/mkarpenko/zkvault/internal/store"
	"github.com/mkarpenko/zkvault/internal/workers"
)

// ClientServices bundles the account-lifecycle services behind one
// composition point.
type ClientServices struct {
	AuthService     ClientAuthService
	OnboardService  ClientOnboardService
	KeyService      ClientKeyService
	RecoveryService ClientRecoveryService
}

// NewClientServices wires the full service graph on top of shared state:
// one keyring, one session, one worker pool.
func NewClientServices(
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
) *ClientServices {
	keySvc := NewClientKeyService(api, cache, keys, vault, pool, log)

	return &ClientServices{
		AuthService:     NewClientAuthService(api, keys, sess, keySvc, pool, serverIdentity, log),
		OnboardService:  NewClientOnboardService(api, cache, keys, sess, keySvc, deriver, vault, recovery, pool, serverIdentity, log),
		KeyService:      keySvc,
		RecoveryService: NewClientRecoveryService(api, cache, keys, sess, deriver, vault, recovery, pool, serverIdentity, log),
	}
}
