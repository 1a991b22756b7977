package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkarpenko/zkvault/internal/adapter"
	"github.com/mkarpenko/zkvault/internal/config"
	"github.com/mkarpenko/zkvault/internal/crypto"
	"github.com/mkarpenko/zkvault/internal/keyring"
	"github.com/mkarpenko/zkvault/internal/logger"
	"github.com/mkarpenko/zkvault/internal/service"
	"github.com/mkarpenko/zkvault/internal/session"
	"github.com/mkarpenko/zkvault/internal/store"
	"github.com/mkarpenko/zkvault/internal/tui"
	"github.com/mkarpenko/zkvault/internal/workers"
)

type App struct {
	services *service.ClientServices
	session  *session.Manager
	pool     *workers.Pool
	ui       *tui.TUI
	logger   *logger.Logger
}

// NewApp builds the whole object graph from configuration. Nothing talks
// to the network until the user submits a form.
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	api, err := adapter.NewHTTPIdentityAPI(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create identity adapter: %w", err)
	}

	db, err := store.NewConnectSQLite(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("open local cache: %w", err)
	}
	cache := store.NewProfileCache(db, log)

	deriver := crypto.NewKeyDeriver()
	box := crypto.NewCipherBox()
	vault := crypto.NewKeypairVault(deriver, box)
	recovery := crypto.NewRecoveryVault(deriver, box)

	keys := keyring.NewManager(deriver)
	sess := session.NewManager()
	pool := workers.NewPool(cfg.Workers.PoolSize)

	services := service.NewClientServices(api, cache, keys, sess, deriver, vault, recovery, pool, cfg.App.ServerIdentity, log)

	ui, err := tui.New(services, sess, log)
	if err != nil {
		return nil, fmt.Errorf("create ui: %w", err)
	}

	return &App{services: services, session: sess, pool: pool, ui: ui, logger: log}, nil
}

// Run blocks until the user quits. A logout restarts the authentication
// flow in the same process.
func (a *App) Run() error {
	ctx := context.Background()

	a.pool.Run()
	defer a.pool.Shutdown()

	for {
		logout, err := a.ui.Run(ctx)
		if err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				a.services.AuthService.Logout(ctx)
				return nil
			}
			return err
		}
		if !logout {
			return nil
		}
	}
}
