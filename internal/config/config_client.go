package config

import (
	"fmt"
	"runtime"
	"time"
)

// Defaults applied by GetClientConfig when neither flags, env, nor the
// JSON file set a value.
const (
	DefaultServerIdentity = "zkvault"
	DefaultRequestTimeout = 30 * time.Second
	DefaultCacheDSN       = "zkvault.db"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// ServerIdentity is the identity string bound into OPAQUE exchanges.
	ServerIdentity string
	// Version is the application version string.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the identity service endpoint.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	// DSN is the SQLite connection string for the profile cache.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains background worker settings.
type ClientWorkers struct {
	// PoolSize is the number of goroutines for CPU-heavy crypto jobs.
	PoolSize int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains transport address and timeout.
	Adapter ClientAdapter
	// Storage contains local storage settings.
	Storage ClientStorage
	// Workers contains worker pool settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client config from the merged
// structured configuration, applying defaults for anything left unset.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			ServerIdentity: cfg.App.ServerIdentity,
			Version:        cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{PoolSize: cfg.Workers.PoolSize},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.App.ServerIdentity == "" {
		cfg.App.ServerIdentity = DefaultServerIdentity
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultCacheDSN
	}
	if cfg.Workers.PoolSize == 0 {
		cfg.Workers.PoolSize = runtime.NumCPU()
	}
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.PoolSize < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
