// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// zkvault client. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the OPAQUE server
	// identity and the application version.
	App App `envPrefix:"APP_"`

	// Adapter holds network address and timeout settings for the identity
	// service transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the local profile cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for the background worker pool that
	// runs key derivation off the UI goroutine.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// ServerIdentity is the identity string bound into OPAQUE exchanges.
	// Both sides must agree on it or every login fails.
	// Env: APP_SERVER_IDENTITY
	ServerIdentity string `env:"SERVER_IDENTITY"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds network settings for the outbound transport layer.
type Adapter struct {
	// HTTPAddress is the identity service endpoint, in "host:port" or full
	// URL form (e.g. "vault.example.com:8080", "https://vault.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request before the client cancels it (e.g. "30s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for local persistence.
type Storage struct {
	// DB holds the profile cache database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite profile cache.
type DB struct {
	// DSN is the SQLite path or connection string
	// (e.g. "zkvault.db" or "file:zkvault.db?cache=shared").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Workers holds configuration for the background worker pool.
type Workers struct {
	// PoolSize is the number of goroutines available for CPU-heavy jobs
	// such as Argon2 derivation and post-quantum key generation.
	// Env: WORKERS_POOL_SIZE
	PoolSize int `env:"POOL_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
