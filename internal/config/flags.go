package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a identity service address in format [host]:[port] or a full URL
//	-d local profile cache DSN
//	-c/-config json file path with configs
//	-server-identity OPAQUE server identity string
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-pool-size background worker pool size
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var jsonConfigPath string
	var serverIdentity string
	var requestTimeout time.Duration
	var poolSize int

	flag.StringVar(&serverAddress, "a", "", "Identity service address host:port or URL")
	flag.StringVar(&databaseDSN, "d", "", "Local profile cache DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&serverIdentity, "server-identity", "", "OPAQUE server identity")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.IntVar(&poolSize, "pool-size", 0, "Background worker pool size")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			ServerIdentity: serverIdentity,
		},
		Adapter: Adapter{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Workers: Workers{
			PoolSize: poolSize,
		},
		JSONFilePath: jsonConfigPath,
	}
}
