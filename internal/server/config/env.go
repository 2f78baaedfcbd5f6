package config

import (
	"github.com/caarlos0/env/v11"
)

// EnvConfig lists the environment variables the server honours.
type EnvConfig struct {
	EndpointAddrHTTP string `env:"HTTP_ADDR"`
	DatabaseDSN      string `env:"DATABASE_DSN"`
	SecretKey        string `env:"JWT_SECRET"`
}

// parseEnv overlays non-empty environment variables.
func parseEnv(config *Config) {
	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		panic(err)
	}

	if e.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = e.EndpointAddrHTTP
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
}
