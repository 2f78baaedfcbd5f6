package config

import "github.com/caarlos0/env/v11"

type EnvConfig struct {
	ServerURL     string `env:"TALENTAUTH_SERVER_URL"`
	SessionDBPath string `env:"TALENTAUTH_SESSION_DB"`
}

func parseEnv(cfg *Config) {
	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		panic(err)
	}

	if e.ServerURL != "" {
		cfg.ServerURL = e.ServerURL
	}
	if e.SessionDBPath != "" {
		cfg.SessionDBPath = e.SessionDBPath
	}
}
