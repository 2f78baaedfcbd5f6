// Package config loads runtime configuration for the talentauth CLI client.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment: TALENTAUTH_SERVER_URL, TALENTAUTH_SESSION_DB.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string    base URL of the auth server
//	-f string    SQLite file holding the persisted session token
//	-w duration  per-request timeout
//	-v           log diagnostics to stderr
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:4000",
//	  "session_db": "session.db",
//	  "request_timeout": "10s"
//	}
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the CLI client.
type Config struct {
	ServerURL      string
	SessionDBPath  string
	RequestTimeout time.Duration
	Verbose        bool
}

// LoadDefaults populates c with defaults for a local server.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:4000"
	c.SessionDBPath = "session.db"
	c.RequestTimeout = 10 * time.Second
	c.Verbose = false
}

// LoadConfig builds a Config from defaults, JSON, environment and flags.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
