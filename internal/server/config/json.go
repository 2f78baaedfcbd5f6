package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/talentauth/internal/flagx"
	"github.com/dmitrijs2005/talentauth/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations accept
// both "168h" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	PasswordHashCost      int            `json:"password_hash_cost"`
	LogBackend            string         `json:"log_backend"`
}

// parseJson overlays values from the file named by -c/-config. Fields absent
// from the file keep their current value. An unreadable or invalid file
// panics: a server must not start on a half-read config.
func parseJson(config *Config, args []string) {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.PasswordHashCost != 0 {
		config.PasswordHashCost = c.PasswordHashCost
	}
	if c.LogBackend != "" {
		config.LogBackend = c.LogBackend
	}
}
