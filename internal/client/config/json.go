package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/talentauth/internal/flagx"
	"github.com/dmitrijs2005/talentauth/internal/timex"
)

// JsonConfig is the on-disk shape of the client config file.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	SessionDBPath  string         `json:"session_db"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays values from the file named by -c/-config. Panics on
// read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
