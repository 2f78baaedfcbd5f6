package config

import (
	"flag"

	"github.com/dmitrijs2005/talentauth/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string    HTTP bind address (e.g. ":4000")
//	-d string    PostgreSQL DSN, or "memory://"
//	-s string    token signing secret
//	-t duration  token validity (e.g. "168h")
//	-k int       bcrypt cost
//	-l string    log backend: slog | zap
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-k", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.DurationVar(&config.TokenValidityDuration, "t", config.TokenValidityDuration, "token validity duration")
	fs.IntVar(&config.PasswordHashCost, "k", config.PasswordHashCost, "bcrypt cost")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog|zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
