package config

import (
	"flag"

	"github.com/dmitrijs2005/talentauth/internal/flagx"
)

// parseFlags populates Config from the flags it knows about; other
// arguments are filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-f", "-w", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "auth server base URL")
	fs.StringVar(&cfg.SessionDBPath, "f", cfg.SessionDBPath, "session database file")
	fs.DurationVar(&cfg.RequestTimeout, "w", cfg.RequestTimeout, "request timeout")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log diagnostics to stderr")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
