package config

import (
	"flag"
	"os"
	"time"

	"github.com/lesvieux/portal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the LesVieux API (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-f string   session token file location (default from Config)
//	-v          verbose (debug) logging
//
// Only these flags are consumed here; the args are filtered first so the
// JSON-config flags handled elsewhere do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-f", "-v"})

	fs := flag.NewFlagSet("portal", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the LesVieux API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.TokenPath, "f", cfg.TokenPath, "session token file")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
