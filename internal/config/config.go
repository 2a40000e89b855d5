// Package config assembles the portal's runtime settings from, in order of
// increasing precedence: built-in defaults, a .env file / environment
// variables, a JSON config file (-c/-config), and command-line flags.
package config

import "time"

// Config holds runtime settings for the portal.
//
// Fields:
//   - ServerURL: base URL of the LesVieux API (scheme + host + port).
//   - RequestTimeout: per-request HTTP client timeout.
//   - TokenPath: where the session token (cookie analog) is persisted.
//   - Verbose: enable debug logging.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	TokenPath      string
	Verbose        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.TokenPath = "user_token"
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
