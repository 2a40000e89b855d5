package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment, loading
// a .env file first when one is present in the working directory. Unset or
// malformed variables leave the current value untouched.
//
// Recognized variables:
//
//	LESVIEUX_SERVER_URL       base URL of the API
//	LESVIEUX_TOKEN_PATH       session token file location
//	LESVIEUX_REQUEST_TIMEOUT  per-request timeout, e.g. "15s"
func parseEnv(cfg *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv("LESVIEUX_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("LESVIEUX_TOKEN_PATH"); v != "" {
		cfg.TokenPath = v
	}
	if v := os.Getenv("LESVIEUX_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
