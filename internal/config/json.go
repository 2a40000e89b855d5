package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/lesvieux/portal/internal/flagx"
	"github.com/lesvieux/portal/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can give the timeout either as a string like
// "10s" or as integer nanoseconds.
type jsonConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	TokenPath      string         `json:"token_path"`
}

// parseJSON overlays Config with values from the JSON file named by the
// -c/-config flag. No flag, no file, nothing happens. A file that exists but
// cannot be read or parsed is a startup error and panics.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.TokenPath != "" {
		cfg.TokenPath = jc.TokenPath
	}
}
