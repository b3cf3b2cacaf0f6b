package config

import (
	"encoding/json"
	"os"

	"github.com/hifi-israel/sikacare/internal/flagx"
	"github.com/hifi-israel/sikacare/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept strings like "3s" or integer nanoseconds.
type JsonConfig struct {
	BackendURL          string          `json:"backend_url"`
	APIKey              string          `json:"api_key"`
	HealthAddr          string          `json:"health_addr"`
	SessionDB           string          `json:"session_db"`
	SessionKeyFile      *string         `json:"session_key_file"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	LogLevel            string          `json:"log_level"`
	GoogleProvider      string          `json:"google_provider"`
	GoogleClientID      string          `json:"google_client_id"`
	GoogleClientSecret  string          `json:"google_client_secret"`
	GoogleRedirectAddr  string          `json:"google_redirect_addr"`
	RealReset           *bool           `json:"real_reset"`
}

// parseJson overlays Config with values from the JSON file given with -c or
// -config. Keys absent from the file leave the current values alone.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	overlay(&cfg.BackendURL, jc.BackendURL)
	overlay(&cfg.APIKey, jc.APIKey)
	overlay(&cfg.HealthAddr, jc.HealthAddr)
	overlay(&cfg.SessionDB, jc.SessionDB)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.GoogleProvider, jc.GoogleProvider)
	overlay(&cfg.GoogleClientID, jc.GoogleClientID)
	overlay(&cfg.GoogleClientSecret, jc.GoogleClientSecret)
	overlay(&cfg.GoogleRedirectAddr, jc.GoogleRedirectAddr)

	if jc.SessionKeyFile != nil {
		cfg.SessionKeyFile = *jc.SessionKeyFile
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RealReset != nil {
		cfg.RealReset = *jc.RealReset
	}
}
