package config

import "time"

const (
	GoogleProviderBrowser     = "browser"
	GoogleProviderUnsupported = "unsupported"
)

// Config holds runtime settings for the SikaCare client.
//
// OnlineCheckInterval and RequestTimeout are time.Duration values
// (e.g., 3*time.Second).
type Config struct {
	BackendURL          string
	APIKey              string
	HealthAddr          string
	SessionDB           string
	// SessionKeyFile holds the device key that seals the stored session.
	// Empty stores the session unsealed.
	SessionKeyFile      string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	LogLevel            string

	GoogleProvider     string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectAddr string

	// RealReset forwards password reset requests to the backend instead of
	// only logging them.
	RealReset bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:8080"
	c.HealthAddr = "127.0.0.1:50051"
	c.SessionDB = "session.db"
	c.SessionKeyFile = "session.key"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
	c.GoogleProvider = GoogleProviderBrowser
	c.GoogleRedirectAddr = "127.0.0.1:8787"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the env file, JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
