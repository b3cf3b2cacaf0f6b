package config

import (
	"encoding/json"
	"os"

	"github.com/hifi-israel/sikacare/internal/flagx"
	"github.com/hifi-israel/sikacare/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Lifetimes
// accept strings such as "15m" as well as integer nanoseconds.
type JsonConfig struct {
	HTTPAddr                     string          `json:"http_addr"`
	HealthAddr                   string          `json:"health_addr"`
	DatabaseDSN                  string          `json:"database_dsn"`
	SecretKey                    string          `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	AnonKey                      string          `json:"anon_key"`
	S3RootUser                   string          `json:"s3_root_user"`
	S3RootPassword               string          `json:"s3_root_password"`
	S3Bucket                     string          `json:"s3_bucket"`
	S3Region                     string          `json:"s3_region"`
	S3BaseEndpoint               string          `json:"s3_base_endpoint"`
	GoogleClientID               string          `json:"google_client_id"`
	AuthRateLimit                *int            `json:"auth_rate_limit"`
	LogLevel                     string          `json:"log_level"`
}

// parseJson loads the file named by -c or -config, if any, and overlays the
// keys it contains onto config. Read and decode errors panic.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	for dst, v := range map[*string]string{
		&config.HTTPAddr:       c.HTTPAddr,
		&config.HealthAddr:     c.HealthAddr,
		&config.DatabaseDSN:    c.DatabaseDSN,
		&config.SecretKey:      c.SecretKey,
		&config.AnonKey:        c.AnonKey,
		&config.S3RootUser:     c.S3RootUser,
		&config.S3RootPassword: c.S3RootPassword,
		&config.S3Bucket:       c.S3Bucket,
		&config.S3Region:       c.S3Region,
		&config.S3BaseEndpoint: c.S3BaseEndpoint,
		&config.GoogleClientID: c.GoogleClientID,
		&config.LogLevel:       c.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.AuthRateLimit != nil {
		config.AuthRateLimit = *c.AuthRateLimit
	}
}
