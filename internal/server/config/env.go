package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// envFile is read from the working directory when present. The backend has
// no env-file flag because -e names the S3 endpoint.
var envFile = ".env"

const (
	envHTTPAddr       = "SIKACARE_HTTP_ADDR"
	envHealthAddr     = "SIKACARE_HEALTH_ADDR"
	envDatabaseDSN    = "SIKACARE_DATABASE_DSN"
	envSecretKey      = "SIKACARE_JWT_SECRET"
	envAnonKey        = "SIKACARE_ANON_KEY"
	envS3RootUser     = "SIKACARE_S3_USER"
	envS3RootPassword = "SIKACARE_S3_PASSWORD"
	envS3Bucket       = "SIKACARE_S3_BUCKET"
	envS3Region       = "SIKACARE_S3_REGION"
	envS3BaseEndpoint = "SIKACARE_S3_ENDPOINT"
	envGoogleClientID = "SIKACARE_GOOGLE_CLIENT_ID"
	envAuthRateLimit  = "SIKACARE_AUTH_RATE_LIMIT"
	envLogLevel       = "SIKACARE_LOG_LEVEL"
)

// parseEnv overlays Config with SIKACARE_* values from the env file and the
// process environment, the latter winning. A malformed file or number panics.
func parseEnv(cfg *Config) {
	values, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		values = map[string]string{}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return values[key]
	}

	for key, dst := range map[string]*string{
		envHTTPAddr:       &cfg.HTTPAddr,
		envHealthAddr:     &cfg.HealthAddr,
		envDatabaseDSN:    &cfg.DatabaseDSN,
		envSecretKey:      &cfg.SecretKey,
		envAnonKey:        &cfg.AnonKey,
		envS3RootUser:     &cfg.S3RootUser,
		envS3RootPassword: &cfg.S3RootPassword,
		envS3Bucket:       &cfg.S3Bucket,
		envS3Region:       &cfg.S3Region,
		envS3BaseEndpoint: &cfg.S3BaseEndpoint,
		envGoogleClientID: &cfg.GoogleClientID,
		envLogLevel:       &cfg.LogLevel,
	} {
		if v := lookup(key); v != "" {
			*dst = v
		}
	}

	if v := lookup(envAuthRateLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.AuthRateLimit = n
	}
}
