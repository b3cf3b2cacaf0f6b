package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/hifi-israel/sikacare/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

const (
	envBackendURL         = "SIKACARE_URL"
	envAPIKey             = "SIKACARE_ANON_KEY"
	envHealthAddr         = "SIKACARE_HEALTH_ADDR"
	envSessionDB          = "SIKACARE_SESSION_DB"
	envSessionKeyFile     = "SIKACARE_SESSION_KEY_FILE"
	envGoogleProvider     = "SIKACARE_GOOGLE_PROVIDER"
	envGoogleClientID     = "SIKACARE_GOOGLE_CLIENT_ID"
	envGoogleClientSecret = "SIKACARE_GOOGLE_CLIENT_SECRET"
	envGoogleRedirectAddr = "SIKACARE_GOOGLE_REDIRECT_ADDR"
	envLogLevel           = "SIKACARE_LOG_LEVEL"
	envRealReset          = "SIKACARE_REAL_RESET"
)

// parseEnv overlays Config with SIKACARE_* values. The properties file named
// by -e/-env (or ./.env when present) is read first; variables set in the
// process environment win over the file.
//
// A missing default file is ignored; a missing explicit file, a malformed
// file or a malformed boolean panics, like the other loaders.
func parseEnv(cfg *Config) {
	values := map[string]string{}

	path := flagx.EnvFileFlags()
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	fileValues, err := godotenv.Read(path)
	switch {
	case err == nil:
		values = fileValues
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		panic(err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}

	setString := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	setString(&cfg.BackendURL, envBackendURL)
	setString(&cfg.APIKey, envAPIKey)
	setString(&cfg.HealthAddr, envHealthAddr)
	setString(&cfg.SessionDB, envSessionDB)
	setString(&cfg.SessionKeyFile, envSessionKeyFile)
	setString(&cfg.GoogleProvider, envGoogleProvider)
	setString(&cfg.GoogleClientID, envGoogleClientID)
	setString(&cfg.GoogleClientSecret, envGoogleClientSecret)
	setString(&cfg.GoogleRedirectAddr, envGoogleRedirectAddr)
	setString(&cfg.LogLevel, envLogLevel)

	if v, ok := lookup(envRealReset); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.RealReset = b
	}
}
