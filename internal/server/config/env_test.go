package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useEnvFile(t *testing.T, content string) {
	t.Helper()
	orig := envFile
	t.Cleanup(func() { envFile = orig })
	envFile = filepath.Join(t.TempDir(), ".env")
	if content != "" {
		require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	}
}

func TestParseEnv_FileAndEnvironment(t *testing.T) {
	useEnvFile(t, "SIKACARE_DATABASE_DSN=postgres://file\nSIKACARE_S3_BUCKET=from-file\nSIKACARE_AUTH_RATE_LIMIT=12\n")
	t.Setenv("SIKACARE_S3_BUCKET", "from-env")
	t.Setenv("SIKACARE_GOOGLE_CLIENT_ID", "gid")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "postgres://file", cfg.DatabaseDSN)
	assert.Equal(t, "from-env", cfg.S3Bucket)
	assert.Equal(t, "gid", cfg.GoogleClientID)
	assert.Equal(t, 12, cfg.AuthRateLimit)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestParseEnv_MissingFileIsIgnored(t *testing.T) {
	useEnvFile(t, "")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseEnv(cfg) })
	assert.Equal(t, "secretKey", cfg.SecretKey)
}

func TestParseEnv_BadRateLimitPanics(t *testing.T) {
	useEnvFile(t, "")
	t.Setenv("SIKACARE_AUTH_RATE_LIMIT", "many")

	require.Panics(t, func() { parseEnv(&Config{}) })
}
