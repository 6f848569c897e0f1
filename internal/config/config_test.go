package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("PORTAL_API_BASE_URL", "https://api.procurement.test")
	t.Setenv("CACHE_BACKEND", "redis")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "https://api.procurement.test", cfg.PortalAPI.BaseURL)
	assert.Equal(t, "redis", cfg.Cache.Backend)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("PORTAL_API_TIMEOUT_SEC", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	assert.Equal(t, int64(DefaultUploadMaxBytes), cfg.Upload.MaxBytes)
	assert.Equal(t, 30, cfg.PortalAPI.TimeoutSec)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_UploadLimitNormalized(t *testing.T) {
	for _, v := range []string{"0", "-1"} {
		t.Setenv("UPLOAD_MAX_BYTES", v)

		cfg := Load()

		assert.Equal(t, int64(DefaultUploadMaxBytes), cfg.Upload.MaxBytes, v)
		assert.Equal(t, DefaultUploadMaxBytes+1024*1024, cfg.Upload.BodyLimit(), v)
	}
}

func TestLoad_PublicBaseURL(t *testing.T) {
	t.Setenv("APP_HOST", "bff.internal:9000")
	t.Setenv("PUBLIC_BASE_URL", "")
	assert.Equal(t, "http://bff.internal:9000", Load().PublicBaseURL)

	t.Setenv("PUBLIC_BASE_URL", "https://portal.lpse.go.id/api")
	assert.Equal(t, "https://portal.lpse.go.id/api", Load().PublicBaseURL)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
