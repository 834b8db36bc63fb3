package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "JobPortal", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.Address())
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("ALLOW_ORIGIN", "https://a.example, https://b.example")
	t.Setenv("USE_CONNECTION_STR", "true")
	t.Setenv("DB_CONNECTION_STR", "postgres://u:p@localhost:5432/db")
	t.Setenv("LOGGING", "true")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Auth.SecretKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	assert.True(t, cfg.Database.UseConnStr)
	assert.True(t, cfg.Log.AuthFile)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "app:\n  environment: staging\nstorage:\n  bucket: job-images\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, "job-images", cfg.Storage.Bucket)
}

func TestLoad_MissingConnectionString(t *testing.T) {
	t.Setenv("USE_CONNECTION_STR", "true")
	t.Setenv("DB_CONNECTION_STR", "")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load("")
	assert.ErrorContains(t, err, "SECRET_KEY")
}
