package auth

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JobPortal-backend/internal/config"
	"JobPortal-backend/internal/telemetry"
)

func TestLogAuthAttempt_File(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	EnableAuthLog(true)
	defer EnableAuthLog(false)

	LogAuthAttempt(context.Background(), slog.LevelInfo, "Local", "Success", "admin_user", "")

	b, err := os.ReadFile(filepath.Join(dir, "log", "auth.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"auth_type":"Local"`)
	assert.Contains(t, string(b), `"identifier":"admin_user"`)
	assert.NotContains(t, string(b), "trace_id")
}

func TestLogAuthAttempt_TraceID(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	EnableAuthLog(true)
	defer EnableAuthLog(false)

	tel, err := telemetry.New(context.Background(), config.OtelConfig{ServiceName: "auth-test"}, config.AppConfig{Version: "test"})
	require.NoError(t, err)
	defer func() { _ = tel.Shutdown(context.Background()) }()

	ctx, span := tel.Tracer.Start(context.Background(), "login")
	defer span.End()

	LogAuthAttempt(ctx, slog.LevelWarn, "Local", "Fail", "admin_user", "wrong password")

	b, err := os.ReadFile(filepath.Join(dir, "log", "auth.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"trace_id":"`+telemetry.TraceIDFromContext(ctx)+`"`)
}

func TestLogAuthAttempt_Disabled(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	EnableAuthLog(false)
	LogAuthAttempt(context.Background(), slog.LevelWarn, "Google", "Fail", "x@example.com", "email not registered")

	_, err = os.Stat(filepath.Join(dir, "log", "auth.log"))
	assert.True(t, os.IsNotExist(err))
}
