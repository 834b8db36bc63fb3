package auth

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"JobPortal-backend/internal/telemetry"
)

var (
	authLogMu   sync.Mutex
	authLogFile = "log/auth.log"
	authLogOn   bool
)

// EnableAuthLog turns the append-only auth audit file on or off.
func EnableAuthLog(enabled bool) {
	authLogMu.Lock()
	defer authLogMu.Unlock()
	authLogOn = enabled
}

// LogAuthAttempt records an authentication attempt.
// authType: Local|Google, status: Success|Fail, identifier and message may be empty.
// The record always goes to the default logger and, when enabled, to log/auth.log.
// It carries the trace id of the request when ctx holds a span.
func LogAuthAttempt(ctx context.Context, level slog.Level, authType string, status string, identifier string, message string) {
	attrs := []any{"auth_type", authType, "status", status}
	if identifier != "" {
		attrs = append(attrs, "identifier", identifier)
	}
	if message != "" {
		attrs = append(attrs, "detail", message)
	}
	if traceID := telemetry.TraceIDFromContext(ctx); traceID != "" {
		attrs = append(attrs, "trace_id", traceID)
	}
	slog.Log(ctx, level, "auth attempt", attrs...)

	authLogMu.Lock()
	defer authLogMu.Unlock()
	if !authLogOn {
		return
	}

	// best effort: a broken audit file never fails a login
	if err := os.MkdirAll("log", 0o750); err != nil {
		return
	}
	f, err := os.OpenFile(authLogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})).
		Log(ctx, level, "auth attempt", attrs...)
}
