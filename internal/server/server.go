package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"JobPortal-backend/internal/auth"
	"JobPortal-backend/internal/config"
	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/storage"
	"JobPortal-backend/internal/utilities"
)

// MyServer holds every dependency the route handlers need
type MyServer struct {
	Config    *config.Config
	DB        *database.DBinstanceStruct
	Storage   storage.ImageStore
	Redis     *redis.Client
	Blacklist auth.JwtBlacklistStore
	Tracer    trace.Tracer
}

// NewServer connects the database, object storage and redis described by cfg
func NewServer(ctx context.Context, cfg *config.Config, tracer trace.Tracer) (*MyServer, error) {
	auth.SetSigningKey(cfg.Auth.SecretKey, cfg.Auth.AccessTokenTTL)
	auth.EnableAuthLog(cfg.Log.AuthFile)
	utilities.RegisterValidators()

	db, err := database.NewDBInstance(&cfg.Database, cfg.Admin)
	if err != nil {
		return nil, fmt.Errorf("Database failed to initialized: %w", err)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("Storage failed to initialized: %w", err)
	}

	s := &MyServer{
		Config:    cfg,
		DB:        db,
		Storage:   store,
		Blacklist: auth.NewInMemoryBlacklistStore(),
		Tracer:    tracer,
	}

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("Invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			slog.Warn("Redis unreachable, using in-memory stores", "error", err)
			_ = client.Close()
		} else {
			s.Redis = client
			s.Blacklist = auth.NewRedisBlacklistStore(client)
		}
	}

	return s, nil
}

// HTTPServer returns the http.Server serving RegisterRoutes on the configured port
func (s *MyServer) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.Config.Server.Address(),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  s.Config.Server.IdleTimeout,
		ReadTimeout:  s.Config.Server.ReadTimeout,
		WriteTimeout: s.Config.Server.WriteTimeout,
	}
}

// Close releases redis, object storage and database connections
func (s *MyServer) Close() error {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			slog.Error("Failed to close redis", "error", err)
		}
	}
	if closer, ok := s.Storage.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close storage client", "error", err)
		}
	}
	return s.DB.Close()
}
