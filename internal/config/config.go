// Package config loads runtime configuration from defaults, an optional YAML file and the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
)

// Config is the root configuration of the backend.
type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	Admin     AdminConfig     `koanf:"admin"`
	Storage   StorageConfig   `koanf:"storage"`
	Redis     RedisConfig     `koanf:"redis"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
}

// AppConfig holds metadata about the running service.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

// ServerConfig holds http.Server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds the parameters for connecting to postgres.
type DatabaseConfig struct {
	Host          string `koanf:"host"`
	Port          string `koanf:"port"`
	User          string `koanf:"user"`
	Password      string `koanf:"password"`
	Name          string `koanf:"name"`
	ConnectionStr string `koanf:"connection_str"`
	UseConnStr    bool   `koanf:"use_connection_str"`
}

// AuthConfig holds session token and Google OAuth settings.
type AuthConfig struct {
	SecretKey          string        `koanf:"secret_key"`
	AccessTokenTTL     time.Duration `koanf:"access_token_ttl"`
	GoogleClientID     string        `koanf:"google_client_id"`
	GoogleClientSecret string        `koanf:"google_client_secret"`
	RedirectURL        string        `koanf:"redirect_url"`
	UserInfoEndpoint   string        `koanf:"user_info_endpoint"`
}

// AdminConfig is the bootstrap admin account created on first start.
type AdminConfig struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// StorageConfig selects where uploaded images go.
type StorageConfig struct {
	Bucket          string `koanf:"bucket"`
	PublicBaseURL   string `koanf:"public_base_url"`
	CredentialsFile string `koanf:"credentials_file"`
	LocalDir        string `koanf:"local_dir"`
	LocalBaseURL    string `koanf:"local_base_url"`
}

// RedisConfig is optional; an empty URL keeps every store in memory.
type RedisConfig struct {
	URL string `koanf:"url"`
}

// RateLimitConfig limits requests per second per user or client IP.
type RateLimitConfig struct {
	RequestsPerSecond int `koanf:"requests_per_second"`
}

// CORSConfig lists the front-end origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string `koanf:"allow_origins"`
}

// LogConfig controls the slog handler and the auth audit file.
type LogConfig struct {
	Level    string `koanf:"level"`
	Format   string `koanf:"format"`
	AuthFile bool   `koanf:"auth_file"`
}

// OtelConfig controls request tracing export.
type OtelConfig struct {
	Enabled     bool    `koanf:"enabled"`
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

var defaults = map[string]any{
	"app.name":        "JobPortal",
	"app.version":     "1.0.0",
	"app.environment": "development",

	"server.port":             8080,
	"server.read_timeout":     "10s",
	"server.write_timeout":    "30s",
	"server.idle_timeout":     "1m",
	"server.shutdown_timeout": "15s",

	"database.use_connection_str": false,

	"auth.access_token_ttl":   "1h",
	"auth.user_info_endpoint": "https://www.googleapis.com/oauth2/v2/userinfo",

	"storage.local_dir":      "uploads",
	"storage.local_base_url": "http://localhost:8080/uploads",

	"rate_limit.requests_per_second": 5,

	"cors.allow_origins": []string{"http://localhost:3000"},

	"log.level":     "info",
	"log.format":    "text",
	"log.auth_file": false,

	"otel.enabled":      false,
	"otel.insecure":     true,
	"otel.sample_rate":  0.1,
	"otel.service_name": "jobportal-backend",
}

var envKeyMap = map[string]string{
	"APP_ENV":                        "app.environment",
	"PORT":                           "server.port",
	"DB_HOST":                        "database.host",
	"DB_PORT":                        "database.port",
	"DB_USERNAME":                    "database.user",
	"DB_PASSWORD":                    "database.password",
	"DB_DATABASE":                    "database.name",
	"DB_CONNECTION_STR":              "database.connection_str",
	"USE_CONNECTION_STR":             "database.use_connection_str",
	"SECRET_KEY":                     "auth.secret_key",
	"ACCESS_TOKEN_TTL":               "auth.access_token_ttl",
	"GOOGLE_AUTH_CLIENT":             "auth.google_client_id",
	"GOOGLE_AUTH_SECRET":             "auth.google_client_secret",
	"OAUTH_REDIRECT_URL":             "auth.redirect_url",
	"ADMIN_USERNAME":                 "admin.username",
	"ADMIN_PASSWORD":                 "admin.password",
	"GCS_BUCKET":                     "storage.bucket",
	"GCS_PUBLIC_URL":                 "storage.public_base_url",
	"GCS_CREDENTIALS_FILE":           "storage.credentials_file",
	"LOCAL_UPLOAD_DIR":               "storage.local_dir",
	"LOCAL_UPLOAD_URL":               "storage.local_base_url",
	"REDIS_URL":                      "redis.url",
	"RATE_LIMIT_REQUESTS_PER_SECOND": "rate_limit.requests_per_second",
	"ALLOW_ORIGIN":                   "cors.allow_origins",
	"LOG_LEVEL":                      "log.level",
	"LOG_FORMAT":                     "log.format",
	"LOGGING":                        "log.auth_file",
	"OTEL_ENABLED":                   "otel.enabled",
	"OTEL_EXPORTER_OTLP_ENDPOINT":    "otel.endpoint",
	"OTEL_SERVICE_NAME":              "otel.service_name",
	"OTEL_INSECURE":                  "otel.insecure",
	"OTEL_SAMPLE_RATE":               "otel.sample_rate",
}

// Load builds a Config from defaults, then configPath (skipped when empty), then environment variables.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// envValue maps a known environment variable to its koanf key. Unknown variables are dropped.
func envValue(key string, value string) (string, interface{}) {
	mapped, ok := envKeyMap[key]
	if !ok {
		return "", nil
	}
	if mapped == "cors.allow_origins" {
		origins := []string{}
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return mapped, origins
	}
	return mapped, value
}

func validate(c *Config) error {
	if c.Database.UseConnStr && c.Database.ConnectionStr == "" {
		return fmt.Errorf("DB_CONNECTION_STR is empty")
	}

	if c.IsProduction() && c.Auth.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required in production")
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}

	for _, origin := range c.CORS.AllowOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS wildcard '*' cannot be used with credentials")
		}
	}

	return nil
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Address returns the listen address of the http server.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}
