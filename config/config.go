package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds application configuration loaded from the environment.
// Defaults suit local development.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"geo-region-service"`
	Env     string `env:"APP_ENV" envDefault:"development"` // development, test, staging, production
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	// Storage
	StorageDriver string        `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	DBHost        string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string        `env:"DB_PORT" envDefault:"5432"`
	DBUser        string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword    string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName        string        `env:"DB_NAME" envDefault:"georegions"`
	DBSSLMode     string        `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxConns    int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns    int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLife time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	MigrationsDir string        `env:"MIGRATIONS_DIR" envDefault:"db/migrations"`

	// Redis backs the response cache and the login rate limit. Leave
	// REDIS_ADDR empty to run without it.
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheEnabled  bool          `env:"CACHE_ENABLED" envDefault:"true"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	// JWT
	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// Geocoder (Nominatim-compatible)
	GeocoderBaseURL    string        `env:"GEOCODER_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocoderUserAgent  string        `env:"GEOCODER_USER_AGENT" envDefault:"geo-region-service/1.0"`
	GeocoderRatePerSec float64       `env:"GEOCODER_RATE_PER_SEC" envDefault:"1"`
	GeocoderTimeout    time.Duration `env:"GEOCODER_TIMEOUT" envDefault:"5s"`

	// RabbitMQ lifecycle events. Empty URL disables publishing.
	RabbitMQURL         string `env:"RABBITMQ_URL"`
	RabbitMQEventsQueue string `env:"RABBITMQ_EVENTS_QUEUE" envDefault:"geo.events"`

	// HTTP
	CORSAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS"` // comma-separated
	HTTPLogEnabled     bool          `env:"HTTP_LOG_ENABLED" envDefault:"true"`
	TrustProxyHeaders  bool          `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
	LoginRateLimit     int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"` // per IP per route per minute
	WriteRateLimit     int           `env:"WRITE_RATE_LIMIT" envDefault:"60"` // per user per minute
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads .env when present and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("config: STORAGE_DRIVER must be %q or %q, got %q", StorageMemory, StoragePostgres, c.StorageDriver)
	}
	if c.Env == "production" && c.JWTSecret == "dev-secret-change-me" {
		return errors.New("config: JWT_SECRET must be set in production")
	}
	return nil
}

// PostgresDSN prefers DATABASE_URL and otherwise builds a URL from the DB_*
// parts.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// CORSOrigins splits CORS_ALLOWED_ORIGINS. An empty value allows any origin.
func (c *Config) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }
