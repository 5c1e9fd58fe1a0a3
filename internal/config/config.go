package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/wishlist/pkg/config"
	"github.com/utafrali/wishlist/pkg/database"
	"github.com/utafrali/wishlist/pkg/tracing"
)

const (
	// ServiceName identifies this service in logs, traces and metrics.
	ServiceName = "wishlist-service"

	defaultJWTSecret = "change-this-to-a-secure-secret"
	minJWTSecretLen  = 32
)

// Config holds all configuration for the wishlist service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"WISHLIST_HTTP_PORT" envDefault:"8010"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"wishlist"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"wishlist_secret"`
	PostgresDB   string `env:"WISHLIST_DB_NAME" envDefault:"wishlist"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Connection pool
	DBMaxConns               int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns               int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMinutes int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMinutes int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`

	// JWT
	JWTSecret       string `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	JWTAccessExpiry string `env:"JWT_ACCESS_TOKEN_EXPIRY" envDefault:"15m"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// pprof
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"10.0.0.0/8,172.16.0.0/12,192.168.0.0/16,127.0.0.0/8,::1/128" envSeparator:","`

	// Slow query logging; 0 disables it.
	SlowQueryThresholdMs int `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`

	accessExpiry time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load wishlist config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	if c.DBMaxConns < 1 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("invalid pool size: min %d, max %d", c.DBMinConns, c.DBMaxConns)
	}

	expiry, err := time.ParseDuration(c.JWTAccessExpiry)
	if err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY %q: %w", c.JWTAccessExpiry, err)
	}
	if expiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_TOKEN_EXPIRY must be positive, got %s", expiry)
	}
	c.accessExpiry = expiry

	// In non-development environments, require an explicitly set, strong JWT secret.
	if c.Environment != "development" {
		if c.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", c.Environment)
		}
		if len(c.JWTSecret) < minJWTSecretLen {
			return fmt.Errorf("JWT_SECRET must be at least %d characters long, got %d", minJWTSecretLen, len(c.JWTSecret))
		}
	}

	return nil
}

// AccessTokenExpiry returns the parsed JWT_ACCESS_TOKEN_EXPIRY.
func (c *Config) AccessTokenExpiry() time.Duration {
	return c.accessExpiry
}

// SlowQueryThreshold returns LOG_SLOW_QUERY_MS as a duration.
func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryThresholdMs) * time.Millisecond
}

// Postgres returns the connection pool configuration. A zero lifetime or idle
// time keeps the database package default.
func (c *Config) Postgres() *database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSL
	pg.MaxConns = c.DBMaxConns
	pg.MinConns = c.DBMinConns
	if c.DBMaxConnLifetimeMinutes > 0 {
		pg.MaxConnLifetime = time.Duration(c.DBMaxConnLifetimeMinutes) * time.Minute
	}
	if c.DBMaxConnIdleTimeMinutes > 0 {
		pg.MaxConnIdleTime = time.Duration(c.DBMaxConnIdleTimeMinutes) * time.Minute
	}
	return &pg
}

// Tracing returns the OpenTelemetry configuration for the given build version.
func (c *Config) Tracing(version string) tracing.Config {
	tc := tracing.DefaultConfig(ServiceName)
	if version != "" {
		tc.ServiceVersion = version
	}
	tc.Environment = c.Environment
	tc.OTLPEndpoint = c.OTELEndpoint
	tc.SampleRate = c.OTELSampleRate
	tc.Enabled = c.OTELEnabled
	return tc
}
