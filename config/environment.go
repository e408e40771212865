// Package config loads process configuration and opens the store.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// Port is the HTTP listen port.
	Port string `mapstructure:"PORT"`
	// Environment is the deployment name; empty means local development.
	Environment string `mapstructure:"APP_ENV"`

	// DBDriver selects the store dialect: "postgres" or "sqlite".
	DBDriver string `mapstructure:"DB_DRIVER"`
	// DBURL is the Postgres URL, or the SQLite file path.
	DBURL string `mapstructure:"DB_URL"`
	// MigrateOnStart applies the embedded Postgres migrations before serving.
	MigrateOnStart bool `mapstructure:"MIGRATE_ON_START"`

	JWTSecretKey string `mapstructure:"JWT_SECRET_KEY"`
	JWTIssuer    string `mapstructure:"JWT_ISSUER"`
	JWTAudience  string `mapstructure:"JWT_AUDIENCE"`

	// SessionMaxAge is the absolute session lifetime counted from login.
	SessionMaxAge time.Duration `mapstructure:"SESSION_MAX_AGE"`
	// SessionSweepInterval is how often expired sessions are removed.
	SessionSweepInterval time.Duration `mapstructure:"SESSION_SWEEP_INTERVAL"`
	// AuthRequired guards mutating set and question routes with a session token.
	AuthRequired bool `mapstructure:"AUTH_REQUIRED"`

	// RedisAddr enables the Redis session store when set.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// CORSAllowedOrigins is a comma separated origin list; "*" allows any.
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	// StaticDir is served at / when set.
	StaticDir string `mapstructure:"STATIC_DIR"`
}

// Load reads .env (if present), then the environment, applies defaults and
// validates the result. Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // a missing .env is fine

	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("APP_ENV", "")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_URL", "")
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("JWT_ISSUER", "quiz-api")
	v.SetDefault("JWT_AUDIENCE", "quiz-client")
	v.SetDefault("SESSION_MAX_AGE", "24h")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "5m")
	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("STATIC_DIR", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Port == "" {
		return nil, errors.New("config: PORT must be set")
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		return nil, fmt.Errorf("config: DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.DBDriver)
	}
	if cfg.DBURL == "" {
		return nil, errors.New("config: DB_URL must be set")
	}
	if cfg.SessionMaxAge <= 0 {
		return nil, errors.New("config: SESSION_MAX_AGE must be positive")
	}
	if cfg.SessionSweepInterval <= 0 {
		return nil, errors.New("config: SESSION_SWEEP_INTERVAL must be positive")
	}
	if cfg.AuthRequired && cfg.JWTSecretKey == "" {
		return nil, errors.New("config: JWT_SECRET_KEY must be set when AUTH_REQUIRED=true")
	}

	return &cfg, nil
}

// IsDevelopment reports whether the process runs outside a named environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development"
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// AllowedOrigins returns the CORS origins from the comma separated config.
func (c *Config) AllowedOrigins() []string {
	if c == nil || c.CORSAllowedOrigins == "" {
		return nil
	}
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
