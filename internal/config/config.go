package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const insecureJWTSecret = "change-me-in-production"

// Config holds the server configuration parsed from RESPAWN_* environment
// variables.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	// Database. An empty DSN runs the in-memory store.
	DBDSN             string        `env:"DB_DSN"`
	AutoMigrate       bool          `env:"AUTO_MIGRATE" envDefault:"true"`
	MigrationsDir     string        `env:"MIGRATIONS_DIR" envDefault:"./db/migrations"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// Auth
	JWTSecret  string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// Objectives
	CatalogRoot        string `env:"CATALOG_ROOT" envDefault:"./config"`
	CatalogFile        string `env:"CATALOG_FILE"`
	MultiCycleCooldown bool   `env:"MULTI_CYCLE_COOLDOWN" envDefault:"false"`

	LogLevel              string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigins    []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout       time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowInsecureDefaults bool          `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: "RESPAWN_"})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Prefix: "RESPAWN_", Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	for i, origin := range cfg.CORSAllowedOrigins {
		cfg.CORSAllowedOrigins[i] = strings.TrimSpace(origin)
	}
	return cfg, nil
}

// Validate rejects configuration that must not run in production. Set
// RESPAWN_ALLOW_INSECURE_DEFAULTS=true to bypass the secret checks locally.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("RESPAWN_ADDR is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("RESPAWN_JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("RESPAWN_BCRYPT_COST must be within [4,31], got %d", c.BcryptCost)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.JWTSecret == insecureJWTSecret {
		return errors.New("RESPAWN_JWT_SECRET is set to the insecure default; set a strong secret or RESPAWN_ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("RESPAWN_JWT_SECRET is too short (%d chars); minimum 32 characters required", len(c.JWTSecret))
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("RESPAWN_LOG_LEVEL: %w", err)
	}
	return level, nil
}
