// Package config loads the server configuration.
//
// SOURCES, LOWEST PRIORITY FIRST:
//  1. built-in defaults (confmap)
//  2. a .env file in the working directory, if present (godotenv/autoload
//     copies it into the process environment before main runs)
//  3. BLOG_* environment variables
//
// Environment names map to keys by dropping the prefix, lower-casing, and
// turning the FIRST underscore into a dot:
//
//	BLOG_SERVER_PORT              → server.port
//	BLOG_SERVER_SHUTDOWN_TIMEOUT  → server.shutdown_timeout
//	BLOG_DATABASE_DSN             → database.dsn
//
// Durations take Go syntax ("15s", "2m"); lists are comma-separated.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "BLOG_"

type Config struct {
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Log      LogConfig      `koanf:"log" validate:"required"`
}

type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
	CORSOrigins     []string      `koanf:"cors_origins" validate:"required,min=1"`
}

// Addr is the listen address, e.g. ":8080".
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type DatabaseConfig struct {
	// Driver is "sqlite" (modernc) or "pgx" (PostgreSQL).
	Driver       string `koanf:"driver" validate:"oneof=sqlite pgx"`
	DSN          string `koanf:"dsn" validate:"required"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"min=1"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// SlogLevel converts Level to a slog.Level. Load has already rejected
// unknown names, so the fallback is never reached for a loaded Config.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaults() map[string]any {
	return map[string]any{
		"server.port":             8080,
		"server.read_timeout":     15 * time.Second,
		"server.write_timeout":    15 * time.Second,
		"server.idle_timeout":     60 * time.Second,
		"server.shutdown_timeout": 30 * time.Second,
		"server.cors_origins":     []string{"*"},
		"database.driver":         "sqlite",
		"database.dsn":            "data/blog.db",
		"database.max_open_conns": 10,
		"log.level":               "info",
		"log.format":              "text",
	}
}

// listKeys are the keys whose environment value is a comma-separated list.
var listKeys = map[string]bool{
	"server.cors_origins": true,
}

// envValue maps BLOG_SERVER_CORS_ORIGINS=a,b to server.cors_origins=[a b].
func envValue(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	key = strings.Replace(key, "_", ".", 1)

	if listKeys[key] {
		items := strings.Split(value, ",")
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		return key, items
	}
	return key, value
}

// Load reads defaults and the environment into a validated Config.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil)
	if err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}

	return cfg, nil
}
