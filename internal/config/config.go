// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full process configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port int `env:"PORT" envDefault:"8080"`

	// DatabaseURL is either a postgres:// connection string or a SQLite
	// file path.
	DatabaseURL string `env:"DATABASE_URL" envDefault:"./data/todos.db"`

	// RedisURL selects the shared cache. When empty an in-process cache
	// with identical expiration semantics is used instead.
	RedisURL string `env:"REDIS_URL"`

	// CacheTTL bounds how stale the cached list snapshot can get.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`

	// StartPolicy is "degraded" (serve even if schema readiness retries
	// are exhausted) or "failfast".
	StartPolicy string `env:"START_POLICY" envDefault:"degraded"`

	// DebugSQL enables per-query logging.
	DebugSQL bool `env:"DEBUG_SQL"`

	// CORSOrigins are the browser origins allowed to call the API.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:4200"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StartPolicy != "degraded" && cfg.StartPolicy != "failfast" {
		return Config{}, fmt.Errorf("invalid START_POLICY %q", cfg.StartPolicy)
	}
	return cfg, nil
}
