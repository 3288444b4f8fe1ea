// internal/config/config.go
//
// Grouped, immutable application settings.
//
// Values come from the process environment, optionally seeded from a .env
// file in development. Each concern is its own struct so callers receive
// only the group they need:
//
//   Grid   – tile count and layout
//   Rules  – correct-count bounds, retry budget, chance policy
//   Paths  – image pool, description file, database
//   Debug  – deterministic seeding
//   Server – port, log level, CORS origin, environment
//   Auth   – JWT and cookie settings
//   Daily  – daily challenge salt

package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/robalobadob/lettergrid/internal/round"
)

type Grid struct {
	Count   int `env:"GRID_COUNT" envDefault:"9"`
	Columns int `env:"GRID_COLUMNS" envDefault:"3"`
}

type Rules struct {
	MinCorrect   int `env:"RULES_MIN_CORRECT" envDefault:"2"`
	MaxCorrect   int `env:"RULES_MAX_CORRECT" envDefault:"5"`
	MaxAttempts  int `env:"RULES_MAX_ATTEMPTS" envDefault:"200"`
	ExtraChances int `env:"RULES_EXTRA_CHANCES" envDefault:"1"`
}

type Paths struct {
	Images       string `env:"PATHS_IMAGES"`
	Descriptions string `env:"PATHS_DESCRIPTIONS"`
	Database     string `env:"DATABASE_PATH" envDefault:"./data/app.db"`
}

type Debug struct {
	// Seed fixes the random source for reproducible rounds; nil means random.
	Seed *int64 `env:"DEBUG_RANDOM_SEED"`
	// SeedPerRound re-seeds every round with Seed+n so each round is reproducible on its own.
	SeedPerRound bool `env:"DEBUG_SEED_PER_ROUND"`
	LogSeed      bool `env:"DEBUG_LOG_SEED"`
}

type Server struct {
	Port         string `env:"PORT" envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	Environment  string `env:"NODE_ENV" envDefault:"development"`
}

// Production reports whether cookies must be Secure/SameSite=None.
func (s Server) Production() bool { return s.Environment == "production" }

type Auth struct {
	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"lettergrid_token"`
}

type Daily struct {
	Salt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
}

// Config aggregates every group.
type Config struct {
	Grid   Grid
	Rules  Rules
	Paths  Paths
	Debug  Debug
	Server Server
	Auth   Auth
	Daily  Daily
}

// Load reads .env (if present) and the environment, then validates.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Constraints converts the grid and rules groups into composer bounds.
func (c Config) Constraints() round.Constraints {
	return round.Constraints{
		Size:        c.Grid.Count,
		MinCorrect:  c.Rules.MinCorrect,
		MaxCorrect:  c.Rules.MaxCorrect,
		MaxAttempts: c.Rules.MaxAttempts,
	}
}

// Validate rejects settings that can never produce a round.
func (c Config) Validate() error {
	if c.Grid.Columns <= 0 {
		return errors.New("config: GRID_COLUMNS must be positive")
	}
	if c.Rules.ExtraChances < 0 {
		return errors.New("config: RULES_EXTRA_CHANCES must not be negative")
	}
	if err := c.Constraints().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
