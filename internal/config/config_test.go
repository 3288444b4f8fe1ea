package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/robalobadob/lettergrid/internal/round"
)

func TestParseEnvDefaults(t *testing.T) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Grid.Count != 9 || cfg.Rules.MinCorrect != 2 || cfg.Rules.MaxCorrect != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Rules.MaxAttempts != 200 || cfg.Rules.ExtraChances != 1 {
		t.Fatalf("unexpected rule defaults: %+v", cfg.Rules)
	}
	if cfg.Debug.Seed != nil {
		t.Fatalf("seed = %v, want nil", *cfg.Debug.Seed)
	}
	if cfg.Server.Production() {
		t.Fatal("default environment must not be production")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("GRID_COUNT", "12")
	t.Setenv("RULES_MAX_CORRECT", "6")
	t.Setenv("DEBUG_RANDOM_SEED", "42")
	t.Setenv("NODE_ENV", "production")

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Grid.Count != 12 || cfg.Rules.MaxCorrect != 6 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Debug.Seed == nil || *cfg.Debug.Seed != 42 {
		t.Fatalf("seed = %v, want 42", cfg.Debug.Seed)
	}
	if !cfg.Server.Production() {
		t.Fatal("expected production")
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("GRID_COUNT", "nine")
	var cfg Config
	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	var base Config
	if err := ParseEnv(&base); err != nil {
		t.Fatal(err)
	}

	bad := base
	bad.Rules.MinCorrect = 6
	if err := bad.Validate(); !errors.Is(err, round.ErrInvalidConstraints) {
		t.Fatalf("min > max: err = %v", err)
	}

	bad = base
	bad.Rules.MaxCorrect = 10
	if err := bad.Validate(); !errors.Is(err, round.ErrInvalidConstraints) {
		t.Fatalf("max > count: err = %v", err)
	}

	bad = base
	bad.Rules.ExtraChances = -1
	if err := bad.Validate(); err == nil {
		t.Fatal("negative extra chances accepted")
	}
}

func TestConstraints(t *testing.T) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		t.Fatal(err)
	}
	if got := cfg.Constraints(); got != round.DefaultConstraints() {
		t.Fatalf("Constraints() = %+v, want %+v", got, round.DefaultConstraints())
	}
}
