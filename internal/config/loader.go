package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if CAMPUSPULSE_CONFIG is set
//  3. env (prefix CAMPUSPULSE_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("CAMPUSPULSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CAMPUSPULSE_ADDR, CAMPUSPULSE_BUILDINGS_FILE, ...
	// Map env keys like CAMPUSPULSE_BUILDINGS_FILE -> buildings_file (flat
	// keys); underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("CAMPUSPULSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "campuspulse_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.BuildingsFile == "":
		return nil, fmt.Errorf("%w: buildings_file must not be empty", ErrInvalidConfig)
	case cfg.OccupancyFile == "":
		return nil, fmt.Errorf("%w: occupancy_file must not be empty", ErrInvalidConfig)
	}
	return &cfg, nil
}
