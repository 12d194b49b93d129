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

// Environment conventions.
const (
	EnvPrefix     = "SKILLRADAR_"
	EnvConfigFile = "SKILLRADAR_CONFIG"
)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Load builds a Config from the file named by SKILLRADAR_CONFIG, if any.
// See LoadFrom for the layering order.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, os.Getenv(EnvConfigFile))
}

// LoadFrom builds a Config by layering, low to high precedence:
//  1. defaults (New(ctx))
//  2. the YAML file at path, when path is not empty
//  3. env (prefix SKILLRADAR_)
func LoadFrom(ctx context.Context, path string) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrLoadConfig, path, err)
		}
	}

	// SKILLRADAR_WORKER_COUNT -> worker_count. Underscores are kept to match
	// the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot drive the engine.
func (c *Config) Validate() error {
	switch {
	case !validLevels[strings.ToLower(c.LogLevel)]:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format %q must be text or json", ErrInvalidConfig, c.LogFormat)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.TopSubjects < 0 || c.TopSkills < 0:
		return fmt.Errorf("%w: top_subjects and top_skills must not be negative", ErrInvalidConfig)
	case c.SuggestionThreshold < 1 || c.SuggestionThreshold > 100:
		return fmt.Errorf("%w: suggestion_threshold must be in [1,100]", ErrInvalidConfig)
	case c.SubjectWeight < 0 || c.SkillWeight < 0 || c.CertificateWeight < 0:
		return fmt.Errorf("%w: career weights must not be negative", ErrInvalidConfig)
	case c.SubjectWeight+c.SkillWeight+c.CertificateWeight == 0:
		return fmt.Errorf("%w: career weights must not all be zero", ErrInvalidConfig)
	case c.EffortLoginCap <= 0 || c.EffortDashboardCap <= 0 || c.EffortUpdatesCap <= 0 || c.EffortStreakCap <= 0:
		return fmt.Errorf("%w: effort caps must be positive", ErrInvalidConfig)
	}
	return nil
}
