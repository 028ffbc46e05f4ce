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
//  1. defaults (New())
//  2. file (YAML) if MATCHDAY_CONFIG is set
//  3. env (prefix MATCHDAY_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("MATCHDAY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: MATCHDAY_QUEUE_SIZE -> queue_size. Keys
	// stay flat and keep underscores to match the koanf struct tags.
	envProvider := env.Provider("MATCHDAY_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "matchday_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MetricsAddr == "" {
		return fmt.Errorf("%w: metrics_addr must not be empty", ErrInvalidConfig)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue_size %d", ErrInvalidConfig, c.QueueSize)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count %d", ErrInvalidConfig, c.WorkerCount)
	}
	if c.FormWindow < 1 {
		return fmt.Errorf("%w: form_window %d", ErrInvalidConfig, c.FormWindow)
	}
	if c.GoalWeight < 0 || c.NegativeWeight < 0 {
		return fmt.Errorf("%w: category weights must not be negative", ErrInvalidConfig)
	}
	if c.BaseEventRate < 0 || c.BaseEventRate > 1 {
		return fmt.Errorf("%w: base_event_rate %g outside [0,1]", ErrInvalidConfig, c.BaseEventRate)
	}
	return nil
}
