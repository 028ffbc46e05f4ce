// Package config defines service configuration structures and loading.
//
// Precedence (low -> high): defaults, YAML file named by MATCHDAY_CONFIG,
// environment variables prefixed MATCHDAY_.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures the /metrics listen address, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// QueueSize bounds the in-memory fixture queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of simulation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the fixture dedupe cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the rating store.
	ShardCount int `koanf:"shard_count"`

	// FormWindow sets how many recent matches feed the form average.
	FormWindow int `koanf:"form_window"`

	// Fixtures sets how many demo fixtures the matchday driver submits.
	Fixtures int `koanf:"fixtures"`

	// Seed feeds the demo fixture generator. Zero derives a seed from
	// the clock.
	Seed int64 `koanf:"seed"`

	// GoalWeight and NegativeWeight override the aggregation category
	// weights. Zero keeps the engine default.
	GoalWeight     float64 `koanf:"goal_weight"`
	NegativeWeight float64 `koanf:"negative_weight"`

	// BaseEventRate overrides the per-minute event trigger chance.
	// Zero keeps the engine default.
	BaseEventRate float64 `koanf:"base_event_rate"`
}

// New creates a Config with production defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		MetricsAddr: ":9090",
		QueueSize:   10_000,
		WorkerCount: runtime.NumCPU() * 2,
		DedupeSize:  50_000,
		ShardCount:  16,
		FormWindow:  5,
		Fixtures:    22,
	}
}
