package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration
type Config struct {
	Simulation SimulationConfig `envconfig:"SIMULATION"`
	Playback   PlaybackConfig   `envconfig:"PLAYBACK"`
	Metrics    MetricsConfig    `envconfig:"METRICS"`
	Logging    LoggingConfig    `envconfig:"LOGGING"`
}

// SimulationConfig represents price generation parameters
type SimulationConfig struct {
	MaxVolatility         float64 `envconfig:"SIM_MAX_VOLATILITY" default:"15.0"`
	MeanReversionStrength float64 `envconfig:"SIM_MEAN_REVERSION_STRENGTH" default:"0.05"`
	JumpFrequency         float64 `envconfig:"SIM_JUMP_FREQUENCY" default:"2.0"`
	Seed                  int64   `envconfig:"SIM_SEED" default:"0"` // 0 = random seed per run
}

// PlaybackConfig represents playback pacing configuration
type PlaybackConfig struct {
	OverrunThreshold time.Duration `envconfig:"PLAYBACK_OVERRUN_THRESHOLD" default:"2s"`
	ProgressInterval time.Duration `envconfig:"PLAYBACK_PROGRESS_INTERVAL" default:"10s"`
}

// MetricsConfig represents Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"false"`
	Addr    string `envconfig:"METRICS_ADDR" default:":9090"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" default:""`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	// Process environment variables
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid.
// Simulation parameter ranges themselves are the parameter validator's job;
// this only rejects values no run could start with.
func (c *Config) Validate() error {
	if c.Playback.OverrunThreshold <= 0 {
		return fmt.Errorf("playback_overrun_threshold must be positive")
	}
	if c.Playback.ProgressInterval <= 0 {
		return fmt.Errorf("playback_progress_interval must be positive")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics_addr is required when metrics are enabled")
	}
	return nil
}
