// Package config loads CLI-level configuration for the wavepick binary:
// solver tuning knobs (mirrored from waveopt.Config) and logging settings.
package config

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the wavepick CLI's configuration.
type Config struct {
	Solver  SolverConfig  `mapstructure:"solver"`
	Logging LoggingConfig `mapstructure:"logging"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// SolverConfig mirrors waveopt.Config's fields so they can be set from a
// config file or environment variables before being translated into one.
type SolverConfig struct {
	Epsilon                float64 `mapstructure:"epsilon"`
	MaxIterations          int     `mapstructure:"max_iterations"`
	MaxNeighborhoods       int     `mapstructure:"max_neighborhoods"`
	MaxNoImprove           int     `mapstructure:"max_no_improve"`
	WorkerCount            int     `mapstructure:"worker_count"`
	Seed                   uint64  `mapstructure:"seed"`
	ValidateStock          bool    `mapstructure:"validate_stock"`
	TimeBudgetSoftFraction float64 `mapstructure:"time_budget_soft_fraction"`
	TimeBudgetHardFraction float64 `mapstructure:"time_budget_hard_fraction"`
	DeadlineMs             int     `mapstructure:"deadline_ms"`
}

// LoggingConfig controls the zerolog setup.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// TracingConfig controls whether internal/telemetry wires a real
// OpenTelemetry TracerProvider. Off by default: a solve/bench run with
// tracing enabled writes one JSON span per Dinkelbach phase to stderr.
type TracingConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
}

// Load reads configuration from an optional file, then environment
// variables prefixed WAVEPICK_, applying defaults for anything unset.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("WAVEPICK")
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("no config file found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("solver.epsilon", 1e-6)
	v.SetDefault("solver.max_iterations", 100)
	v.SetDefault("solver.max_neighborhoods", 3)
	v.SetDefault("solver.max_no_improve", 5)
	v.SetDefault("solver.worker_count", 0)
	v.SetDefault("solver.seed", 0)
	v.SetDefault("solver.validate_stock", true)
	v.SetDefault("solver.time_budget_soft_fraction", 0.8)
	v.SetDefault("solver.time_budget_hard_fraction", 0.95)
	v.SetDefault("solver.deadline_ms", 5000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.no_color", false)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "")
	v.SetDefault("tracing.service_version", "")
}

func bindEnvVars(v *viper.Viper) {
	keys := []string{
		"solver.epsilon", "solver.max_iterations", "solver.max_neighborhoods",
		"solver.max_no_improve", "solver.worker_count", "solver.seed",
		"solver.validate_stock", "solver.time_budget_soft_fraction",
		"solver.time_budget_hard_fraction", "solver.deadline_ms",
		"logging.level", "logging.format", "logging.no_color",
		"tracing.enabled", "tracing.service_name", "tracing.service_version",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}
