package waveopt

import "runtime"

// Config holds the solver's tunables. Every field has a default;
// DefaultConfig returns them all set.
type Config struct {
	Epsilon                 float64 `mapstructure:"epsilon" env:"WAVEOPT_EPSILON" default:"1e-6"`
	MaxIterations           int     `mapstructure:"max_iterations" env:"WAVEOPT_MAX_ITERATIONS" default:"100"`
	MaxNeighborhoods        int     `mapstructure:"max_neighborhoods" env:"WAVEOPT_MAX_NEIGHBORHOODS" default:"3"`
	MaxNoImprove            int     `mapstructure:"max_no_improve" env:"WAVEOPT_MAX_NO_IMPROVE" default:"5"`
	WorkerCount             int     `mapstructure:"worker_count" env:"WAVEOPT_WORKER_COUNT" default:"0"`
	Seed                    uint64  `mapstructure:"seed" env:"WAVEOPT_SEED" default:"0"`
	ValidateStock           bool    `mapstructure:"validate_stock" env:"WAVEOPT_VALIDATE_STOCK" default:"true"`
	TimeBudgetSoftFraction  float64 `mapstructure:"time_budget_soft_fraction" env:"WAVEOPT_SOFT_FRACTION" default:"0.8"`
	TimeBudgetHardFraction  float64 `mapstructure:"time_budget_hard_fraction" env:"WAVEOPT_HARD_FRACTION" default:"0.95"`
}

// maxWorkerClamp is the ceiling on WorkerCount ("clamp <= 8").
const maxWorkerClamp = 8

// DefaultConfig returns the default configuration. WorkerCount resolves
// to logical cores, clamped to maxWorkerClamp.
func DefaultConfig() *Config {
	return &Config{
		Epsilon:                1e-6,
		MaxIterations:          100,
		MaxNeighborhoods:       3,
		MaxNoImprove:           5,
		WorkerCount:            0, // resolved by ResolvedWorkerCount
		Seed:                   0,
		ValidateStock:          true,
		TimeBudgetSoftFraction: 0.8,
		TimeBudgetHardFraction: 0.95,
	}
}

// ResolvedWorkerCount returns c.WorkerCount if positive, otherwise the
// logical core count clamped to maxWorkerClamp.
func (c *Config) ResolvedWorkerCount() int {
	if c.WorkerCount > 0 {
		if c.WorkerCount > maxWorkerClamp {
			return maxWorkerClamp
		}
		return c.WorkerCount
	}
	n := runtime.NumCPU()
	if n > maxWorkerClamp {
		return maxWorkerClamp
	}
	if n < 1 {
		return 1
	}
	return n
}

// Validate checks every field against the solver's constraints.
func (c *Config) Validate() error {
	if c.Epsilon <= 0 {
		return ErrInvalidConfig{Field: "epsilon", Reason: "must be positive"}
	}
	if c.MaxIterations < 1 {
		return ErrInvalidConfig{Field: "max_iterations", Reason: "must be at least 1"}
	}
	if c.MaxNeighborhoods < 1 {
		return ErrInvalidConfig{Field: "max_neighborhoods", Reason: "must be at least 1"}
	}
	if c.MaxNoImprove < 1 {
		return ErrInvalidConfig{Field: "max_no_improve", Reason: "must be at least 1"}
	}
	if c.WorkerCount < 0 {
		return ErrInvalidConfig{Field: "worker_count", Reason: "must be non-negative"}
	}
	if c.TimeBudgetSoftFraction <= 0 || c.TimeBudgetSoftFraction >= 1 {
		return ErrInvalidConfig{Field: "time_budget_soft_fraction", Reason: "must be in (0, 1)"}
	}
	if c.TimeBudgetHardFraction <= c.TimeBudgetSoftFraction || c.TimeBudgetHardFraction >= 1 {
		return ErrInvalidConfig{Field: "time_budget_hard_fraction", Reason: "must be in (soft_fraction, 1)"}
	}
	return nil
}
