package config

import "github.com/kosarica/wavepick/internal/waveopt"

// ToWaveoptConfig translates the loaded SolverConfig into a waveopt.Config,
// keeping the CLI-facing config shape (mapstructure tags, env bindings)
// separate from the solver's own value type.
func (s SolverConfig) ToWaveoptConfig() *waveopt.Config {
	return &waveopt.Config{
		Epsilon:                s.Epsilon,
		MaxIterations:          s.MaxIterations,
		MaxNeighborhoods:       s.MaxNeighborhoods,
		MaxNoImprove:           s.MaxNoImprove,
		WorkerCount:            s.WorkerCount,
		Seed:                   s.Seed,
		ValidateStock:          s.ValidateStock,
		TimeBudgetSoftFraction: s.TimeBudgetSoftFraction,
		TimeBudgetHardFraction: s.TimeBudgetHardFraction,
	}
}
