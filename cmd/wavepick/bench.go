package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/kosarica/wavepick/internal/instanceio"
	"github.com/kosarica/wavepick/internal/waveopt"
	"github.com/spf13/cobra"
)

var (
	benchRuns       int
	benchDeadlineMs int
)

var benchCmd = &cobra.Command{
	Use:   "bench <instance-file>",
	Short: "Repeatedly solve an instance and report timing/ratio statistics",
	Long: `Solve the same instance file --runs times (seed 0..runs-1 each time,
overriding the config seed so P5 determinism isn't what's being measured)
and print wall-clock percentiles (p50, p95, max) and the best ratio
found. Useful for sizing
--deadline-ms against a representative instance before a batch run.`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVar(&benchRuns, "runs", 10, "number of solve() invocations")
	benchCmd.Flags().IntVar(&benchDeadlineMs, "deadline-ms", 0, "wall-clock budget per run in milliseconds (default: config solver.deadline_ms)")
}

func runBench(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening instance file: %w", err)
	}
	defer f.Close()

	instance, err := instanceio.ParseInstance(f)
	if err != nil {
		return fmt.Errorf("parsing instance: %w", err)
	}

	if benchRuns < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}

	deadlineMs := cfg.Solver.DeadlineMs
	if benchDeadlineMs > 0 {
		deadlineMs = benchDeadlineMs
	}
	if deadlineMs <= 0 {
		deadlineMs = 5000
	}

	elapsed := make([]time.Duration, 0, benchRuns)
	ratios := make([]float64, 0, benchRuns)
	outcomes := make(map[string]int, 4)

	for run := 0; run < benchRuns; run++ {
		solverCfg := cfg.Solver.ToWaveoptConfig()
		solverCfg.Seed = uint64(run)
		if err := solverCfg.Validate(); err != nil {
			return fmt.Errorf("invalid solver config: %w", err)
		}

		start := time.Now()
		deadline := start.Add(time.Duration(deadlineMs) * time.Millisecond)
		outcome := waveopt.Solve(context.Background(), instance, solverCfg, deadline)
		elapsed = append(elapsed, time.Since(start))
		outcomes[outcome.Kind.String()]++
		if outcome.Kind == waveopt.OutcomeOk || outcome.Kind == waveopt.OutcomeTimedOut {
			ratios = append(ratios, outcome.Ratio)
		}
	}

	sort.Slice(elapsed, func(i, j int) bool { return elapsed[i] < elapsed[j] })
	sort.Float64s(ratios)

	logger.Info().
		Int("runs", benchRuns).
		Interface("outcomes", outcomes).
		Dur("p50_latency", percentileDuration(elapsed, 0.50)).
		Dur("p95_latency", percentileDuration(elapsed, 0.95)).
		Dur("max_latency", elapsed[len(elapsed)-1]).
		Float64("best_ratio", bestRatio(ratios)).
		Msg("bench finished")

	return nil
}

func percentileDuration(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func bestRatio(sortedRatios []float64) float64 {
	if len(sortedRatios) == 0 {
		return 0
	}
	return sortedRatios[len(sortedRatios)-1]
}
