package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kosarica/wavepick/internal/instanceio"
	"github.com/kosarica/wavepick/internal/waveopt"
	"github.com/spf13/cobra"
)

var (
	solveOutputPath string
	solveSeed       uint64
	solveDeadlineMs int
)

var solveCmd = &cobra.Command{
	Use:   "solve <instance-file>",
	Short: "Solve a wave-picking instance",
	Long: `Read an instance file, run the Dinkelbach/VNS solver against it, and
write the resulting solution file (or print a diagnostic for a non-Ok
outcome).`,
	Example: `  wavepick solve instances/wave-001.txt
  wavepick solve instances/wave-001.txt -o solutions/wave-001.sol --deadline-ms 2000`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVarP(&solveOutputPath, "output", "o", "", "solution output path (default: stdout)")
	solveCmd.Flags().Uint64Var(&solveSeed, "seed", 0, "RNG seed override")
	solveCmd.Flags().IntVar(&solveDeadlineMs, "deadline-ms", 0, "wall-clock budget in milliseconds (default: config solver.deadline_ms)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening instance file: %w", err)
	}
	defer f.Close()

	instance, err := instanceio.ParseInstance(f)
	if err != nil {
		return fmt.Errorf("parsing instance: %w", err)
	}

	solverCfg := cfg.Solver.ToWaveoptConfig()
	if solveSeed != 0 {
		solverCfg.Seed = solveSeed
	}
	if err := solverCfg.Validate(); err != nil {
		return fmt.Errorf("invalid solver config: %w", err)
	}

	deadlineMs := cfg.Solver.DeadlineMs
	if solveDeadlineMs > 0 {
		deadlineMs = solveDeadlineMs
	}
	if deadlineMs <= 0 {
		deadlineMs = 5000
	}
	deadline := time.Now().Add(time.Duration(deadlineMs) * time.Millisecond)

	logger.Info().
		Int("num_orders", instance.NumOrders()).
		Int("num_items", instance.NumItems()).
		Int("num_aisles", instance.NumAisles()).
		Int("deadline_ms", deadlineMs).
		Msg("solving instance")

	outcome := waveopt.Solve(context.Background(), instance, solverCfg, deadline)

	switch outcome.Kind {
	case waveopt.OutcomeOk, waveopt.OutcomeTimedOut:
		logger.Info().
			Str("outcome", outcome.Kind.String()).
			Float64("ratio", outcome.Ratio).
			Int("orders", len(outcome.Solution.Orders())).
			Int("aisles", len(outcome.Solution.Aisles())).
			Msg("solve finished")
		return writeSolution(outcome.Solution)
	case waveopt.OutcomeNoFeasibleSolution:
		return fmt.Errorf("no feasible solution found")
	default:
		return fmt.Errorf("invalid instance: %s", outcome.Reason)
	}
}

func writeSolution(sol *waveopt.Solution) error {
	if solveOutputPath == "" {
		return instanceio.WriteSolution(os.Stdout, sol)
	}
	f, err := os.Create(solveOutputPath)
	if err != nil {
		return fmt.Errorf("creating solution file: %w", err)
	}
	defer f.Close()
	return instanceio.WriteSolution(f, sol)
}
