package main

import (
	"fmt"
	"os"

	"github.com/kosarica/wavepick/internal/instanceio"
	"github.com/kosarica/wavepick/internal/waveopt"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <instance-file> <solution-file>",
	Short: "Check a solution file against an instance file",
	Long: `Re-derive every constraint (ID validity, bound containment, stock
coverage) from scratch against a solution file, independent of how the
solution was produced. Exits non-zero and prints every violation found.`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	instanceFile, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening instance file: %w", err)
	}
	defer instanceFile.Close()

	instance, err := instanceio.ParseInstance(instanceFile)
	if err != nil {
		return fmt.Errorf("parsing instance: %w", err)
	}

	solutionFile, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("opening solution file: %w", err)
	}
	defer solutionFile.Close()

	idx, err := waveopt.BuildIndex(instance, 1)
	if err != nil {
		return fmt.Errorf("indexing instance: %w", err)
	}

	sol, err := instanceio.ParseSolution(solutionFile, idx)
	if err != nil {
		return fmt.Errorf("parsing solution: %w", err)
	}

	violations := waveopt.ValidateSolution(instance, sol)
	if len(violations) == 0 {
		logger.Info().Msg("solution valid")
		return nil
	}

	for _, v := range violations {
		logger.Error().Str("code", v.Code).Msg(v.Detail)
	}
	return fmt.Errorf("%d violation(s) found", len(violations))
}
