package waveopt

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/kosarica/wavepick/internal/waveopt")

// Solve is the core's single external operation:
//
//	solve(instance, config, deadline) -> SolveOutcome
//
// It builds the IndexBundle, an initial solution, then iterates
// the Dinkelbach loop (parametric subsolve, refine, re-cover, feasibility
// check) until convergence, the iteration cap, or the deadline. Unless the
// loop stopped on the hard time fraction, it then polishes the best solution
// with a final local-search pass before returning.
//
// Every component of the outer loop is traced as an OpenTelemetry span
// (waveopt.dinkelbach.iteration) so a configured exporter can show where
// time goes across a solve; this package only calls otel.Tracer and never
// registers a TracerProvider itself, so spans are real once the process
// wires one (see cmd/wavepick's tracing setup) and a no-op otherwise.
func Solve(ctx context.Context, in *Instance, cfg *Config, deadline time.Time) SolveOutcome {
	logger := log.With().Str("component", "dinkelbach").Logger()
	metrics := NewMetricsRecorder()

	ctx, span := tracer.Start(ctx, "waveopt.solve")
	defer span.End()

	start := time.Now()
	budget := deadline.Sub(start)

	// cf is shared by every parallel kernel Solve calls below (except
	// BuildIndex, which can't safely return a partial result). Once the hard
	// deadline passes it is set so an in-flight Subsolve/RunVNS call drains
	// its current chunk and returns rather than starting new ones.
	var cf cancelFlag
	if budget > 0 {
		timer := time.AfterFunc(budget, cf.Set)
		defer timer.Stop()
	} else {
		cf.Set()
	}

	state := StateInitializing
	logger.Debug().Str("state", state.String()).Msg("solve starting")

	idx, err := BuildIndex(in, cfg.ResolvedWorkerCount())
	if err != nil {
		metrics.RecordOutcome(OutcomeInvalidInstance.String())
		return SolveOutcome{Kind: OutcomeInvalidInstance, Reason: err.Error()}
	}

	state = StateConstructing
	constructResult, err := runTraced(ctx, metrics, "construct", func(ctx context.Context) (*ConstructResult, error) {
		return Construct(in, idx, cfg)
	})
	if err != nil {
		if _, ok := err.(InfeasibleBoundsError); ok {
			metrics.RecordOutcome(OutcomeNoFeasibleSolution.String())
			return SolveOutcome{Kind: OutcomeNoFeasibleSolution, Reason: err.Error()}
		}
		metrics.RecordOutcome(OutcomeInvalidInstance.String())
		return SolveOutcome{Kind: OutcomeInvalidInstance, Reason: err.Error()}
	}
	if !constructResult.ReachedLB {
		metrics.RecordOutcome(OutcomeNoFeasibleSolution.String())
		return SolveOutcome{Kind: OutcomeNoFeasibleSolution, Solution: constructResult.Solution}
	}
	logger.Debug().Str("status", constructResult.FeasibleMark.Status.String()).Msg("construct produced initial solution")
	if !constructResult.FeasibleMark.OK() {
		// ReachedLB only checked the LB/UB totals; the cover itself can still
		// be stock-insufficient (ValidateStock) or reference an unknown
		// order/aisle id, which the Dinkelbach loop's own per-iteration
		// CheckFeasibility calls don't repeat for the seed solution.
		metrics.RecordOutcome(OutcomeNoFeasibleSolution.String())
		return SolveOutcome{Kind: OutcomeNoFeasibleSolution, Solution: constructResult.Solution}
	}

	best := constructResult.Solution
	lambda := best.Ratio()

	state = StateIterating
	disableVNS := false
	timedOut := false
	iterations := 0

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		iterations = iter + 1
		elapsedFrac := elapsedFraction(start, budget)
		if elapsedFrac > cfg.TimeBudgetHardFraction {
			timedOut = true
			break
		}
		if elapsedFrac > cfg.TimeBudgetSoftFraction {
			disableVNS = true
		}

		candidate, ok := runIteration(ctx, in, idx, cfg, logger, metrics, lambda, disableVNS, iter, &cf)
		if !ok {
			continue
		}

		newRatio := candidate.Ratio()
		if math.Abs(newRatio-lambda) < cfg.Epsilon {
			if newRatio > best.Ratio() {
				best = candidate
			}
			logger.Debug().Float64("ratio", newRatio).Msg("dinkelbach converged")
			break
		}
		if newRatio > best.Ratio() {
			best = candidate
		}
		lambda = newRatio
	}

	if timedOut {
		state = StateTimedOut
	} else {
		state = StatePolishing
		polished, err := runTraced(ctx, metrics, "polish", func(ctx context.Context) (*Solution, error) {
			return LocalSearch(in, idx, cfg, best.Clone(), best.Ratio())
		})
		if err == nil && polished.Ratio() > best.Ratio() {
			best = polished
		}
		state = StateDone
	}

	logger.Debug().
		Str("state", state.String()).
		Int("iterations", iterations).
		Float64("ratio", best.Ratio()).
		Msg("solve finished")

	metrics.RecordIterations(iterations)
	metrics.RecordBestRatio(best.Ratio())
	metrics.RecordCoverSize(best.NumAisles())

	if timedOut {
		metrics.RecordOutcome(OutcomeTimedOut.String())
		return SolveOutcome{Kind: OutcomeTimedOut, Solution: best, Ratio: best.Ratio()}
	}
	if best.Ratio() <= 0 {
		metrics.RecordOutcome(OutcomeNoFeasibleSolution.String())
		return SolveOutcome{Kind: OutcomeNoFeasibleSolution, Solution: best}
	}
	metrics.RecordOutcome(OutcomeOk.String())
	return SolveOutcome{Kind: OutcomeOk, Solution: best, Ratio: best.Ratio()}
}

// runIteration performs one Dinkelbach outer-loop body: subsolve, refine
// with local search alone, or with the full VNS driver (VNS disabled once
// the soft time fraction is crossed), re-cover, and feasibility check. ok
// is false if the iteration produced an infeasible candidate, which the
// caller treats as "skip this iteration".
func runIteration(ctx context.Context, in *Instance, idx *IndexBundle, cfg *Config, logger zerolog.Logger, metrics *MetricsRecorder, lambda float64, disableVNS bool, iter int, cf *cancelFlag) (*Solution, bool) {
	ctx, span := tracer.Start(ctx, "waveopt.dinkelbach.iteration", trace.WithAttributes(
		attribute.Int("iteration", iter),
		attribute.Float64("lambda", lambda),
		attribute.Bool("vns_disabled", disableVNS),
	))
	defer span.End()

	candidate, err := runTraced(ctx, metrics, "subsolve", func(ctx context.Context) (*Solution, error) {
		return subsolve(in, idx, lambda, cfg.ResolvedWorkerCount(), cf)
	})
	if err != nil {
		return nil, false
	}

	refined, err := runTraced(ctx, metrics, "refine", func(ctx context.Context) (*Solution, error) {
		if disableVNS {
			return LocalSearch(in, idx, cfg, candidate, lambda)
		}
		return runVNS(in, idx, cfg, candidate, lambda, cfg.Seed+uint64(iter), cfg.ResolvedWorkerCount(), cf)
	})
	if err != nil {
		return nil, false
	}

	cover, err := runTraced(ctx, metrics, "cover", func(ctx context.Context) (map[AisleID]struct{}, error) {
		return BuildCover(in, idx, refined.DemandVector(in))
	})
	if err != nil {
		return nil, false
	}
	refined.ReplaceCover(cover)

	fr := CheckFeasibility(in, refined, cfg.ValidateStock)
	if !fr.OK() {
		logger.Debug().Int("iteration", iter).Str("status", fr.Status.String()).Msg("iteration produced infeasible candidate, skipping")
		return nil, false
	}

	return refined, true
}

// runTraced wraps a phase computation in both an OpenTelemetry span and a
// MetricsRecorder phase-duration observation.
func runTraced[T any](ctx context.Context, metrics *MetricsRecorder, phase string, fn func(ctx context.Context) (T, error)) (T, error) {
	_, span := tracer.Start(ctx, "waveopt.dinkelbach."+phase)
	defer span.End()

	start := time.Now()
	result, err := fn(ctx)
	metrics.RecordPhaseDuration(phase, time.Since(start))
	if err != nil {
		span.RecordError(err)
	}
	return result, err
}

// elapsedFraction returns how much of the wall-clock budget has elapsed
// since start, as a fraction in [0, 1+]. A non-positive budget (deadline
// already passed at entry) reports 1.0 immediately.
func elapsedFraction(start time.Time, budget time.Duration) float64 {
	if budget <= 0 {
		return 1.0
	}
	return float64(time.Since(start)) / float64(budget)
}
