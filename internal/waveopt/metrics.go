package waveopt

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// dinkelbachIterations tracks how many outer-loop iterations a solve ran.
	dinkelbachIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "waveopt_dinkelbach_iterations",
		Help:    "Number of Dinkelbach outer-loop iterations per solve",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})

	// dinkelbachRatio tracks the best ratio found per solve.
	dinkelbachRatio = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "waveopt_best_ratio",
		Help:    "Best units-per-aisle ratio returned by a solve",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 500},
	})

	// solveDuration tracks wall-clock time spent per solve phase.
	solveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "waveopt_phase_duration_seconds",
		Help:    "Time spent in each solve phase",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}, []string{"phase"}) // phase: construct, subsolve, refine, cover, polish

	// solveOutcomes tracks the tagged SolveOutcome variant returned.
	solveOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waveopt_solve_outcomes_total",
		Help: "Total solves by outcome kind",
	}, []string{"outcome"}) // Ok, TimedOut, NoFeasibleSolution, InvalidInstance

	// coverSize tracks the number of aisles selected by a cover.
	coverSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "waveopt_cover_aisle_count",
		Help:    "Number of aisles selected by the aisle cover routine",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})
)

// MetricsRecorder wraps the package-level prometheus collectors, keeping
// metrics logic out of the solver components themselves.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

func (m *MetricsRecorder) RecordIterations(n int) {
	dinkelbachIterations.Observe(float64(n))
}

func (m *MetricsRecorder) RecordBestRatio(ratio float64) {
	dinkelbachRatio.Observe(ratio)
}

func (m *MetricsRecorder) RecordPhaseDuration(phase string, d time.Duration) {
	solveDuration.WithLabelValues(phase).Observe(d.Seconds())
}

func (m *MetricsRecorder) RecordOutcome(kind string) {
	solveOutcomes.WithLabelValues(kind).Inc()
}

func (m *MetricsRecorder) RecordCoverSize(n int) {
	coverSize.Observe(float64(n))
}
