package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var metricsAddr string

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Expose the solver's Prometheus metrics over HTTP",
	Long: `Serve the waveopt package's Prometheus collectors (Dinkelbach
iteration counts, best ratios, phase durations, solve outcomes, cover
sizes) on /metrics. The collectors live in this process only, and this
command itself never calls the solver, so solves run by other wavepick
processes never update the series it serves.`,
	RunE: runServeMetrics,
}

func init() {
	rootCmd.AddCommand(serveMetricsCmd)
	serveMetricsCmd.Flags().StringVar(&metricsAddr, "addr", ":9090", "listen address for the metrics endpoint")
}

func runServeMetrics(cmd *cobra.Command, args []string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info().Str("addr", metricsAddr).Msg("serving metrics")
	if err := http.ListenAndServe(metricsAddr, mux); err != nil {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
