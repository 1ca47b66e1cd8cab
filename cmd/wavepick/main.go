// Command wavepick solves wave-picking instances read from the plain-text
// instance file format: select a subset of orders and a covering set of
// aisles maximizing the picked-units-per-visited-aisle ratio.
package main

import (
	"context"
	"io"
	"os"

	"github.com/kosarica/wavepick/config"
	"github.com/kosarica/wavepick/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile         string
	cfg             *config.Config
	logger          *zerolog.Logger
	tracingShutdown func(context.Context) error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wavepick",
	Short: "Wave-picking solver CLI",
	Long: `A CLI tool that solves wave-picking instances: select a subset of
orders and a covering set of warehouse aisles maximizing total picked
units per visited aisle, using a Dinkelbach parametric reduction with
Variable Neighborhood Search refinement.`,
	PersistentPreRunE: persistentPreRun,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		cfg = &config.Config{}
	}
}

func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}
	logger = initLogger()

	tracingCfg := telemetry.Config{}
	if cfg != nil {
		tracingCfg.Enabled = cfg.Tracing.Enabled
		tracingCfg.ServiceName = cfg.Tracing.ServiceName
		tracingCfg.ServiceVersion = cfg.Tracing.ServiceVersion
	}
	shutdown, err := telemetry.Init(context.Background(), tracingCfg)
	if err != nil {
		return err
	}
	tracingShutdown = shutdown
	return nil
}

func initLogger() *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if cfg != nil && cfg.Logging.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			level = parsed
		}
	}

	var output io.Writer
	if cfg != nil && cfg.Logging.Format == "json" {
		output = os.Stdout
	} else {
		noColor := false
		if cfg != nil {
			noColor = cfg.Logging.NoColor
		}
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: noColor}
	}

	log := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &log
}

func main() {
	err := Execute()
	if tracingShutdown != nil {
		_ = tracingShutdown(context.Background())
	}
	if err != nil {
		os.Exit(1)
	}
}
