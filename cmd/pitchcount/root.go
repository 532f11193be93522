package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/riskibarqy/pitchcount/internal/app"
	"github.com/riskibarqy/pitchcount/internal/config"
	"github.com/riskibarqy/pitchcount/internal/platform/logging"
	"github.com/riskibarqy/pitchcount/internal/usecase"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	maxWorkers int
	withNames  bool
	asJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "pitchcount",
	Short: "Pitch count transition matrices from MLB play-by-play",
	Long: "Fetch MLB play-by-play data for a game's starting players, aggregate their\n" +
		"season pitches and print ball-strike count transition matrices.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&maxWorkers, "workers", 0, "concurrent fetches, overrides AGGREGATOR_MAX_WORKERS")
	rootCmd.PersistentFlags().BoolVar(&withNames, "names", false, "resolve player names")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print matrices as JSON instead of tables")

	rootCmd.AddCommand(matricesCmd)
	rootCmd.AddCommand(playerCmd)
}

// setup loads env config, applies flag overrides and builds the matrix service.
func setup() (*usecase.MatrixService, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logging.ParseLevel(logLevel)
	}
	if maxWorkers > 0 {
		cfg.AggregatorMaxWorkers = maxWorkers
	}

	logger := logging.NewConsole(cfg.LogLevel, os.Stderr)
	logging.SetDefault(logger)

	provider := app.NewStatsProvider(cfg, logger, nil)
	return app.NewMatrixService(cfg, provider, logger, nil), logger, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", name, raw)
	}
	return id, nil
}

func parseSeason(raw string) (int, error) {
	season, err := strconv.Atoi(raw)
	if err != nil || season <= 0 {
		return 0, fmt.Errorf("invalid season %q: must be a positive integer", raw)
	}
	return season, nil
}
