package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/pitchcount/external/statsapi"
	"github.com/riskibarqy/pitchcount/internal/config"
	"github.com/riskibarqy/pitchcount/internal/domain/game"
	"github.com/riskibarqy/pitchcount/internal/interfaces/httpapi"
	"github.com/riskibarqy/pitchcount/internal/platform/logging"
	"github.com/riskibarqy/pitchcount/internal/platform/metrics"
	"github.com/riskibarqy/pitchcount/internal/platform/resilience"
	"github.com/riskibarqy/pitchcount/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewStatsProvider builds the stats API client from config. recorder may be nil.
func NewStatsProvider(cfg config.Config, logger *logging.Logger, recorder *metrics.Recorder) game.Provider {
	return statsapi.NewClient(statsapi.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.StatsAPITimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:    cfg.StatsAPIBaseURL,
		Timeout:    cfg.StatsAPITimeout,
		MaxRetries: cfg.StatsAPIMaxRetries,
		Logger:     logger.Named("statsapi"),
		Metrics:    recorder,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StatsAPICircuitEnabled,
			FailureThreshold: cfg.StatsAPICircuitFailureCount,
			OpenTimeout:      cfg.StatsAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StatsAPICircuitHalfOpenMaxReq,
			OnStateChange: func(from, to resilience.CircuitState) {
				logger.Warn("stats api circuit state changed", "from", from, "to", to)
			},
		},
	})
}

func NewMatrixService(cfg config.Config, provider game.Provider, logger *logging.Logger, recorder *metrics.Recorder) *usecase.MatrixService {
	return usecase.NewMatrixService(provider, usecase.MatrixServiceConfig{
		MaxWorkers:     cfg.AggregatorMaxWorkers,
		ExcludedCounts: cfg.ExcludedCounts,
		InPlayPrefixes: cfg.InPlayPrefixes,
	}, logger, recorder)
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	var recorder *metrics.Recorder
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		recorder = metrics.New()
		metricsHandler = recorder.Handler()
	}

	provider := NewStatsProvider(cfg, logger, recorder)
	matrixSvc := NewMatrixService(cfg, provider, logger.Named("usecase"), recorder)

	handler := httpapi.NewHandler(matrixSvc, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, metricsHandler)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
