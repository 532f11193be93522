package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/pitchcount/internal/domain/pitchcount"
	"github.com/riskibarqy/pitchcount/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.StatsAPIBaseURL != "https://statsapi.mlb.com/api/v1" {
		t.Fatalf("unexpected StatsAPIBaseURL: %q", cfg.StatsAPIBaseURL)
	}
	if cfg.StatsAPITimeout != 0 || cfg.StatsAPIMaxRetries != 0 || cfg.StatsAPICircuitEnabled {
		t.Fatalf("expected stats api timeout, retries and breaker to be off by default: %+v", cfg)
	}
	if cfg.AggregatorMaxWorkers != 8 {
		t.Fatalf("unexpected AggregatorMaxWorkers: %d", cfg.AggregatorMaxWorkers)
	}
	if len(cfg.ExcludedCounts) != 0 {
		t.Fatalf("expected no excluded counts by default, got=%v", cfg.ExcludedCounts)
	}
	if len(cfg.InPlayPrefixes) != 1 || cfg.InPlayPrefixes[0] != "In play" {
		t.Fatalf("unexpected InPlayPrefixes: %v", cfg.InPlayPrefixes)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
	if cfg.PyroscopeAppName != cfg.ServiceName {
		t.Fatalf("expected PyroscopeAppName to default to ServiceName, got=%q", cfg.PyroscopeAppName)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-foo=bar, uptrace-dsn=\"https://token@api.uptrace.dev/1\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_StatsAPIConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("STATSAPI_BASE_URL", "http://localhost:9000/api/v1")
	t.Setenv("STATSAPI_TIMEOUT", "20s")
	t.Setenv("STATSAPI_MAX_RETRIES", "2")
	t.Setenv("STATSAPI_CIRCUIT_ENABLED", "true")
	t.Setenv("STATSAPI_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("STATSAPI_CIRCUIT_OPEN_TIMEOUT", "30s")
	t.Setenv("STATSAPI_CIRCUIT_HALF_OPEN_MAX_REQ", "1")
	t.Setenv("AGGREGATOR_MAX_WORKERS", "16")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StatsAPIBaseURL != "http://localhost:9000/api/v1" {
		t.Fatalf("unexpected StatsAPIBaseURL: %q", cfg.StatsAPIBaseURL)
	}
	if cfg.StatsAPITimeout != 20*time.Second {
		t.Fatalf("unexpected StatsAPITimeout: %s", cfg.StatsAPITimeout)
	}
	if cfg.StatsAPIMaxRetries != 2 {
		t.Fatalf("unexpected StatsAPIMaxRetries: %d", cfg.StatsAPIMaxRetries)
	}
	if !cfg.StatsAPICircuitEnabled || cfg.StatsAPICircuitFailureCount != 3 || cfg.StatsAPICircuitOpenTimeout != 30*time.Second || cfg.StatsAPICircuitHalfOpenMaxReq != 1 {
		t.Fatalf("unexpected circuit config: %+v", cfg)
	}
	if cfg.AggregatorMaxWorkers != 16 {
		t.Fatalf("unexpected AggregatorMaxWorkers: %d", cfg.AggregatorMaxWorkers)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_StatsAPIValidation(t *testing.T) {
	tests := map[string]string{
		"STATSAPI_TIMEOUT":               "-1s",
		"STATSAPI_MAX_RETRIES":           "-1",
		"STATSAPI_CIRCUIT_ENABLED":       "maybe",
		"STATSAPI_CIRCUIT_FAILURE_COUNT": "0",
		"STATSAPI_CIRCUIT_OPEN_TIMEOUT":  "0s",
		"AGGREGATOR_MAX_WORKERS":         "0",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_ExcludedCounts(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PITCHCOUNT_EXCLUDED_COUNTS", "3-2; 0-0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.ExcludedCounts) != 2 {
		t.Fatalf("expected two excluded counts, got=%v", cfg.ExcludedCounts)
	}
	if cfg.ExcludedCounts[0] != pitchcount.Count(3, 2) || cfg.ExcludedCounts[1] != pitchcount.Count(0, 0) {
		t.Fatalf("unexpected excluded counts: %v", cfg.ExcludedCounts)
	}
}

func TestParseCountList_Rejects(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"X", "4-0", "0-3", "a-b", "1"} {
		if _, err := parseCountList(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestLoad_PyroscopeRequiresServerAddress(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}
