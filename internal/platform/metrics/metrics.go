package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pitchcount"

const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
)

// Recorder holds the service collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	upstreamFetches  *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	breakerState     *prometheus.GaugeVec
	aggregations     *prometheus.CounterVec
	aggregationTime  prometheus.Histogram
	matricesBuilt    prometheus.Counter
}

func New() *Recorder {
	registry := prometheus.NewRegistry()
	r := &Recorder{
		registry: registry,
		upstreamFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_fetches_total",
				Help:      "Stats data fetches by endpoint and outcome.",
			},
			[]string{"endpoint", "outcome"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Stats API request latency by endpoint.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "upstream_circuit_state",
				Help:      "1 for the current circuit breaker state, 0 otherwise.",
			},
			[]string{"state"},
		),
		aggregations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "aggregations_total",
				Help:      "Season aggregation runs by kind.",
			},
			[]string{"kind"},
		),
		aggregationTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "aggregation_duration_seconds",
				Help:      "Wall time of a season aggregation run.",
				Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		matricesBuilt: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "matrices_built_total",
				Help:      "Transition matrices produced.",
			},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.upstreamFetches,
		r.upstreamDuration,
		r.breakerState,
		r.aggregations,
		r.aggregationTime,
		r.matricesBuilt,
	)
	return r
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) ObserveFetch(endpoint string, degraded bool) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if degraded {
		outcome = OutcomeDegraded
	}
	r.upstreamFetches.WithLabelValues(endpoint, outcome).Inc()
}

func (r *Recorder) ObserveRequest(endpoint string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (r *Recorder) SetBreakerState(state string) {
	if r == nil {
		return
	}
	for _, s := range []string{"closed", "open", "half_open"} {
		v := 0.0
		if s == state {
			v = 1
		}
		r.breakerState.WithLabelValues(s).Set(v)
	}
}

func (r *Recorder) ObserveAggregation(kind string, elapsed time.Duration, matrices int) {
	if r == nil {
		return
	}
	r.aggregations.WithLabelValues(kind).Inc()
	r.aggregationTime.Observe(elapsed.Seconds())
	if matrices > 0 {
		r.matricesBuilt.Add(float64(matrices))
	}
}
