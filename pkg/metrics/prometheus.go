package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the global container of Prometheus instruments for the
// benchmark harness.
type Metrics struct {
	// Solve metrics.
	SolveOperationsTotal *prometheus.CounterVec
	SolveDuration        *prometheus.HistogramVec
	TotalFlowValue       *prometheus.GaugeVec
	TotalCostValue       *prometheus.GaugeVec
	GraphNodesTotal      *prometheus.HistogramVec
	GraphArcsTotal       *prometheus.HistogramVec
	UnsaturatedDemand    *prometheus.GaugeVec

	// Cache metrics.
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// System metrics.
	MemoryUsage *prometheus.GaugeVec
	Goroutines  prometheus.Gauge

	// Service info.
	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics creates and registers the metric set under the given
// namespace/subsystem.
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		SolveOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_operations_total",
				Help:      "Total number of solve operations",
			},
			[]string{"scenario", "status"},
		),

		SolveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of solve operations",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"scenario"},
		),

		TotalFlowValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_flow_value",
				Help:      "Last computed total flow value",
			},
			[]string{"scenario"},
		),

		TotalCostValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_cost_value",
				Help:      "Last computed total cost value",
			},
			[]string{"scenario"},
		),

		GraphNodesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_nodes_total",
				Help:      "Number of nodes in solved graphs",
				Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
			},
			[]string{"scenario"},
		),

		GraphArcsTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_arcs_total",
				Help:      "Number of arcs in solved graphs",
				Buckets:   []float64{20, 100, 500, 1000, 5000, 10000, 50000, 100000},
			},
			[]string{"scenario"},
		),

		UnsaturatedDemand: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "unsaturated_demand",
				Help:      "Demand left unsatisfied by the last solve, by scenario",
			},
			[]string{"scenario"},
		),

		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of solve-result cache hits",
			},
			[]string{"scenario"},
		),

		CacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_misses_total",
				Help:      "Total number of solve-result cache misses",
			},
			[]string{"scenario"},
		),

		MemoryUsage: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "memory_usage_bytes",
				Help:      "Current memory usage",
			},
			[]string{"type"},
		),

		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "goroutines",
				Help:      "Current number of goroutines",
			},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the process-global metrics, initializing them under the
// default namespace if InitMetrics hasn't run yet.
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("cdnflow", "")
	}
	return defaultMetrics
}

// RecordSolveOperation records one solve's outcome, duration, and result.
func (m *Metrics) RecordSolveOperation(scenario string, satisfied bool, duration time.Duration, totalFlow, totalCost, demand int64) {
	status := "satisfied"
	if !satisfied {
		status = "unsatisfied"
	}

	m.SolveOperationsTotal.WithLabelValues(scenario, status).Inc()
	m.SolveDuration.WithLabelValues(scenario).Observe(duration.Seconds())
	m.TotalFlowValue.WithLabelValues(scenario).Set(float64(totalFlow))
	m.TotalCostValue.WithLabelValues(scenario).Set(float64(totalCost))
	m.UnsaturatedDemand.WithLabelValues(scenario).Set(float64(demand - totalFlow))
}

// RecordGraphSize records the size of a graph passed to Solve.
func (m *Metrics) RecordGraphSize(scenario string, nodes, arcs int) {
	m.GraphNodesTotal.WithLabelValues(scenario).Observe(float64(nodes))
	m.GraphArcsTotal.WithLabelValues(scenario).Observe(float64(arcs))
}

// RecordCacheHit increments the cache hit counter for scenario.
func (m *Metrics) RecordCacheHit(scenario string) {
	m.CacheHitsTotal.WithLabelValues(scenario).Inc()
}

// RecordCacheMiss increments the cache miss counter for scenario.
func (m *Metrics) RecordCacheMiss(scenario string) {
	m.CacheMissesTotal.WithLabelValues(scenario).Inc()
}

// SetServiceInfo publishes service version/environment as a gauge.
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler returns the HTTP handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Server serves /metrics and /health for the duration of a benchmark run.
type Server struct {
	http *http.Server
}

// NewServer builds a metrics server listening on port. Call Start to begin
// serving and Shutdown to stop it.
func NewServer(port int) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK")) //nolint:errcheck // health endpoint, write failure is not actionable
	})

	return &Server{http: &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}}
}

// Start runs the server in the background. Bind or serve failures are
// logged rather than returned, since the caller has already moved on to
// running the benchmark itself.
func (s *Server) Start() {
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Warn("metrics server stopped", "error", err)
		}
	}()
}

// Shutdown stops the server, giving in-flight scrapes up to 2 seconds to
// finish.
func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		slog.Warn("failed to shut down metrics server", "error", err)
	}
}
