package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector wraps the Prometheus metrics of the builder service.
// It uses its own registry so tests can create as many as they like.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SessionCommands     *prometheus.CounterVec
	ActiveSessions      prometheus.Gauge
	StoreOperations     *prometheus.CounterVec
}

// New creates a Collector whose metric names are prefixed with namespace.
func New(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{registry: reg}

	c.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "path", "status_code"})

	c.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	c.SessionCommands = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_commands_total",
		Help:      "Builder session commands by operation and outcome",
	}, []string{"op", "status"})

	c.ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of open builder sessions",
	})

	c.StoreOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Pipeline store operations by kind and outcome",
	}, []string{"operation", "status"})

	reg.MustRegister(c.HTTPRequestsTotal, c.HTTPRequestDuration, c.SessionCommands,
		c.ActiveSessions, c.StoreOperations)
	return c
}

// ObserveRequest records one served HTTP request. route is the registered
// pattern, not the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	c.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// CommandApplied records a session command outcome.
func (c *Collector) CommandApplied(op string, err error) {
	c.SessionCommands.WithLabelValues(op, outcome(err)).Inc()
}

// StoreOperation records a store call outcome.
func (c *Collector) StoreOperation(op string, err error) {
	c.StoreOperations.WithLabelValues(op, outcome(err)).Inc()
}

// SetActiveSessions sets the open session gauge.
func (c *Collector) SetActiveSessions(n int) {
	c.ActiveSessions.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
