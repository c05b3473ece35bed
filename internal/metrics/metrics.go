package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "linkedin_mcp"

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Publish source label values
const (
	SourceMCP       = "mcp"
	SourceHTTP      = "http"
	SourceScheduler = "scheduler"
)

// Metrics holds all Prometheus metrics for the server.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// MCP tool metrics
	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec

	// REST metrics
	HTTPRequests *prometheus.CounterVec

	// Publishing metrics
	PostsPublished *prometheus.CounterVec
	SchedulerRuns  *prometheus.CounterVec
	DuePosts       prometheus.Gauge
}

// New registers the server metrics on a fresh registry together with the Go
// runtime and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ToolCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "MCP tool invocations by tool and outcome.",
		}, []string{"tool", "outcome"}),
		ToolDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_duration_seconds",
			Help:      "MCP tool latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "REST API requests by route and status code.",
		}, []string{"method", "route", "code"}),
		PostsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_published_total",
			Help:      "Publish attempts by source and outcome.",
		}, []string{"source", "outcome"}),
		SchedulerRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_runs_total",
			Help:      "Due-post processing runs by outcome.",
		}, []string{"outcome"}),
		DuePosts: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "due_posts",
			Help:      "Posts found due in the last scheduler run.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, e.g. for tests
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveTool(tool string, err error, elapsed time.Duration) {
	if m == nil || m.ToolCalls == nil {
		return
	}

	m.ToolCalls.WithLabelValues(tool, outcome(err)).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

func (m *Metrics) IncHTTP(method, route, code string) {
	if m == nil || m.HTTPRequests == nil {
		return
	}

	m.HTTPRequests.WithLabelValues(method, route, code).Inc()
}

func (m *Metrics) IncPublish(source string, err error) {
	if m == nil || m.PostsPublished == nil {
		return
	}

	m.PostsPublished.WithLabelValues(source, outcome(err)).Inc()
}

func (m *Metrics) ObserveSchedulerRun(due int, err error) {
	if m == nil || m.SchedulerRuns == nil {
		return
	}

	m.SchedulerRuns.WithLabelValues(outcome(err)).Inc()
	m.DuePosts.Set(float64(due))
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
