// Package metrics records operational counters of the form service on a
// private Prometheus registry and exposes them for scraping.
//
// A nil *Recorder is valid and records nothing, so components can be built
// without metrics in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "form"

type Recorder struct {
	reg *prometheus.Registry

	formsCreated       prometheus.Counter
	formsDeleted       prometheus.Counter
	responsesSaved     prometheus.Counter
	projectionFailures prometheus.Counter
	teardownFailures   *prometheus.CounterVec // reason: compensation, delete, orphan
	orphanTables       prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers every collector on a fresh registry together with the Go
// runtime and process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	register := func(c prometheus.Collector) { reg.MustRegister(c) }

	r := &Recorder{
		reg: reg,
		formsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "created_total",
			Help:      "Forms created together with their provisioned table.",
		}),
		formsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deleted_total",
			Help:      "Forms deleted by their owner.",
		}),
		responsesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_total",
			Help:      "Submissions stored in the response log.",
		}),
		projectionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projection_failures_total",
			Help:      "Stored submissions whose row could not be written to the provisioned table.",
		}),
		teardownFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_teardown_failures_total",
			Help:      "Provisioned tables that could not be dropped.",
		}, []string{"reason"}),
		orphanTables: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orphan_tables",
			Help:      "Provisioned tables without a form seen by the last audit.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	register(r.formsCreated)
	register(r.formsDeleted)
	register(r.responsesSaved)
	register(r.projectionFailures)
	register(r.teardownFailures)
	register(r.orphanTables)
	register(r.httpRequests)
	register(r.httpDuration)
	register(collectors.NewGoCollector())
	register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return r
}

// Teardown failure reasons.
const (
	TeardownCompensation = "compensation"
	TeardownDelete       = "delete"
	TeardownOrphan       = "orphan"
)

func (r *Recorder) FormCreated() {
	if r == nil {
		return
	}
	r.formsCreated.Inc()
}

func (r *Recorder) FormDeleted() {
	if r == nil {
		return
	}
	r.formsDeleted.Inc()
}

func (r *Recorder) ResponseSaved() {
	if r == nil {
		return
	}
	r.responsesSaved.Inc()
}

func (r *Recorder) ProjectionFailed() {
	if r == nil {
		return
	}
	r.projectionFailures.Inc()
}

func (r *Recorder) TeardownFailed(reason string) {
	if r == nil {
		return
	}
	r.teardownFailures.WithLabelValues(reason).Inc()
}

func (r *Recorder) OrphanTables(n int) {
	if r == nil {
		return
	}
	r.orphanTables.Set(float64(n))
}

// ObserveRequest records one served request. route must be a route
// pattern, not the raw path, to keep label cardinality bounded.
func (r *Recorder) ObserveRequest(route, method string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
