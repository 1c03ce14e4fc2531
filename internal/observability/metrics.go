package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/counterdesk/counter-dispatch/internal/domain"
)

// Call results recorded by RecordCall.
const (
	CallResultServed = "served"
	CallResultBusy   = "busy"
	CallResultEmpty  = "empty"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	ticketsIssued   *prometheus.CounterVec
	calls           *prometheus.CounterVec
	finalized       *prometheus.CounterVec
	queueLength     *prometheus.GaugeVec
}

// NewMetrics registers collectors on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		errorCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_errors_total",
				Help: "Total HTTP errors by code",
			},
			[]string{"path", "method", "code"},
		),
		ticketsIssued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counter_tickets_issued_total",
				Help: "Tickets issued per class",
			},
			[]string{"class"},
		),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counter_calls_total",
				Help: "Call-next attempts by result",
			},
			[]string{"result"},
		),
		finalized: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counter_services_finalized_total",
				Help: "Finalized services by outcome",
			},
			[]string{"outcome"},
		),
		queueLength: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "counter_queue_length",
				Help: "Waiting tickets per class",
			},
			[]string{"class"},
		),
	}
	m.registry.MustRegister(
		m.requestCount,
		m.requestDuration,
		m.errorCount,
		m.ticketsIssued,
		m.calls,
		m.finalized,
		m.queueLength,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// RecordIssued counts an issued ticket.
func (m *Metrics) RecordIssued(class domain.TicketClass) {
	if m == nil {
		return
	}
	m.ticketsIssued.WithLabelValues(string(class)).Inc()
}

// RecordCall counts a call-next attempt.
func (m *Metrics) RecordCall(result string) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(result).Inc()
}

// RecordFinalized counts a finalized service.
func (m *Metrics) RecordFinalized(outcome domain.ServiceOutcome) {
	if m == nil {
		return
	}
	m.finalized.WithLabelValues(string(outcome)).Inc()
}

// SetQueueLengths publishes the waiting count of every class.
func (m *Metrics) SetQueueLengths(counts map[domain.TicketClass]int) {
	if m == nil {
		return
	}
	for class, n := range counts {
		m.queueLength.WithLabelValues(string(class)).Set(float64(n))
	}
}
