package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Organization metrics
	OrganizationsCreatedTotal prometheus.Counter
	InvitationEventsTotal     *prometheus.CounterVec
	MemberEventsTotal         *prometheus.CounterVec

	// Notification metrics
	EmailsTotal *prometheus.CounterVec

	// Rate limit metrics
	RateLimitedTotal prometheus.Counter
}

// New creates a new Metrics instance registered with reg.
// A nil reg registers with the default Prometheus registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "orghub"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		OrganizationsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "organization",
				Name:      "created_total",
				Help:      "Total number of organizations created",
			},
		),
		InvitationEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "organization",
				Name:      "invitation_events_total",
				Help:      "Total number of invitation lifecycle events",
			},
			[]string{"event"}, // event: sent, accepted, cancelled
		),
		MemberEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "organization",
				Name:      "member_events_total",
				Help:      "Total number of membership changes",
			},
			[]string{"event"}, // event: updated, removed
		),

		EmailsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "notification",
				Name:      "emails_total",
				Help:      "Total number of outbound emails by kind and outcome",
			},
			[]string{"kind", "status"},
		),

		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
		),
	}
}

// --- Convenience methods ---

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := statusCodeToString(status)
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordOrganizationCreated records a new organization.
func (m *Metrics) RecordOrganizationCreated() {
	m.OrganizationsCreatedTotal.Inc()
}

// RecordInvitationEvent records an invitation lifecycle event.
func (m *Metrics) RecordInvitationEvent(event string) {
	m.InvitationEventsTotal.WithLabelValues(event).Inc()
}

// RecordMemberEvent records a membership change.
func (m *Metrics) RecordMemberEvent(event string) {
	m.MemberEventsTotal.WithLabelValues(event).Inc()
}

// RecordEmail records an email delivery attempt.
func (m *Metrics) RecordEmail(kind string, err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.EmailsTotal.WithLabelValues(kind, status).Inc()
}

// RecordRateLimited records a rejected request.
func (m *Metrics) RecordRateLimited() {
	m.RateLimitedTotal.Inc()
}

// statusCodeToString converts an HTTP status code to a string category.
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
