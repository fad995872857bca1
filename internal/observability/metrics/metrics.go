// Package metrics exposes prometheus instruments for the HTTP surface and the
// claim workflow.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics captures request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sitagih_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sitagih_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// GinMiddleware records per-request metrics.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// WorkflowMetrics counts claim lifecycle transitions and their outcomes.
type WorkflowMetrics struct {
	transitions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	seqRetries  prometheus.Counter
}

func NewWorkflowMetrics() *WorkflowMetrics {
	return &WorkflowMetrics{
		transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sitagih_claim_transitions_total",
			Help: "Completed claim transitions by action and resulting status.",
		}, []string{"action", "status"}),
		rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sitagih_claim_rejections_total",
			Help: "Rejected claim transitions by action and reason.",
		}, []string{"action", "reason"}),
		seqRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sitagih_numbering_retries_total",
			Help: "Retries caused by duplicate generated numbers.",
		}),
	}
}

func (m *WorkflowMetrics) Transition(action, status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, status).Inc()
}

func (m *WorkflowMetrics) Rejection(action, reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(action, reason).Inc()
}

func (m *WorkflowMetrics) NumberRetry() {
	if m == nil {
		return
	}
	m.seqRetries.Inc()
}
