// Package metrics exposes prometheus instruments for the HTTP surface and
// the payment-request pipeline.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics tracks request counts and latencies per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP instruments on the given registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)
	return &HTTPMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "payrequest",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "payrequest",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// PipelineMetrics tracks builder and renderer activity.
type PipelineMetrics struct {
	requestsBuilt *prometheus.CounterVec
	pdfGenerated  prometheus.Counter
	pdfFailed     prometheus.Counter
}

// NewPipelineMetrics registers the pipeline instruments on the given registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)
	return &PipelineMetrics{
		requestsBuilt: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "payrequest",
			Subsystem: "builder",
			Name:      "requests_built_total",
			Help:      "Payment requests built, by urgency.",
		}, []string{"urgency"}),
		pdfGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "payrequest",
			Subsystem: "pdf",
			Name:      "generated_total",
			Help:      "PDF documents generated.",
		}),
		pdfFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "payrequest",
			Subsystem: "pdf",
			Name:      "failed_total",
			Help:      "PDF generation failures.",
		}),
	}
}

// RequestBuilt records a successful build.
func (m *PipelineMetrics) RequestBuilt(urgency string) {
	if m == nil {
		return
	}
	m.requestsBuilt.WithLabelValues(urgency).Inc()
}

// PDFGenerated records a rendered document.
func (m *PipelineMetrics) PDFGenerated() {
	if m == nil {
		return
	}
	m.pdfGenerated.Inc()
}

// PDFFailed records a rendering failure.
func (m *PipelineMetrics) PDFFailed() {
	if m == nil {
		return
	}
	m.pdfFailed.Inc()
}

// GinMiddleware observes every request routed through the engine.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.requests.WithLabelValues(route, method, status).Inc()
		m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
