package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	StatusCodeCategoryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
		},
		[]string{"service", "category", "method", "path"},
	)

	// BookingsTotal counts booking attempts by result (created, rejected, deleted)
	BookingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_bookings_total",
			Help: "Total number of booking operations by result",
		},
		[]string{"result"},
	)

	// TicketsCreatedTotal counts new tickets by source (tenant, internal)
	TicketsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_tickets_created_total",
			Help: "Total number of maintenance tickets created",
		},
		[]string{"source"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry once per process
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDurationHistogram,
			StatusCodeCategoryCounter,
			BookingsTotal,
			TicketsCreatedTotal,
		)
	})
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}

// Middleware records request count, duration and status category per route
func Middleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := c.Writer.Status()
		statusText := strconv.Itoa(status)

		RequestCounter.WithLabelValues(serviceName, method, path, statusText).Inc()
		RequestDurationHistogram.WithLabelValues(serviceName, method, path, statusText).
			Observe(time.Since(start).Seconds())
		if category := statusCategory(status); category != "" {
			StatusCodeCategoryCounter.WithLabelValues(serviceName, category, method, path).Inc()
		}
	}
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
