package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tiffinbox_http_requests_total",
		Help: "HTTP requests partitioned by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tiffinbox_http_request_duration_seconds",
		Help:    "HTTP request latency partitioned by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	refundOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tiffinbox_refund_operations_total",
		Help: "Refund operations partitioned by kind and outcome.",
	}, []string{"kind", "outcome"})
)

// Metrics records request counters and latency histograms. Routes are
// labelled by the gin template path so parameterized URLs do not explode
// cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordRefundOperation bumps the refund operation counter.
func RecordRefundOperation(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	refundOperationsTotal.WithLabelValues(kind, outcome).Inc()
}
