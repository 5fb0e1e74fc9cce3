// Package observability exposes the process metrics surface. Collectors
// are registered once at package init with promauto and shared by the
// HTTP layer and the payment gateway.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drivebay",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route, method and status class.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "drivebay",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	gatewayCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drivebay",
		Subsystem: "gateway",
		Name:      "calls_total",
		Help:      "Payment gateway calls, by operation and outcome.",
	}, []string{"operation", "outcome"})
)

// ObserveHTTP records one served request.
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RecordGatewayCall records one call against the payment provider.
// Outcome is "ok" or "error".
func RecordGatewayCall(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	gatewayCalls.WithLabelValues(operation, outcome).Inc()
}
