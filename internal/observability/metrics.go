// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the application.
package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blackbook_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by statement kind.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blackbook_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// PieceUploadsTotal counts stored pieces by type.
	PieceUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blackbook_piece_uploads_total",
		Help: "Total number of pieces uploaded by piece type",
	}, []string{"piece_type"})

	// RateLimitRejections counts requests rejected by the rate limiter.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blackbook_rate_limit_rejections_total",
		Help: "Total number of requests rejected by the rate limiter",
	}, []string{"resource"})
)

// ObserveQuery records the latency of a database statement. The operation
// label is the leading SQL verb so cardinality stays bounded.
func ObserveQuery(sql string, begin time.Time) {
	op := "OTHER"
	if fields := strings.Fields(sql); len(fields) > 0 {
		switch verb := strings.ToUpper(fields[0]); verb {
		case "SELECT", "INSERT", "UPDATE", "DELETE", "BEGIN", "COMMIT":
			op = verb
		}
	}
	DatabaseQueryLatency.WithLabelValues(op).Observe(time.Since(begin).Seconds())
}
