package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RateLimitRejections counts requests rejected by the rate limiter, by action.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_rate_limit_rejections_total",
		Help: "Total number of requests rejected by the rate limiter",
	}, []string{"action"})

	// NotificationsCreated counts notification rows created, by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_notifications_created_total",
		Help: "Total number of notifications created",
	}, []string{"type"})

	// CacheRequests counts cache lookups by outcome (hit or miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_cache_requests_total",
		Help: "Total number of cache lookups by outcome",
	}, []string{"outcome"})

	// RedisErrors counts Redis command failures by operation.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
