// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldservice_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	},
		[]string{"route", "method", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fieldservice_http_request_duration_seconds",
		Help:    "HTTP request latency by route and method.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"route", "method"},
	)

	DomainEventsCommittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldservice_domain_events_committed_total",
		Help: "Domain events written to the outbox by committed transactions.",
	},
		[]string{"event"},
	)

	OutboxPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fieldservice_outbox_published_total",
		Help: "Outbox messages delivered to the broker.",
	})

	OutboxFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fieldservice_outbox_failures_total",
		Help: "Outbox messages whose delivery attempt failed.",
	})

	RouteCacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldservice_route_cache_requests_total",
		Help: "Route cache operations by result (hit, miss, error, stale).",
	},
		[]string{"result"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldservice_operation_errors_total",
		Help: "Failed operations by operation name.",
	},
		[]string{"operation"},
	)
)
