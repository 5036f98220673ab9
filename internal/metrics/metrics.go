package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreatedTotal counts orders committed successfully.
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_orders_created_total",
		Help: "Total number of orders created",
	})

	// OrdersFailedTotal counts order submissions that did not result in
	// a committed order, by reason.
	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_orders_failed_total",
		Help: "Total number of failed order submissions",
	}, []string{"reason"})

	// CartMutationsTotal counts cart operations by type.
	CartMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_cart_mutations_total",
		Help: "Total number of cart mutations",
	}, []string{"operation"})

	// HTTPRequestsTotal counts HTTP requests served.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)
