// Package metrics holds the prometheus collectors of the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	ListingsCreated prometheus.Counter
	CreditsRefilled prometheus.Counter
	WebhookEvents   *prometheus.CounterVec
}

// New registers every collector on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),

		ListingsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "listings_created_total",
			Help: "Properties created by spending a credit.",
		}),

		CreditsRefilled: f.NewCounter(prometheus.CounterOpts{
			Name: "credits_refilled_total",
			Help: "Credits added to user balances by payments.",
		}),

		WebhookEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Payment provider events received, by normalised type.",
		}, []string{"type"}),
	}
}

// Discard returns collectors registered nowhere.
func Discard() *Metrics {
	return New(prometheus.NewRegistry())
}
