// Package metrics exposes the storefront's Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Registry owns its own prometheus.Registry so tests can build as many as
// they like. A nil *Registry records nothing.
type Registry struct {
	reg           *prometheus.Registry
	webhookEvents *prometheus.CounterVec
	ordersCreated prometheus.Counter
	ordersPaid    prometheus.Counter
	outboxRelayed prometheus.Counter
	httpRequests  *prometheus.CounterVec
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Payment webhook deliveries by outcome.",
		}, []string{"outcome"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders created.",
		}),
		ordersPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_paid_total",
			Help:      "Orders transitioned to PAID.",
		}),
		outboxRelayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_messages_relayed_total",
			Help:      "Outbox messages published to the message bus.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.webhookEvents,
		r.ordersCreated,
		r.ordersPaid,
		r.outboxRelayed,
		r.httpRequests,
	)
	return r
}

func (r *Registry) WebhookEvent(outcome string) {
	if r == nil {
		return
	}
	r.webhookEvents.WithLabelValues(outcome).Inc()
}

func (r *Registry) OrderCreated() {
	if r == nil {
		return
	}
	r.ordersCreated.Inc()
}

func (r *Registry) OrderPaid() {
	if r == nil {
		return
	}
	r.ordersPaid.Inc()
}

func (r *Registry) OutboxRelayed(n int) {
	if r == nil {
		return
	}
	r.outboxRelayed.Add(float64(n))
}

// InstrumentHandler counts requests by method and status code.
func (r *Registry) InstrumentHandler(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return promhttp.InstrumentHandlerCounter(r.httpRequests, next)
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer exposes the registry to tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
