// Package observability holds the Prometheus instruments of the bidding
// service. A nil *Metrics is valid and records nothing.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bidding"

// Selection results.
const (
	SelectionSucceeded = "succeeded"
	SelectionRejected  = "rejected"
	SelectionFailed    = "failed"
)

type Metrics struct {
	ordersCreated   prometheus.Counter
	quotesSubmitted *prometheus.CounterVec
	selections      *prometheus.CounterVec
	storeRetries    *prometheus.CounterVec
	outboxRelayed   prometheus.Counter
	handler         http.Handler
}

// NewMetrics registers every instrument on reg and serves it through Handler.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ordersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders published by shippers.",
		}),
		quotesSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_submitted_total",
			Help:      "Quote submissions, split into first submissions and revisions.",
		}, []string{"kind"}),
		selections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_selections_total",
			Help:      "Quote selection attempts by result.",
		}, []string{"result"}),
		storeRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_retries_total",
			Help:      "Retries after transient store errors by operation.",
		}, []string{"operation"}),
		outboxRelayed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_messages_relayed_total",
			Help:      "Outbox messages published to the broker.",
		}),
		handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}
}

func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *Metrics) QuoteSubmitted(revision bool) {
	if m == nil {
		return
	}
	kind := "new"
	if revision {
		kind = "revision"
	}
	m.quotesSubmitted.WithLabelValues(kind).Inc()
}

func (m *Metrics) Selection(result string) {
	if m == nil {
		return
	}
	m.selections.WithLabelValues(result).Inc()
}

func (m *Metrics) StoreRetry(operation string) {
	if m == nil {
		return
	}
	m.storeRetries.WithLabelValues(operation).Inc()
}

func (m *Metrics) OutboxRelayed(n int) {
	if m == nil {
		return
	}
	m.outboxRelayed.Add(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return m.handler
}
