package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ComandasCreated counts comandas accepted for persistence.
	ComandasCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comandas_created_total",
		Help: "Number of comandas created.",
	})

	// SettlementsRejected counts pre-save validation failures by reason field.
	SettlementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comandas_settlements_rejected_total",
		Help: "Number of comanda saves blocked by settlement validation.",
	}, []string{"field"})

	// StatusTransitions counts comanda status changes.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comandas_status_transitions_total",
		Help: "Number of comanda status transitions.",
	}, []string{"to"})

	// CacheHits and CacheMisses track the Redis comanda cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comandas_cache_hits_total",
		Help: "Number of comanda cache hits.",
	})
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comandas_cache_misses_total",
		Help: "Number of comanda cache misses.",
	})

	// PaymentEvents counts gateway payment events consumed, by type.
	PaymentEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comandas_payment_events_total",
		Help: "Number of payment gateway events consumed.",
	}, []string{"type"})
)
