package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeOK         = "ok"
	OutcomeStoreError = "store_error"
	OutcomeNotFound   = "not_found"
	OutcomeMissingID  = "missing_id"
	OutcomeUnexpected = "unexpected"
)

var (
	PageLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "plantcatalog", Name: "page_loads_total", Help: "Number of page loads by page and outcome."},
		[]string{"page", "outcome"},
	)
	StoreQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "plantcatalog", Name: "store_queries_total", Help: "Number of Record Store queries by backend, operation and outcome."},
		[]string{"backend", "operation", "outcome"},
	)
	BreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: "plantcatalog", Name: "store_breaker_open", Help: "1 while the named Record Store circuit breaker is open."},
		[]string{"breaker"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(PageLoads)
	reg.MustRegister(StoreQueries)
	reg.MustRegister(BreakerState)
}
