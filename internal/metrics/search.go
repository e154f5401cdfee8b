package metrics

import "github.com/prometheus/client_golang/prometheus"

// SearchesTotal counts search requests by query kind and outcome.
var SearchesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "searchd",
		Name:      "searches_total",
		Help:      "Total search requests by query kind and outcome",
	},
	[]string{"kind", "outcome"},
)

// RegisterSearchMetrics registers search counters with the default
// registry. Called explicitly from the composition root, no init().
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchesTotal)
}
