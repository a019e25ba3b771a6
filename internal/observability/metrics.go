package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	publishCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "genesis_vault",
		Subsystem: "publish",
		Name:      "requests_total",
		Help:      "Publish attempts by document and outcome.",
	}, []string{"document", "outcome"})

	storeWriteCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "genesis_vault",
		Subsystem: "store",
		Name:      "writes_total",
		Help:      "Whole-collection store writes by collection and outcome.",
	}, []string{"collection", "outcome"})
)

func init() {
	prometheus.MustRegister(publishCounter, storeWriteCounter)
}

// RecordPublish counts a publish attempt for the given document.
func RecordPublish(document, outcome string) {
	publishCounter.WithLabelValues(document, outcome).Inc()
}

// RecordStoreWrite counts a whole-collection replacement write.
func RecordStoreWrite(collection, outcome string) {
	storeWriteCounter.WithLabelValues(collection, outcome).Inc()
}
