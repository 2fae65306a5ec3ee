package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsSealed counts AEAD seal operations performed by the record layer.
	RecordsSealed = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "sealed_total",
			Help:      "Total number of outbound records AEAD-sealed",
		},
	)

	// RecordsOpened counts AEAD open operations performed by the record layer.
	RecordsOpened = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "opened_total",
			Help:      "Total number of inbound records AEAD-opened",
		},
	)

	// AEADFailures counts record-layer AEAD open failures, one per failed
	// Protector.Open. A Finished verify_data mismatch (also a DecryptError)
	// is not counted here.
	AEADFailures = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "aead_failures_total",
			Help:      "Total number of AEAD open failures",
		},
	)
)
