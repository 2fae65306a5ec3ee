package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HandshakePhaseTransitions tracks each C7 phase change.
	HandshakePhaseTransitions = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handshake",
			Name:      "phase_transitions_total",
			Help:      "Total number of handshake phase transitions",
		},
		[]string{"phase"},
	)

	// HandshakeDuration tracks wall-clock time from HandshakeBegin to Finished.
	HandshakeDuration = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "handshake",
			Name:      "duration_seconds",
			Help:      "Time to complete a handshake, from first ClientHello byte to Finished",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)
)
