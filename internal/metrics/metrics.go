// Package metrics exposes the Prometheus collectors for the session core.
// Every collector here is a pure side effect of the state machine: removing
// this package must not change any observable protocol behavior (spec
// SPEC_FULL.md §4.11).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "synatls"

// Registry is the collector registry used by every metric in this package.
// Callers that expose it over HTTP (promhttp.HandlerFor(Registry, ...)) get
// only the collectors this module registers, not the global default
// registry's process/Go runtime metrics.
var Registry = prometheus.NewRegistry()
