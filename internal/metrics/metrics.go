// Package metrics defines and registers the client's Prometheus metrics.
// It is the single source of truth for metric names, labels, and help
// strings; the gateway and stores import it rather than defining their own.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventclient"

// RequestsTotal counts outbound API requests.
// Labels:
//   - endpoint: logical endpoint name (e.g. "events.create"), not the raw
//     path, so per-event IDs don't explode cardinality
//   - outcome: "ok" or "error"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of outbound API requests, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// RequestDuration measures end-to-end latency of outbound API requests.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of outbound API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// AuthExpirationsTotal counts 401 responses that triggered a session
// teardown. Concurrent 401s on the same session count once.
var AuthExpirationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_expirations_total",
		Help:      "Total number of auth-expired signals emitted.",
	},
)

// ExportsTotal counts registration spreadsheet downloads.
// Label:
//   - outcome: "ok" or "error"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of registration export downloads.",
	},
	[]string{"outcome"},
)
