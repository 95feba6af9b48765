package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	operationReply   = "reply"
	operationExtract = "extract"

	outcomeSuccess  = "success"
	outcomeFailure  = "failure"
	outcomeDegraded = "degraded"
)

var (
	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "legal_assistant",
		Name:      "provider_requests_total",
		Help:      "Provider attempts by provider, operation and outcome.",
	}, []string{"provider", "operation", "outcome"})

	providerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "legal_assistant",
		Name:      "provider_request_duration_seconds",
		Help:      "Latency of a single provider attempt.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15},
	}, []string{"provider", "operation"})
)
