// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LedgerEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_ledger_enqueued_total",
		Help: "Change records appended to the ledger",
	}, []string{"entity_type"})

	LedgerEnqueueFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_ledger_enqueue_failures_total",
		Help: "Ledger appends that failed",
	})

	LedgerResets = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_ledger_resets_total",
		Help: "Ledger reset attempts by result",
	}, []string{"result"})

	WebhookDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_webhook_deliveries_total",
		Help: "Webhook delivery attempts by result",
	}, []string{"result"})

	WebhookDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridge_webhook_duration_seconds",
		Help:    "Duration of webhook POST requests",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	WebhookDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_webhook_dropped_total",
		Help: "Notifications dropped because the dispatch queue was full",
	})

	CaptureFaults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_capture_faults_total",
		Help: "Errors and panics contained by change capture",
	}, []string{"entity_type"})

	CaptureSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_capture_skipped_total",
		Help: "Host events not captured, by reason",
	}, []string{"reason"})

	IngestMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_ingest_messages_total",
		Help: "Host event messages received, by source and result",
	}, []string{"source", "result"})

	FeedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bridge_feed_subscribers",
		Help: "Connected change feed subscribers",
	})

	FeedDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_feed_dropped_total",
		Help: "Feed notifications dropped for slow subscribers",
	})
)

// Webhook delivery results
const (
	ResultSuccess    = "success"
	ResultFailure    = "failure"
	ResultNoEndpoint = "no_endpoint"
	ResultEncode     = "encode_error"
)
