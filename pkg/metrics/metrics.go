package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Engine (C1/C2) metrics

	EngineTotalBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skipstore_total_bytes",
			Help: "Sum of |key|+|value| over all live entries across all column families",
		},
	)

	EngineOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skipstore_ops_total",
			Help: "Total number of engine operations by op and column family",
		},
		[]string{"op", "cf"},
	)

	EngineCFCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skipstore_column_families",
			Help: "Number of registered column families",
		},
	)

	// Write batch (C5) metrics

	BatchApplyDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skipstore_batch_apply_duration_seconds",
			Help:    "Time taken to apply a write batch to the engine",
			Buckets: prometheus.DefBuckets,
		},
	)

	BatchOpsApplied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skipstore_batch_ops_applied_total",
			Help: "Total number of staged operations applied across all write batches",
		},
	)

	// Raft log adaptor (C7) metrics

	RaftLogAppendTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raftlog_append_entries_total",
			Help: "Total number of Raft log entries appended, by group",
		},
		[]string{"group"},
	)

	RaftLogFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raftlog_fetch_entries_total",
			Help: "Total number of Raft log entries returned by fetch_entries_to, by group",
		},
		[]string{"group"},
	)

	RaftLogFetchUnavailable = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raftlog_fetch_unavailable_total",
			Help: "Total number of fetch_entries_to calls that returned Unavailable, by group",
		},
		[]string{"group"},
	)

	RaftLogGCEntries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raftlog_gc_entries_total",
			Help: "Total number of Raft log entries removed by gc, by group",
		},
		[]string{"group"},
	)
)

func init() {
	prometheus.MustRegister(EngineTotalBytes)
	prometheus.MustRegister(EngineOpsTotal)
	prometheus.MustRegister(EngineCFCount)
	prometheus.MustRegister(BatchApplyDuration)
	prometheus.MustRegister(BatchOpsApplied)
	prometheus.MustRegister(RaftLogAppendTotal)
	prometheus.MustRegister(RaftLogFetchTotal)
	prometheus.MustRegister(RaftLogFetchUnavailable)
	prometheus.MustRegister(RaftLogGCEntries)
}

// Handler returns the Prometheus HTTP handler, mounted by cmd/skipctl at
// /metrics when run with --metrics-addr.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
