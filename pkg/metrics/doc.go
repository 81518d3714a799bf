/*
Package metrics provides Prometheus metrics collection and exposition for
skipstore and raftlog, plus the small liveness/readiness registry cmd/skipctl
mounts at /health, /ready, and /live.

# Metrics catalog

Engine (C1/C2):

	skipstore_total_bytes                 Gauge   Registered for Σ|key|+|value|; skipstore does not set it (Engine.TotalBytes holds the count)
	skipstore_ops_total{op,cf}             Counter Operations by op (get/put/delete/delete_range) and column family
	skipstore_column_families              Gauge   Number of registered column families

Write batch (C5):

	skipstore_batch_apply_duration_seconds Histogram Time to apply a write batch
	skipstore_batch_ops_applied_total      Counter   Staged operations applied across all batches

Raft log adaptor (C7):

	raftlog_append_entries_total{group}     Counter Entries appended, by group
	raftlog_fetch_entries_total{group}      Counter Entries returned by fetch_entries_to, by group
	raftlog_fetch_unavailable_total{group}  Counter fetch_entries_to calls that returned Unavailable, by group
	raftlog_gc_entries_total{group}         Counter Entries removed by gc, by group

# Usage

	timer := metrics.NewTimer()
	// ... perform operation ...
	timer.ObserveDuration(metrics.BatchApplyDuration)

	http.Handle("/metrics", metrics.Handler())
	http.Handle("/health", metrics.HealthHandler())
	http.ListenAndServe(":9090", nil)

# Component registry

RegisterComponent/UpdateComponent track named components ("engine", "raft")
for the /health and /ready endpoints. cmd/skipctl registers "engine" when
--metrics-addr starts the metrics server and "raft" once demo-raft's cluster
elects a leader; GetReadiness reports not_ready until both are registered
healthy.
*/
package metrics
