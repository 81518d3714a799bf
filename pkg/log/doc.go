/*
Package log provides structured logging for skipstore and raftlog using
zerolog.

The global Logger is initialized once via Init and is safe for concurrent
use from every package in this module. Component loggers attach a single
context field (component, group_id, or cf) so engine and adaptor
operations are traceable per column family or per Raft group without
threading a logger through every call.

Usage:

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})

	cfLog := log.WithCF("default")
	cfLog.Debug().Str("key", string(k)).Msg("put")

	groupLog := log.WithGroup(groupID)
	groupLog.Warn().Uint64("low", low).Uint64("high", high).Msg("fetch gap detected")

skipstore and raftlog log at Debug for per-operation tracing (put/get/
delete/seek) and at Warn/Error for adaptor-level anomalies such as a
fetch_entries_to gap or a non-consecutive index seen during a fetch. Neither
package logs at Info or above on the hot path, so Info-level production
logging stays low-volume.
*/
package log
