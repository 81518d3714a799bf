package raftlog

import (
	"bytes"
	"strconv"

	"github.com/cuemby/skipstore/pkg/engineerr"
	"github.com/cuemby/skipstore/pkg/log"
	"github.com/cuemby/skipstore/pkg/metrics"
	"github.com/cuemby/skipstore/pkg/skipstore"
)

// raftLogMultiGetCnt is the small/large range threshold FetchEntriesTo uses
// to choose between point-gets and a range scan (spec.md §4.7, grounded on
// RAFT_LOG_MULTI_GET_CNT in original_source/raft_engine.rs).
const raftLogMultiGetCnt = 8

// maxDeleteBatchSize bounds how large a single delete WriteBatch is allowed
// to grow during GC before it is flushed, trading batch-apply latency for
// write-batch memory (spec.md §4.7, grounded on MAX_DELETE_BATCH_SIZE in
// original_source/raft_engine.rs).
const maxDeleteBatchSize = 256 * 1024

// CacheStats reports the adaptor's entry-cache statistics. skipstore has no
// built-in entry cache, so FlushStats always returns a zero value.
type CacheStats struct {
	HitCount  uint64
	MissCount uint64
}

// Adaptor is the Raft Log Adaptor (C7): it maps Raft consensus operations
// onto an Engine (C2) through the key schema (C6). One Adaptor instance can
// serve any number of Raft groups, keyed by their group_id.
type Adaptor struct {
	engine *skipstore.Engine
	cf     string
}

// NewAdaptor returns an Adaptor storing Raft state and log entries in
// DefaultCF.
func NewAdaptor(engine *skipstore.Engine) *Adaptor {
	return NewAdaptorCF(engine, skipstore.DefaultCF)
}

// NewAdaptorCF returns an Adaptor storing Raft state and log entries in cf.
func NewAdaptorCF(engine *skipstore.Engine, cf string) *Adaptor {
	return &Adaptor{engine: engine, cf: cf}
}

// GetRaftState decodes the RaftLocalState at RaftStateKey(groupID), if any.
func (a *Adaptor) GetRaftState(groupID uint64) (*RaftLocalState, error) {
	v, ok, err := a.engine.Get(a.cf, RaftStateKey(groupID))
	if err != nil || !ok {
		return nil, err
	}
	s, err := decodeState(RaftStateKey(groupID), v)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// PutRaftState encodes and stores state at RaftStateKey(groupID).
func (a *Adaptor) PutRaftState(groupID uint64, state RaftLocalState) error {
	encoded, err := encodeState(state)
	if err != nil {
		return engineerr.NewCodecError(RaftStateKey(groupID), err)
	}
	return a.engine.Put(a.cf, RaftStateKey(groupID), encoded)
}

// GetEntry decodes the log entry at RaftLogKey(groupID, index), if any.
func (a *Adaptor) GetEntry(groupID, index uint64) (*LogEntry, error) {
	key := RaftLogKey(groupID, index)
	v, ok, err := a.engine.Get(a.cf, key)
	if err != nil || !ok {
		return nil, err
	}
	e, err := decodeEntry(key, v)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Append is append_slice under a different name; both encode each entry in
// order and put it at its log key (spec.md §4.7). Entries are expected to
// be consecutive in index; Append does not enforce this — FetchEntriesTo
// does, on read.
func (a *Adaptor) Append(groupID uint64, entries []LogEntry) (int64, error) {
	return a.AppendSlice(groupID, entries)
}

// AppendSlice encodes each entry in order and writes it via a single
// WriteBatch, returning the total bytes written.
func (a *Adaptor) AppendSlice(groupID uint64, entries []LogEntry) (int64, error) {
	batch := a.NewLogBatch(1024)
	if err := batch.AppendSlice(groupID, entries); err != nil {
		return 0, err
	}
	written, err := a.Consume(batch, false)
	if err == nil {
		metrics.RaftLogAppendTotal.WithLabelValues(groupKey(groupID)).Add(float64(len(entries)))
		log.WithGroup(groupID).Debug().Int("count", len(entries)).Int64("bytes", written).Msg("append")
	}
	return written, err
}

// FetchEntriesTo is the central read algorithm (spec.md §4.7). It appends
// decoded entries for [low, high) to out, in index order, and returns how
// many were added.
//
// Small range (high-low <= raftLogMultiGetCnt): point-gets each index; any
// miss fails with Unavailable. Large range: scans [RaftLogKey(g,low),
// RaftLogKey(g,high)); a first-entry index mismatch (gap or prior
// compaction) returns success with whatever was collected so far, possibly
// zero; subsequent entries must be strictly consecutive. Both paths stop
// early once total encoded size reaches maxSize, when maxSize is non-nil.
func (a *Adaptor) FetchEntriesTo(groupID, low, high uint64, maxSize *int, out *[]LogEntry) (int, error) {
	groupLog := log.WithGroup(groupID)
	if low >= high {
		return 0, nil
	}

	limit := -1
	if maxSize != nil {
		limit = *maxSize
	}

	if high-low <= raftLogMultiGetCnt {
		totalSize, count := 0, 0
		for i := low; i < high; i++ {
			if totalSize > 0 && limit >= 0 && totalSize >= limit {
				break
			}
			key := RaftLogKey(groupID, i)
			v, found, err := a.engine.Get(a.cf, key)
			if err != nil {
				return count, err
			}
			if !found {
				metrics.RaftLogFetchUnavailable.WithLabelValues(groupKey(groupID)).Inc()
				groupLog.Warn().Uint64("low", low).Uint64("high", high).Uint64("missing_index", i).Msg("fetch_entries_to: small range missing entry")
				return count, engineerr.ErrUnavailable
			}
			entry, err := decodeEntry(key, v)
			if err != nil {
				return count, err
			}
			*out = append(*out, entry)
			totalSize += len(v)
			count++
		}
		metrics.RaftLogFetchTotal.WithLabelValues(groupKey(groupID)).Add(float64(count))
		return count, nil
	}

	it, err := a.engine.NewIterator(a.cf, skipstore.IterOptions{LowerBound: RaftLogKey(groupID, low)})
	if err != nil {
		return 0, err
	}

	endKey := RaftLogKey(groupID, high)
	checkCompacted := true
	nextIndex := low
	totalSize, count := 0, 0

	for ok := it.SeekToFirst(); ok && bytes.Compare(it.Key(), endKey) < 0; ok = it.Next() {
		entry, decErr := decodeEntry(it.Key(), it.Value())
		if decErr != nil {
			return count, decErr
		}

		if checkCompacted {
			if entry.Index != low {
				groupLog.Warn().Uint64("low", low).Uint64("first_index", entry.Index).Msg("fetch_entries_to: large range gap or compaction")
				metrics.RaftLogFetchTotal.WithLabelValues(groupKey(groupID)).Add(float64(count))
				return count, nil
			}
			checkCompacted = false
		} else if entry.Index != nextIndex {
			groupLog.Error().Uint64("expected_index", nextIndex).Uint64("got_index", entry.Index).Msg("fetch_entries_to: non-consecutive raft log index")
			return count, engineerr.NewEngineError("fetch_entries_to: non-consecutive raft log index")
		}
		nextIndex++

		*out = append(*out, entry)
		totalSize += len(it.Value())
		count++

		if limit >= 0 && totalSize >= limit {
			break
		}
	}

	metrics.RaftLogFetchTotal.WithLabelValues(groupKey(groupID)).Add(float64(count))

	if count == int(high-low) || (limit >= 0 && totalSize >= limit) {
		return count, nil
	}

	metrics.RaftLogFetchUnavailable.WithLabelValues(groupKey(groupID)).Inc()
	return count, engineerr.ErrUnavailable
}

// GC deletes log entries for groupID in [from, to), flushing the delete
// batch whenever it grows past maxDeleteBatchSize to bound write-batch
// memory and latency. Returns the number of indices removed.
func (a *Adaptor) GC(groupID, from, to uint64) (int, error) {
	if from >= to {
		return 0, nil
	}

	if from == 0 {
		it, err := a.engine.NewIterator(a.cf, skipstore.IterOptions{LowerBound: RaftLogKey(groupID, 0)})
		if err != nil {
			return 0, err
		}
		if !it.SeekToFirst() || !bytes.HasPrefix(it.Key(), RaftLogPrefixKey(groupID)) {
			return 0, nil
		}
		idx, err := RaftLogIndex(it.Key())
		if err != nil {
			return 0, err
		}
		from = idx
	}

	batch := a.NewLogBatch(maxDeleteBatchSize)
	for idx := from; idx < to; idx++ {
		batch.wb.Delete(a.cf, RaftLogKey(groupID, idx))
		if batch.DataSize() >= maxDeleteBatchSize {
			if _, err := a.Consume(batch, false); err != nil {
				return 0, err
			}
		}
	}
	if !batch.IsEmpty() {
		if _, err := a.Consume(batch, false); err != nil {
			return 0, err
		}
	}

	removed := int(to - from)
	metrics.RaftLogGCEntries.WithLabelValues(groupKey(groupID)).Add(float64(removed))
	log.WithGroup(groupID).Debug().Uint64("from", from).Uint64("to", to).Int("removed", removed).Msg("gc")
	return removed, nil
}

// Clean stages (into batch, not committed here) a delete of the group's
// RaftLocalState and a delete of every log entry from the first one
// observed through state.LastIndex.
func (a *Adaptor) Clean(groupID uint64, state RaftLocalState, batch *LogBatch) error {
	batch.wb.Delete(a.cf, RaftStateKey(groupID))

	it, err := a.engine.NewIterator(a.cf, skipstore.IterOptions{LowerBound: RaftLogKey(groupID, 0)})
	if err != nil {
		return err
	}
	if !it.SeekToFirst() || !bytes.HasPrefix(it.Key(), RaftLogPrefixKey(groupID)) {
		return nil
	}
	firstIndex, err := RaftLogIndex(it.Key())
	if err != nil {
		return nil
	}
	for idx := firstIndex; idx <= state.LastIndex; idx++ {
		batch.wb.Delete(a.cf, RaftLogKey(groupID, idx))
	}
	return nil
}

// NewLogBatch returns a new LogBatch (an Adaptor-aware WriteBatch wrapper)
// with room reserved for capacity staged operations (an operation count,
// not a byte count; see skipstore.NewWriteBatchWithCapacity).
func (a *Adaptor) NewLogBatch(capacity int) *LogBatch {
	return &LogBatch{wb: skipstore.NewWriteBatchWithCapacity(capacity), cf: a.cf}
}

// Consume applies batch with the given sync option, returns bytes written,
// and clears the batch for reuse.
func (a *Adaptor) Consume(batch *LogBatch, sync bool) (int64, error) {
	written, err := a.engine.WriteOpt(batch.wb, skipstore.WriteOptions{Sync: sync})
	batch.wb.Clear()
	return written, err
}

// ConsumeAndShrink consumes batch, and if its data size exceeded maxCap,
// replaces it with a fresh batch pre-sized to shrinkTo.
func (a *Adaptor) ConsumeAndShrink(batch *LogBatch, sync bool, maxCap, shrinkTo int) (int64, error) {
	dataSize := batch.DataSize()
	written, err := a.Consume(batch, sync)
	if err != nil {
		return written, err
	}
	if dataSize > maxCap {
		*batch = *a.NewLogBatch(shrinkTo)
	}
	return written, nil
}

// HasBuiltinEntryCache always reports false: skipstore keeps no entry cache
// of its own.
func (a *Adaptor) HasBuiltinEntryCache() bool {
	return false
}

// FlushStats always returns a zero-valued CacheStats.
func (a *Adaptor) FlushStats() CacheStats {
	return CacheStats{}
}

// LogBatch is a WriteBatch specialized with Raft-group-aware staging
// helpers (append, cut_logs, put_raft_state) on top of skipstore.WriteBatch.
type LogBatch struct {
	wb *skipstore.WriteBatch
	cf string
}

// IsEmpty reports whether the batch has zero staged operations.
func (lb *LogBatch) IsEmpty() bool {
	return lb.wb.IsEmpty()
}

// DataSize returns the running size counter in bytes.
func (lb *LogBatch) DataSize() int {
	return lb.wb.DataSize()
}

// Append stages entries (order preserved) for a later Consume.
func (lb *LogBatch) Append(groupID uint64, entries []LogEntry) error {
	return lb.AppendSlice(groupID, entries)
}

// AppendSlice encodes each entry and stages a Put at its log key.
func (lb *LogBatch) AppendSlice(groupID uint64, entries []LogEntry) error {
	for _, e := range entries {
		key := RaftLogKey(groupID, e.Index)
		encoded, err := encodeEntry(e)
		if err != nil {
			return engineerr.NewCodecError(key, err)
		}
		lb.wb.Put(lb.cf, key, encoded)
	}
	return nil
}

// CutLogs stages deletes for every index in [from, to).
func (lb *LogBatch) CutLogs(groupID, from, to uint64) {
	for idx := from; idx < to; idx++ {
		lb.wb.Delete(lb.cf, RaftLogKey(groupID, idx))
	}
}

// PutRaftState stages a Put of the encoded state at RaftStateKey(groupID).
func (lb *LogBatch) PutRaftState(groupID uint64, state RaftLocalState) error {
	encoded, err := encodeState(state)
	if err != nil {
		return engineerr.NewCodecError(RaftStateKey(groupID), err)
	}
	lb.wb.Put(lb.cf, RaftStateKey(groupID), encoded)
	return nil
}

func groupKey(groupID uint64) string {
	return strconv.FormatUint(groupID, 10)
}
