/*
Package raftlog implements the Raft Log Adaptor (RLA): the key schema (C6)
and fetch/append/garbage-collect contract (C7) that maps consensus-layer
operations onto a skipstore.Engine.

# Key schema

	RaftStatePrefix || be64(group)            -> RaftLocalState            (RaftStateKey)
	RaftLogPrefix   || be64(group)            -> (a group's log prefix)    (RaftLogPrefixKey)
	RaftLogPrefix   || be64(group) || be64(i) -> log entry at index i      (RaftLogKey)

Indices are encoded big-endian so lexicographic byte order matches numeric
order: for a fixed group, RaftLogKey(g, i) < RaftLogKey(g, j) iff i < j. This
is what makes fetch and GC linear scans over the key range.

# Adaptor

Adaptor wraps an Engine and exposes the RLA operation set: GetRaftState/
PutRaftState, GetEntry, Append/AppendSlice, FetchEntriesTo (the small-range
point-get vs large-range scan algorithm with gap detection), GC, Clean,
and the LogBatch staging type (CutLogs, consume, consume-and-shrink).

# GroupStore

GroupStore is a thin per-group facade over Adaptor that implements
github.com/hashicorp/raft's LogStore and StableStore interfaces directly, so
a real raft.Raft instance can use skipstore as its log/stable store with no
adapter glue at the call site:

	store := raftlog.NewGroupStore(engine, groupID)
	r, err := raft.NewRaft(config, fsm, store, store, snapshotStore, transport)

See cmd/skipctl's demo-raft subcommand for a complete bootstrap example.
*/
package raftlog
