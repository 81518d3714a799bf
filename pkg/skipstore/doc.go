/*
Package skipstore implements the column-family skiplist engine (CFSE): an
in-memory, ordered, concurrent key-value store used as a pluggable storage
backend beneath a Multi-Raft consensus layer.

# Architecture

	┌───────────────────────── ENGINE ─────────────────────────┐
	│                                                            │
	│  name -> *CFHandle         handle -> *CFTable              │
	│  ┌────────────┐           ┌──────────────────────────┐   │
	│  │ "default"  │──────────▶│ btree.BTree + RWMutex    │   │
	│  │ "raft"     │──────────▶│ btree.BTree + RWMutex    │   │
	│  └────────────┘           └──────────────────────────┘   │
	│                                                            │
	│  totalBytes atomic.Int64 (Σ |k|+|v| over all live entries) │
	└────────────────────────────────────────────────────────────┘

Each column family is an independent ordered map (CFTable) backed by a
github.com/google/btree tree guarded by a sync.RWMutex. Readers never block
each other; a mutation holds the lock only for the instant it touches the
tree.

# Core components

Engine (C2): holds the CF name/handle/table maps and the shared byte
counter; exposes Get/Put/Delete/DeleteRange/Snapshot/Sync/NewIterator and
the batched-write path (Write/WriteOpt).

Snapshot (C3): a thin reference into the Engine offering the same read
surface. It does not freeze the underlying tables — callers needing
point-in-time isolation build it above this engine, not within it.

Iterator (C4): a bounded, bidirectional cursor with an explicit
Invalid/Valid@k state machine. It caches its current key/value as byte
copies rather than a live tree node, so a cursor stays readable even if its
entry is concurrently deleted.

WriteBatch (C5): an ordered list of staged Put/Delete/DeleteRange
operations, applied to the Engine in order by Engine.Write/WriteOpt.

# Usage

	eng := skipstore.NewBuilder().WithCF("raft").Build()

	if err := eng.PutDefault([]byte("k"), []byte("v")); err != nil {
		log.Fatal(err)
	}
	v, ok, err := eng.GetDefault([]byte("k"))

	batch := skipstore.NewWriteBatch()
	batch.Put("raft", []byte("a"), []byte("1"))
	batch.Delete("raft", []byte("b"))
	if _, err := eng.Write(batch); err != nil {
		log.Fatal(err)
	}

	it, err := eng.NewIterator("raft", skipstore.IterOptions{
		LowerBound: []byte("a"),
		UpperBound: []byte("z"),
	})
	for ok := it.SeekToFirst(); ok; ok = it.Next() {
		use(it.Key(), it.Value())
	}

# Non-goals

No on-disk representation, no crash recovery, no background compaction —
CompactExt's operations are unconditional no-ops. See pkg/raftlog for the
Raft log adaptor built on top of this package.
*/
package skipstore
