package skipstore

import (
	"bytes"
	"sync"

	"github.com/google/btree"
)

// btreeDegree controls the branching factor of the underlying btree.BTree.
// 32 keeps node scans cache-friendly without over-fragmenting small tables.
const btreeDegree = 32

// kv is the btree.Item backing a single column family's ordered map. It is
// the only type that ever sits inside a CFTable's tree; callers of CFTable
// deal exclusively in byte slices.
type kv struct {
	key   []byte
	value []byte
}

func (a *kv) Less(than btree.Item) bool {
	return bytes.Compare(a.key, than.(*kv).key) < 0
}

// BoundKind distinguishes the three ways a range endpoint can be expressed,
// mirroring Rust's std::ops::Bound.
type BoundKind int

const (
	Unbounded BoundKind = iota
	Included
	Excluded
)

// Bound is one endpoint of a range query against a CFTable.
type Bound struct {
	Kind BoundKind
	Key  []byte
}

// UnboundedBound returns a Bound with no constraint.
func UnboundedBound() Bound { return Bound{Kind: Unbounded} }

// IncludedBound returns a Bound that includes k itself.
func IncludedBound(k []byte) Bound { return Bound{Kind: Included, Key: k} }

// ExcludedBound returns a Bound that excludes k itself.
func ExcludedBound(k []byte) Bound { return Bound{Kind: Excluded, Key: k} }

// CFTable is the ordered concurrent map backing one column family (C1). It
// wraps a github.com/google/btree.BTree with a reader-writer lock: readers
// never block each other, and a mutation only blocks other mutations and
// reads for the instant it takes to touch the tree, per spec.md's "simple
// tree guarded by a reader-writer lock is acceptable" design note.
type CFTable struct {
	mu   sync.RWMutex
	tree *btree.BTree
}

func newCFTable() *CFTable {
	return &CFTable{tree: btree.New(btreeDegree)}
}

// Get returns the value stored at key, if present.
func (t *CFTable) Get(key []byte) (value []byte, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	item := t.tree.Get(&kv{key: key})
	if item == nil {
		return nil, false
	}
	found := item.(*kv)
	return found.value, true
}

// Put inserts or overwrites key with value, returning the replaced value (if
// any) so the caller can correct its byte accounting.
func (t *CFTable) Put(key, value []byte) (oldValue []byte, hadOld bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	old := t.tree.ReplaceOrInsert(&kv{key: key, value: value})
	if old == nil {
		return nil, false
	}
	return old.(*kv).value, true
}

// Delete removes key if present, returning the removed value.
func (t *CFTable) Delete(key []byte) (oldValue []byte, hadOld bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	old := t.tree.Delete(&kv{key: key})
	if old == nil {
		return nil, false
	}
	return old.(*kv).value, true
}

// DeleteRange removes every entry with key in [begin, end) and returns the
// total bytes (key+value) removed. Matching entries observed at the moment
// of the scan are all removed; the removal across the range is not required
// to be atomic with respect to concurrent writers (spec.md §4.2, §5).
func (t *CFTable) DeleteRange(begin, end []byte) (removedBytes int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var doomed []*kv
	t.tree.AscendGreaterOrEqual(&kv{key: begin}, func(item btree.Item) bool {
		k := item.(*kv)
		if end != nil && bytes.Compare(k.key, end) >= 0 {
			return false
		}
		doomed = append(doomed, k)
		return true
	})

	for _, k := range doomed {
		t.tree.Delete(k)
		removedBytes += int64(len(k.key) + len(k.value))
	}
	return removedBytes
}

// Len returns the number of live entries.
func (t *CFTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tree.Len()
}

// LowerBound returns the first entry satisfying b: the minimum entry for
// Unbounded, the first entry with key >= b.Key for Included, the first entry
// with key > b.Key for Excluded.
func (t *CFTable) LowerBound(b Bound) (key, value []byte, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	switch b.Kind {
	case Unbounded:
		item := t.tree.Min()
		if item == nil {
			return nil, nil, false
		}
		found := item.(*kv)
		return found.key, found.value, true
	case Included:
		var found *kv
		t.tree.AscendGreaterOrEqual(&kv{key: b.Key}, func(item btree.Item) bool {
			found = item.(*kv)
			return false
		})
		if found == nil {
			return nil, nil, false
		}
		return found.key, found.value, true
	case Excluded:
		var found *kv
		t.tree.AscendGreaterOrEqual(&kv{key: b.Key}, func(item btree.Item) bool {
			k := item.(*kv)
			if bytes.Equal(k.key, b.Key) {
				return true
			}
			found = k
			return false
		})
		if found == nil {
			return nil, nil, false
		}
		return found.key, found.value, true
	default:
		return nil, nil, false
	}
}

// UpperBound returns the last entry satisfying b: the maximum entry for
// Unbounded, the last entry with key <= b.Key for Included, the last entry
// with key < b.Key for Excluded.
func (t *CFTable) UpperBound(b Bound) (key, value []byte, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	switch b.Kind {
	case Unbounded:
		item := t.tree.Max()
		if item == nil {
			return nil, nil, false
		}
		found := item.(*kv)
		return found.key, found.value, true
	case Included:
		var found *kv
		t.tree.DescendLessOrEqual(&kv{key: b.Key}, func(item btree.Item) bool {
			found = item.(*kv)
			return false
		})
		if found == nil {
			return nil, nil, false
		}
		return found.key, found.value, true
	case Excluded:
		var found *kv
		t.tree.DescendLessOrEqual(&kv{key: b.Key}, func(item btree.Item) bool {
			k := item.(*kv)
			if bytes.Equal(k.key, b.Key) {
				return true
			}
			found = k
			return false
		})
		if found == nil {
			return nil, nil, false
		}
		return found.key, found.value, true
	default:
		return nil, nil, false
	}
}

// NextAfter returns the first live entry with key strictly greater than key,
// used by Iterator.Next to re-query the table from a cached cursor key
// rather than holding a live node reference.
func (t *CFTable) NextAfter(key []byte) (nextKey, nextValue []byte, ok bool) {
	return t.LowerBound(ExcludedBound(key))
}

// PrevBefore returns the last live entry with key strictly less than key,
// used by Iterator.Prev.
func (t *CFTable) PrevBefore(key []byte) (prevKey, prevValue []byte, ok bool) {
	return t.UpperBound(ExcludedBound(key))
}
