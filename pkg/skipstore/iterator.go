package skipstore

import "bytes"

// IterOptions bounds an Iterator. Either bound may be absent (unbounded).
// When present, both bounds are inclusive (spec.md §6, §9: the source uses
// Included for its upper bound; this is documented here since callers used
// to an exclusive-upper-bound convention elsewhere need to know it differs).
type IterOptions struct {
	LowerBound []byte
	UpperBound []byte
}

func (o IterOptions) lower() Bound {
	if o.LowerBound == nil {
		return UnboundedBound()
	}
	return IncludedBound(o.LowerBound)
}

func (o IterOptions) upper() Bound {
	if o.UpperBound == nil {
		return UnboundedBound()
	}
	return IncludedBound(o.UpperBound)
}

// Iterator is a bounded, bi-directional cursor over one column family
// (spec.md §4.4). Its state machine is exactly Invalid or Valid@k.
//
// Cursor stability: the iterator caches the current entry's key and value as
// byte copies rather than holding a live tree node reference. Next/Prev
// re-query the table by the cached key (CFTable.NextAfter/PrevBefore), so a
// cursor positioned at an entry remains valid to read even if that entry is
// concurrently removed — key() and value() keep returning the cached bytes
// until the next step, matching spec.md §4.4's contract without the
// pointer-lifetime tricks the original source relied on (spec.md §9).
type Iterator struct {
	table *CFTable
	lower Bound
	upper Bound

	valid bool
	key   []byte
	value []byte
}

func newIterator(table *CFTable, opts IterOptions) *Iterator {
	return &Iterator{
		table: table,
		lower: opts.lower(),
		upper: opts.upper(),
	}
}

// withinUpper reports whether key satisfies the iterator's upper bound.
func (it *Iterator) withinUpper(key []byte) bool {
	switch it.upper.Kind {
	case Unbounded:
		return true
	case Included:
		return bytes.Compare(key, it.upper.Key) <= 0
	case Excluded:
		return bytes.Compare(key, it.upper.Key) < 0
	default:
		return false
	}
}

func (it *Iterator) withinLower(key []byte) bool {
	switch it.lower.Kind {
	case Unbounded:
		return true
	case Included:
		return bytes.Compare(key, it.lower.Key) >= 0
	case Excluded:
		return bytes.Compare(key, it.lower.Key) > 0
	default:
		return false
	}
}

func (it *Iterator) settle(key, value []byte, ok bool) bool {
	if !ok || !it.withinUpper(key) || !it.withinLower(key) {
		it.valid = false
		it.key = nil
		it.value = nil
		return false
	}
	it.valid = true
	it.key = bytes.Clone(key)
	it.value = bytes.Clone(value)
	return true
}

// SeekToFirst positions the iterator at the first entry >= the lower bound.
func (it *Iterator) SeekToFirst() bool {
	key, value, ok := it.table.LowerBound(it.lower)
	return it.settle(key, value, ok)
}

// SeekToLast positions the iterator at the last entry <= the upper bound.
func (it *Iterator) SeekToLast() bool {
	key, value, ok := it.table.UpperBound(it.upper)
	return it.settle(key, value, ok)
}

// Seek positions the iterator at the first entry with key >= target that is
// still within [lower, upper]. Computed directly via CFTable.LowerBound
// rather than by iterative directional walking, which avoids the seek-
// direction bug spec.md §9 identifies in the original source.
func (it *Iterator) Seek(target []byte) bool {
	bound := target
	if it.lower.Kind == Included && bytes.Compare(it.lower.Key, bound) > 0 {
		bound = it.lower.Key
	}
	key, value, ok := it.table.LowerBound(IncludedBound(bound))
	return it.settle(key, value, ok)
}

// SeekForPrev positions the iterator at the last entry with key <= target
// that is still within [lower, upper].
func (it *Iterator) SeekForPrev(target []byte) bool {
	bound := target
	if it.upper.Kind == Included && bytes.Compare(it.upper.Key, bound) < 0 {
		bound = it.upper.Key
	}
	key, value, ok := it.table.UpperBound(IncludedBound(bound))
	return it.settle(key, value, ok)
}

// Next advances to the next entry. Valid only to call while Valid() is true.
func (it *Iterator) Next() bool {
	if !it.valid {
		return false
	}
	key, value, ok := it.table.NextAfter(it.key)
	return it.settle(key, value, ok)
}

// Prev advances to the previous entry. Valid only to call while Valid() is
// true.
func (it *Iterator) Prev() bool {
	if !it.valid {
		return false
	}
	key, value, ok := it.table.PrevBefore(it.key)
	return it.settle(key, value, ok)
}

// Key returns the current entry's key, or an empty slice if Invalid.
func (it *Iterator) Key() []byte {
	if !it.valid {
		return []byte{}
	}
	return it.key
}

// Value returns the current entry's value, or an empty slice if Invalid.
func (it *Iterator) Value() []byte {
	if !it.valid {
		return []byte{}
	}
	return it.value
}

// Valid reports whether the iterator is positioned on an entry.
func (it *Iterator) Valid() bool {
	return it.valid
}
