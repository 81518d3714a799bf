package skipstore

// CompactExt groups the compaction-family operations spec.md §4.2 requires
// every KvEngine embedder to expose. skipstore has no background
// compaction — it is an in-memory engine — so every operation is an
// unconditional success, which is the defined contract, not a stub.
type CompactExt struct {
	engine *Engine
}

// Compact returns the CompactExt view over e.
func (e *Engine) Compact() *CompactExt {
	return &CompactExt{engine: e}
}

// CompactRange always succeeds; exclusiveManual has no meaning for an
// in-memory backend and is accepted only so callers written against a real
// disk engine compile unchanged (spec.md §9 open question).
func (c *CompactExt) CompactRange(cf string, start, end []byte, exclusiveManual bool) error {
	return nil
}

// CompactFilesInRange always succeeds; there are no on-disk files to name.
func (c *CompactExt) CompactFilesInRange(start, end []byte) error {
	return nil
}

// AutoCompactionsDisabled always reports true: there is no background
// compaction to disable.
func (c *CompactExt) AutoCompactionsDisabled() bool {
	return true
}
