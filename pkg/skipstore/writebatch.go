package skipstore

import "github.com/google/uuid"

type opKind int

const (
	opPut opKind = iota
	opDelete
	opDeleteRange
)

// batchOp is one staged mutation. For opDeleteRange, key/value hold begin/end
// respectively.
type batchOp struct {
	kind  opKind
	cf    string
	key   []byte
	value []byte
}

// encodedSize is the byte contribution this op makes to a WriteBatch's
// data_size, matching spec.md §3's "sum of encoded sizes of its staged
// operations".
func (op batchOp) encodedSize() int {
	return len(op.cf) + len(op.key) + len(op.value)
}

// WriteBatch is the staging buffer described in spec.md §4.5: a linear,
// ordered sequence of Put/Delete/DeleteRange operations applied in order
// against an Engine via Engine.Write/WriteOpt. ID tags each batch with a
// UUID used only for log/metric correlation; it carries no semantic weight
// in the data model.
type WriteBatch struct {
	ID       uuid.UUID
	ops      []batchOp
	dataSize int
}

// NewWriteBatch returns an empty WriteBatch.
func NewWriteBatch() *WriteBatch {
	return NewWriteBatchWithCapacity(0)
}

// NewWriteBatchWithCapacity returns an empty WriteBatch whose staging slice
// is pre-reserved for n operations. n counts staged operations, not bytes;
// no byte buffer is reserved.
func NewWriteBatchWithCapacity(n int) *WriteBatch {
	return &WriteBatch{
		ID:  uuid.New(),
		ops: make([]batchOp, 0, n),
	}
}

// Put stages a Put(cf, key, value).
func (b *WriteBatch) Put(cf string, key, value []byte) {
	op := batchOp{kind: opPut, cf: cf, key: key, value: value}
	b.ops = append(b.ops, op)
	b.dataSize += op.encodedSize()
}

// PutDefault stages a Put against DefaultCF.
func (b *WriteBatch) PutDefault(key, value []byte) {
	b.Put(DefaultCF, key, value)
}

// Delete stages a Delete(cf, key).
func (b *WriteBatch) Delete(cf string, key []byte) {
	op := batchOp{kind: opDelete, cf: cf, key: key}
	b.ops = append(b.ops, op)
	b.dataSize += op.encodedSize()
}

// DeleteDefault stages a Delete against DefaultCF.
func (b *WriteBatch) DeleteDefault(key []byte) {
	b.Delete(DefaultCF, key)
}

// DeleteRange stages a DeleteRange(cf, begin, end).
func (b *WriteBatch) DeleteRange(cf string, begin, end []byte) {
	op := batchOp{kind: opDeleteRange, cf: cf, key: begin, value: end}
	b.ops = append(b.ops, op)
	b.dataSize += op.encodedSize()
}

// Clear discards every staged operation and resets data_size to zero. The
// batch keeps its identity (ID) and underlying capacity.
func (b *WriteBatch) Clear() {
	b.ops = b.ops[:0]
	b.dataSize = 0
}

// IsEmpty reports whether the batch has zero staged operations.
func (b *WriteBatch) IsEmpty() bool {
	return len(b.ops) == 0
}

// DataSize returns the running size counter in bytes.
func (b *WriteBatch) DataSize() int {
	return b.dataSize
}

// Len returns the number of staged operations.
func (b *WriteBatch) Len() int {
	return len(b.ops)
}
