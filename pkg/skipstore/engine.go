package skipstore

import (
	"sync"
	"sync/atomic"

	"github.com/cuemby/skipstore/pkg/engineerr"
	"github.com/cuemby/skipstore/pkg/log"
	"github.com/cuemby/skipstore/pkg/metrics"
)

// DefaultCF is the column family every Engine is guaranteed to carry.
const DefaultCF = "default"

// handleSeq is the process-wide monotonic counter CF handles draw their
// sequence number from (spec.md §3: "a process-wide monotonically-allocated
// sequence number used purely to produce a stable, unique identity across
// rebuilds"). It is package-level, not per-Engine, so identities stay unique
// even across multiple Engines in the same process.
var handleSeq atomic.Int64

// CFHandle is the opaque token identifying a registered column family.
type CFHandle struct {
	name string
	seq  int64
}

// Name returns the column family's user-facing name.
func (h *CFHandle) Name() string { return h.name }

// Seq returns the handle's process-wide allocation sequence number.
func (h *CFHandle) Seq() int64 { return h.seq }

// ReadOptions carries disk-engine-facing read hints. FillCache is accepted
// and ignored; it exists only so callers written against a real disk engine
// compile unchanged against skipstore.
type ReadOptions struct {
	FillCache bool
}

// WriteOptions carries disk-engine-facing write hints. Sync is accepted and
// ignored for the same reason as ReadOptions.FillCache.
type WriteOptions struct {
	Sync bool
}

// Builder constructs an Engine from a fixed set of column family names.
type Builder struct {
	cfNames []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithCF registers an additional column family name to create.
func (b *Builder) WithCF(name string) *Builder {
	b.cfNames = append(b.cfNames, name)
	return b
}

// Build constructs the Engine. If no CF names were registered, a single
// DefaultCF is created, per spec.md §6.
func (b *Builder) Build() *Engine {
	names := b.cfNames
	if len(names) == 0 {
		names = []string{DefaultCF}
	}

	e := &Engine{
		cfByName: make(map[string]*CFHandle, len(names)),
		tables:   make(map[*CFHandle]*CFTable, len(names)),
	}
	for _, name := range names {
		e.registerCF(name)
	}
	metrics.EngineCFCount.Set(float64(len(e.cfByName)))
	return e
}

// Engine is the tuple (name -> handle, handle -> table, total byte counter)
// described in spec.md §3. It is safe for concurrent use by many goroutines
// and is shared by reference: callers pass around the *Engine, never a copy.
type Engine struct {
	mu         sync.RWMutex
	cfByName   map[string]*CFHandle
	tables     map[*CFHandle]*CFTable
	totalBytes atomic.Int64
}

func (e *Engine) registerCF(name string) *CFHandle {
	e.mu.Lock()
	defer e.mu.Unlock()

	if h, ok := e.cfByName[name]; ok {
		return h
	}
	h := &CFHandle{name: name, seq: handleSeq.Add(1)}
	e.cfByName[name] = h
	e.tables[h] = newCFTable()
	return h
}

// cfTable resolves a CF name to its backing table, failing with a CFName
// error if the column family was never registered.
func (e *Engine) cfTable(cf string) (*CFTable, error) {
	e.mu.RLock()
	h, ok := e.cfByName[cf]
	if !ok {
		e.mu.RUnlock()
		return nil, engineerr.NewCFNameError(cf)
	}
	t, ok := e.tables[h]
	e.mu.RUnlock()
	if !ok {
		return nil, engineerr.NewEngineError("CF handle " + cf + " has no backing table")
	}
	return t, nil
}

// TotalBytes returns the current value of the shared byte accountant. It is
// a monotone estimate per spec.md §5: its value at any instant may lag the
// exact content sum by in-flight operations.
func (e *Engine) TotalBytes() int64 {
	return e.totalBytes.Load()
}

// Get returns the value stored at key in cf, if present.
func (e *Engine) Get(cf string, key []byte) ([]byte, bool, error) {
	t, err := e.cfTable(cf)
	if err != nil {
		return nil, false, err
	}
	metrics.EngineOpsTotal.WithLabelValues("get", cf).Inc()
	v, ok := t.Get(key)
	log.WithCF(cf).Debug().Bytes("key", key).Bool("hit", ok).Msg("get")
	return v, ok, nil
}

// GetDefault is Get against DefaultCF.
func (e *Engine) GetDefault(key []byte) ([]byte, bool, error) {
	return e.Get(DefaultCF, key)
}

// Put inserts or overwrites key in cf, correcting total_bytes for the
// replaced value's length on overwrite (spec.md §4.2, §9: the naive
// add-only scheme is an identified bug fixed here).
func (e *Engine) Put(cf string, key, value []byte) error {
	t, err := e.cfTable(cf)
	if err != nil {
		return err
	}
	old, hadOld := t.Put(key, value)
	delta := int64(len(value))
	if hadOld {
		delta -= int64(len(old))
	} else {
		delta += int64(len(key))
	}
	e.totalBytes.Add(delta)
	metrics.EngineOpsTotal.WithLabelValues("put", cf).Inc()
	log.WithCF(cf).Debug().Bytes("key", key).Int("value_len", len(value)).Msg("put")
	return nil
}

// PutDefault is Put against DefaultCF.
func (e *Engine) PutDefault(key, value []byte) error {
	return e.Put(DefaultCF, key, value)
}

// Delete removes key from cf if present. Deleting an absent key succeeds
// with no accounting change.
func (e *Engine) Delete(cf string, key []byte) error {
	t, err := e.cfTable(cf)
	if err != nil {
		return err
	}
	old, hadOld := t.Delete(key)
	if hadOld {
		e.totalBytes.Add(-int64(len(key) + len(old)))
	}
	metrics.EngineOpsTotal.WithLabelValues("delete", cf).Inc()
	log.WithCF(cf).Debug().Bytes("key", key).Bool("hit", hadOld).Msg("delete")
	return nil
}

// DeleteDefault is Delete against DefaultCF.
func (e *Engine) DeleteDefault(key []byte) error {
	return e.Delete(DefaultCF, key)
}

// DeleteRange removes every entry in cf with key in [begin, end).
func (e *Engine) DeleteRange(cf string, begin, end []byte) error {
	t, err := e.cfTable(cf)
	if err != nil {
		return err
	}
	removed := t.DeleteRange(begin, end)
	if removed != 0 {
		e.totalBytes.Add(-removed)
	}
	metrics.EngineOpsTotal.WithLabelValues("delete_range", cf).Inc()
	log.WithCF(cf).Debug().Bytes("begin", begin).Bytes("end", end).Int64("removed_bytes", removed).Msg("delete_range")
	return nil
}

// Sync is a no-op; it exists to satisfy the durability-facing interface a
// real disk engine would implement (spec.md §4.2).
func (e *Engine) Sync() error {
	return nil
}

// Snapshot constructs a Snapshot in O(1) (spec.md §4.2, §4.3).
func (e *Engine) Snapshot() *Snapshot {
	return &Snapshot{engine: e}
}

// NewIterator constructs an Iterator over cf bounded by opts (spec.md §4.4).
func (e *Engine) NewIterator(cf string, opts IterOptions) (*Iterator, error) {
	t, err := e.cfTable(cf)
	if err != nil {
		return nil, err
	}
	return newIterator(t, opts), nil
}

// Write applies batch's staged operations in order with default
// WriteOptions. It returns the number of bytes written.
func (e *Engine) Write(batch *WriteBatch) (int64, error) {
	return e.WriteOpt(batch, WriteOptions{})
}

// WriteOpt applies batch's staged operations in order (spec.md §4.5). Ops
// are applied sequentially; readers may observe intermediate states, but
// the post-batch state is always equal to sequential application of every
// staged op, including a Put shadowed by a later Delete of the same key.
func (e *Engine) WriteOpt(batch *WriteBatch, opts WriteOptions) (int64, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.BatchApplyDuration)

	var written int64
	for _, op := range batch.ops {
		switch op.kind {
		case opPut:
			if err := e.Put(op.cf, op.key, op.value); err != nil {
				return written, err
			}
			written += int64(len(op.key) + len(op.value))
		case opDelete:
			if err := e.Delete(op.cf, op.key); err != nil {
				return written, err
			}
		case opDeleteRange:
			if err := e.DeleteRange(op.cf, op.key, op.value); err != nil {
				return written, err
			}
		}
	}
	metrics.BatchOpsApplied.Add(float64(len(batch.ops)))
	log.WithComponent("skipstore").Debug().Str("batch_id", batch.ID.String()).Int("ops", len(batch.ops)).Msg("batch applied")
	return written, nil
}
