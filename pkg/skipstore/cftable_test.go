package skipstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCFTable_PutGetDelete(t *testing.T) {
	tb := newCFTable()

	_, ok := tb.Get([]byte("k"))
	assert.False(t, ok)

	old, hadOld := tb.Put([]byte("k"), []byte("v1"))
	assert.False(t, hadOld)
	assert.Nil(t, old)

	old, hadOld = tb.Put([]byte("k"), []byte("v2"))
	assert.True(t, hadOld)
	assert.Equal(t, []byte("v1"), old)

	v, ok := tb.Get([]byte("k"))
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), v)

	old, hadOld = tb.Delete([]byte("k"))
	assert.True(t, hadOld)
	assert.Equal(t, []byte("v2"), old)

	_, ok = tb.Get([]byte("k"))
	assert.False(t, ok)
}

func TestCFTable_DeleteRange(t *testing.T) {
	tb := newCFTable()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		tb.Put([]byte(k), []byte(k))
	}

	removed := tb.DeleteRange([]byte("b"), []byte("d"))
	assert.EqualValues(t, 2*2, removed) // "b","c" each contribute |k|+|v| = 2

	for _, k := range []string{"a", "d", "e"} {
		_, ok := tb.Get([]byte(k))
		assert.True(t, ok, k)
	}
	for _, k := range []string{"b", "c"} {
		_, ok := tb.Get([]byte(k))
		assert.False(t, ok, k)
	}
}

func TestCFTable_LowerBoundUpperBound(t *testing.T) {
	tb := newCFTable()
	for _, k := range []string{"a", "c", "e"} {
		tb.Put([]byte(k), []byte(k))
	}

	k, _, ok := tb.LowerBound(UnboundedBound())
	require.True(t, ok)
	assert.Equal(t, []byte("a"), k)

	k, _, ok = tb.LowerBound(IncludedBound([]byte("b")))
	require.True(t, ok)
	assert.Equal(t, []byte("c"), k)

	k, _, ok = tb.LowerBound(IncludedBound([]byte("c")))
	require.True(t, ok)
	assert.Equal(t, []byte("c"), k)

	k, _, ok = tb.LowerBound(ExcludedBound([]byte("c")))
	require.True(t, ok)
	assert.Equal(t, []byte("e"), k)

	_, _, ok = tb.LowerBound(IncludedBound([]byte("f")))
	assert.False(t, ok)

	k, _, ok = tb.UpperBound(UnboundedBound())
	require.True(t, ok)
	assert.Equal(t, []byte("e"), k)

	k, _, ok = tb.UpperBound(IncludedBound([]byte("d")))
	require.True(t, ok)
	assert.Equal(t, []byte("c"), k)

	k, _, ok = tb.UpperBound(ExcludedBound([]byte("c")))
	require.True(t, ok)
	assert.Equal(t, []byte("a"), k)
}

func TestCFTable_CursorStableAcrossDeletion(t *testing.T) {
	tb := newCFTable()
	tb.Put([]byte("a"), []byte("1"))
	tb.Put([]byte("b"), []byte("2"))
	tb.Put([]byte("c"), []byte("3"))

	cursorKey, cursorValue, ok := tb.LowerBound(IncludedBound([]byte("b")))
	require.True(t, ok)

	tb.Delete([]byte("b"))

	// the cached bytes remain readable even though the entry is gone.
	assert.Equal(t, []byte("b"), cursorKey)
	assert.Equal(t, []byte("2"), cursorValue)

	// stepping from the stale cursor key still finds what follows.
	nextKey, _, ok := tb.NextAfter(cursorKey)
	require.True(t, ok)
	assert.Equal(t, []byte("c"), nextKey)
}
