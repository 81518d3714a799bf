package skipstore

import (
	"testing"

	"github.com/cuemby/skipstore/pkg/engineerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_DefaultCF(t *testing.T) {
	eng := NewBuilder().Build()
	_, ok, err := eng.GetDefault([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuilder_NamedCFs(t *testing.T) {
	eng := NewBuilder().WithCF("raft").WithCF("meta").Build()

	require.NoError(t, eng.Put("raft", []byte("k"), []byte("v")))
	v, ok, err := eng.Get("raft", []byte("k"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	_, _, err = eng.Get("nonexistent", []byte("k"))
	var cfErr *engineerr.CFNameError
	assert.ErrorAs(t, err, &cfErr)
}

func TestEngine_BasicPutGet(t *testing.T) {
	eng := NewBuilder().Build()
	require.NoError(t, eng.PutDefault([]byte("k"), []byte("v")))

	v, ok, err := eng.GetDefault([]byte("k"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)
	assert.EqualValues(t, 2, eng.TotalBytes())
}

func TestEngine_Overwrite(t *testing.T) {
	eng := NewBuilder().Build()
	require.NoError(t, eng.PutDefault([]byte("k"), []byte("v1")))
	require.NoError(t, eng.PutDefault([]byte("k"), []byte("longer")))

	v, ok, err := eng.GetDefault([]byte("k"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("longer"), v)
	assert.EqualValues(t, 1+6, eng.TotalBytes())
}

func TestEngine_DeleteAbsentIsNoop(t *testing.T) {
	eng := NewBuilder().Build()
	require.NoError(t, eng.DeleteDefault([]byte("missing")))
	assert.EqualValues(t, 0, eng.TotalBytes())
}

func TestEngine_DeleteIdempotent(t *testing.T) {
	eng := NewBuilder().Build()
	require.NoError(t, eng.PutDefault([]byte("k"), []byte("v")))
	require.NoError(t, eng.DeleteDefault([]byte("k")))
	require.NoError(t, eng.DeleteDefault([]byte("k")))

	_, ok, err := eng.GetDefault([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.EqualValues(t, 0, eng.TotalBytes())
}

func TestEngine_DeleteRange(t *testing.T) {
	eng := NewBuilder().Build()
	for _, kv := range [][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}, {"d", "4"}} {
		require.NoError(t, eng.PutDefault([]byte(kv[0]), []byte(kv[1])))
	}

	require.NoError(t, eng.DeleteRange(DefaultCF, []byte("b"), []byte("d")))

	_, ok, _ := eng.GetDefault([]byte("a"))
	assert.True(t, ok)
	_, ok, _ = eng.GetDefault([]byte("b"))
	assert.False(t, ok)
	_, ok, _ = eng.GetDefault([]byte("c"))
	assert.False(t, ok)
	_, ok, _ = eng.GetDefault([]byte("d"))
	assert.True(t, ok)
}

func TestEngine_DeleteRangeOnEmptyCFIsNoop(t *testing.T) {
	eng := NewBuilder().Build()
	require.NoError(t, eng.DeleteRange(DefaultCF, []byte("a"), []byte("z")))
	assert.EqualValues(t, 0, eng.TotalBytes())
}

func TestEngine_TotalBytesAfterQuiescence(t *testing.T) {
	eng := NewBuilder().Build()
	require.NoError(t, eng.PutDefault([]byte("aa"), []byte("111")))
	require.NoError(t, eng.PutDefault([]byte("b"), []byte("2")))
	require.NoError(t, eng.DeleteDefault([]byte("aa")))

	assert.EqualValues(t, len("b")+len("2"), eng.TotalBytes())
}

func TestEngine_Sync(t *testing.T) {
	eng := NewBuilder().Build()
	assert.NoError(t, eng.Sync())
}

func TestEngine_WriteBatchOrderingPutThenDeleteLeavesKeyAbsent(t *testing.T) {
	eng := NewBuilder().Build()
	batch := NewWriteBatch()
	batch.PutDefault([]byte("k"), []byte("v"))
	batch.DeleteDefault([]byte("k"))

	_, err := eng.Write(batch)
	require.NoError(t, err)

	_, ok, err := eng.GetDefault([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngine_WriteBatchEquivalentToSequentialApplication(t *testing.T) {
	eng := NewBuilder().Build()
	batch := NewWriteBatch()
	batch.PutDefault([]byte("a"), []byte("1"))
	batch.PutDefault([]byte("b"), []byte("2"))
	batch.DeleteDefault([]byte("a"))
	batch.PutDefault([]byte("c"), []byte("3"))

	written, err := eng.Write(batch)
	require.NoError(t, err)
	assert.Greater(t, written, int64(0))

	_, ok, _ := eng.GetDefault([]byte("a"))
	assert.False(t, ok)
	v, ok, _ := eng.GetDefault([]byte("b"))
	assert.True(t, ok)
	assert.Equal(t, []byte("2"), v)
	v, ok, _ = eng.GetDefault([]byte("c"))
	assert.True(t, ok)
	assert.Equal(t, []byte("3"), v)
}

func TestCompactExt_AlwaysSucceeds(t *testing.T) {
	eng := NewBuilder().Build()
	c := eng.Compact()
	assert.NoError(t, c.CompactRange(DefaultCF, nil, nil, true))
	assert.NoError(t, c.CompactFilesInRange(nil, nil))
	assert.True(t, c.AutoCompactionsDisabled())
}
