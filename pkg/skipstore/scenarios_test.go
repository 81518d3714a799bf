package skipstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1: Basic put/get.
func TestScenario_BasicPutGet(t *testing.T) {
	eng := NewBuilder().Build()
	require.NoError(t, eng.PutDefault([]byte("k"), []byte("v")))

	v, ok, err := eng.GetDefault([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)
	assert.EqualValues(t, 2, eng.TotalBytes())
}

// Scenario 2: Overwrite.
func TestScenario_Overwrite(t *testing.T) {
	eng := NewBuilder().Build()
	require.NoError(t, eng.PutDefault([]byte("k"), []byte("v1")))
	require.NoError(t, eng.PutDefault([]byte("k"), []byte("longer")))

	v, ok, err := eng.GetDefault([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("longer"), v)
	assert.EqualValues(t, 1+6, eng.TotalBytes())
}

// Scenario 3: Range iteration.
func TestScenario_RangeIteration(t *testing.T) {
	eng := NewBuilder().Build()
	require.NoError(t, eng.PutDefault([]byte("a"), []byte("1")))
	require.NoError(t, eng.PutDefault([]byte("b"), []byte("2")))
	require.NoError(t, eng.PutDefault([]byte("c"), []byte("3")))

	it, err := eng.NewIterator(DefaultCF, IterOptions{
		LowerBound: []byte("a"),
		UpperBound: []byte("b"),
	})
	require.NoError(t, err)

	var got [][2]string
	for ok := it.SeekToFirst(); ok; ok = it.Next() {
		got = append(got, [2]string{string(it.Key()), string(it.Value())})
	}
	assert.Equal(t, [][2]string{{"a", "1"}, {"b", "2"}}, got)
}
