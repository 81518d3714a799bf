package raftlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaftLogKey_IndexRoundTrip(t *testing.T) {
	for _, g := range []uint64{0, 1, 7, 1 << 40} {
		for _, i := range []uint64{0, 1, 42, 1 << 50} {
			key := RaftLogKey(g, i)
			got, err := RaftLogIndex(key)
			require.NoError(t, err)
			assert.Equal(t, i, got)
		}
	}
}

func TestRaftLogKey_MonotonicForFixedGroup(t *testing.T) {
	g := uint64(7)
	for i := uint64(0); i < 100; i++ {
		a := RaftLogKey(g, i)
		b := RaftLogKey(g, i+1)
		assert.True(t, string(a) < string(b), "key(%d) should sort before key(%d)", i, i+1)
	}
}

func TestRaftLogIndex_ShortKeyFails(t *testing.T) {
	_, err := RaftLogIndex([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestRaftLogKey_PrefixIsStable(t *testing.T) {
	prefix := RaftLogPrefixKey(7)
	key := RaftLogKey(7, 42)
	assert.True(t, len(key) > len(prefix))
	assert.Equal(t, prefix, key[:len(prefix)])
}
