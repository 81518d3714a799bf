package raftlog

import (
	"testing"

	"github.com/cuemby/skipstore/pkg/skipstore"
	"github.com/hashicorp/raft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupStore_FirstLastIndexOnEmptyLog(t *testing.T) {
	engine := skipstore.NewBuilder().Build()
	gs := NewGroupStore(engine, 1)

	first, err := gs.FirstIndex()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), first)

	last, err := gs.LastIndex()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), last)
}

func TestGroupStore_StoreLogsThenFirstLastIndex(t *testing.T) {
	engine := skipstore.NewBuilder().Build()
	gs := NewGroupStore(engine, 1)

	logs := []*raft.Log{
		{Index: 5, Term: 1, Data: []byte("a")},
		{Index: 6, Term: 1, Data: []byte("b")},
		{Index: 7, Term: 1, Data: []byte("c")},
	}
	require.NoError(t, gs.StoreLogs(logs))

	first, err := gs.FirstIndex()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), first)

	last, err := gs.LastIndex()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), last)
}

func TestGroupStore_GetLogRoundTrip(t *testing.T) {
	engine := skipstore.NewBuilder().Build()
	gs := NewGroupStore(engine, 1)

	require.NoError(t, gs.StoreLog(&raft.Log{
		Index:      9,
		Term:       2,
		Type:       raft.LogCommand,
		Data:       []byte("payload"),
		Extensions: []byte("ext"),
	}))

	var got raft.Log
	require.NoError(t, gs.GetLog(9, &got))
	assert.Equal(t, uint64(9), got.Index)
	assert.Equal(t, uint64(2), got.Term)
	assert.Equal(t, raft.LogCommand, got.Type)
	assert.Equal(t, []byte("payload"), got.Data)
	assert.Equal(t, []byte("ext"), got.Extensions)
}

func TestGroupStore_GetLogMissingReturnsErrLogNotFound(t *testing.T) {
	engine := skipstore.NewBuilder().Build()
	gs := NewGroupStore(engine, 1)

	var got raft.Log
	err := gs.GetLog(42, &got)
	assert.ErrorIs(t, err, raft.ErrLogNotFound)
}

func TestGroupStore_DeleteRangeIsInclusiveBothEnds(t *testing.T) {
	engine := skipstore.NewBuilder().Build()
	gs := NewGroupStore(engine, 1)

	logs := make([]*raft.Log, 0, 10)
	for i := uint64(1); i <= 10; i++ {
		logs = append(logs, &raft.Log{Index: i, Term: 1, Data: []byte("x")})
	}
	require.NoError(t, gs.StoreLogs(logs))

	require.NoError(t, gs.DeleteRange(3, 7))

	for _, i := range []uint64{3, 4, 5, 6, 7} {
		var l raft.Log
		err := gs.GetLog(i, &l)
		assert.ErrorIs(t, err, raft.ErrLogNotFound, "index %d should be deleted", i)
	}
	for _, i := range []uint64{1, 2, 8, 9, 10} {
		var l raft.Log
		assert.NoError(t, gs.GetLog(i, &l), "index %d should survive", i)
	}
}

func TestGroupStore_StableStore_SetGet(t *testing.T) {
	engine := skipstore.NewBuilder().Build()
	gs := NewGroupStore(engine, 1)

	v, err := gs.Get([]byte("CurrentTerm"))
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, gs.Set([]byte("CurrentTerm"), []byte("3")))
	v, err = gs.Get([]byte("CurrentTerm"))
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), v)
}

func TestGroupStore_StableStore_SetGetUint64(t *testing.T) {
	engine := skipstore.NewBuilder().Build()
	gs := NewGroupStore(engine, 1)

	u, err := gs.GetUint64([]byte("LastVoteTerm"))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), u)

	require.NoError(t, gs.SetUint64([]byte("LastVoteTerm"), 99))
	u, err = gs.GetUint64([]byte("LastVoteTerm"))
	require.NoError(t, err)
	assert.Equal(t, uint64(99), u)
}

func TestGroupStore_StableStoreKeysDoNotCollideWithRaftState(t *testing.T) {
	engine := skipstore.NewBuilder().Build()
	gs := NewGroupStore(engine, 1)

	require.NoError(t, gs.Set([]byte("CurrentTerm"), []byte("5")))
	adaptor := NewAdaptor(engine)
	state, err := adaptor.GetRaftState(1)
	require.NoError(t, err)
	assert.Nil(t, state, "a StableStore key must never shadow the group's RaftLocalState")
}

func TestGroupStore_MultiGroupIsolation(t *testing.T) {
	engine := skipstore.NewBuilder().Build()
	gsA := NewGroupStore(engine, 1)
	gsB := NewGroupStore(engine, 2)

	require.NoError(t, gsA.StoreLog(&raft.Log{Index: 1, Term: 1, Data: []byte("a")}))
	require.NoError(t, gsB.StoreLog(&raft.Log{Index: 1, Term: 1, Data: []byte("b")}))
	require.NoError(t, gsA.SetUint64([]byte("CurrentTerm"), 1))
	require.NoError(t, gsB.SetUint64([]byte("CurrentTerm"), 2))

	var la, lb raft.Log
	require.NoError(t, gsA.GetLog(1, &la))
	require.NoError(t, gsB.GetLog(1, &lb))
	assert.Equal(t, []byte("a"), la.Data)
	assert.Equal(t, []byte("b"), lb.Data)

	ta, err := gsA.GetUint64([]byte("CurrentTerm"))
	require.NoError(t, err)
	tb, err := gsB.GetUint64([]byte("CurrentTerm"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), ta)
	assert.Equal(t, uint64(2), tb)

	require.NoError(t, gsA.DeleteRange(1, 1))
	var gone raft.Log
	assert.ErrorIs(t, gsA.GetLog(1, &gone), raft.ErrLogNotFound)
	var stillB raft.Log
	assert.NoError(t, gsB.GetLog(1, &stillB))
}

func TestGroupStore_ImplementsRaftInterfaces(t *testing.T) {
	engine := skipstore.NewBuilder().Build()
	gs := NewGroupStore(engine, 1)
	var _ raft.LogStore = gs
	var _ raft.StableStore = gs
}
