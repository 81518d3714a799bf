package raftlog

import (
	"encoding/binary"

	"github.com/cuemby/skipstore/pkg/engineerr"
)

// StoreIdentKey identifies the local node's persisted identity record.
// Nothing in this package writes it — node bootstrap is out of scope — but
// it is reserved so an embedder's bootstrap code never collides with the
// adaptor's own key namespace (modeled on original_source/node.go's use of
// keys.STORE_IDENT_KEY).
var StoreIdentKey = []byte("store_ident")

// PrepareBootstrapKey identifies a pending cluster-bootstrap marker. Reserved
// for the same reason as StoreIdentKey.
var PrepareBootstrapKey = []byte("prepare_boot")

// RaftStatePrefix and RaftLogPrefix namespace every key this package writes
// so they can never collide with StoreIdentKey, PrepareBootstrapKey, or a
// caller's own use of the default column family.
var (
	RaftStatePrefix = []byte("raft_state_")
	RaftLogPrefix   = []byte("raft_log_")
)

const indexWidth = 8 // be64

// RaftStateKey returns RAFT_STATE_PREFIX || be64(groupID).
func RaftStateKey(groupID uint64) []byte {
	key := make([]byte, 0, len(RaftStatePrefix)+indexWidth)
	key = append(key, RaftStatePrefix...)
	key = binary.BigEndian.AppendUint64(key, groupID)
	return key
}

// RaftLogPrefixKey returns RAFT_LOG_PREFIX || be64(groupID), the common
// prefix of every log-entry key belonging to groupID.
func RaftLogPrefixKey(groupID uint64) []byte {
	key := make([]byte, 0, len(RaftLogPrefix)+indexWidth)
	key = append(key, RaftLogPrefix...)
	key = binary.BigEndian.AppendUint64(key, groupID)
	return key
}

// RaftLogKey returns raft_log_prefix(groupID) || be64(index). Because the
// index is encoded big-endian, for a fixed groupID RaftLogKey(groupID, i) <
// RaftLogKey(groupID, j) iff i < j: lexicographic byte order matches
// numeric order (spec.md §4.6).
func RaftLogKey(groupID, index uint64) []byte {
	prefix := RaftLogPrefixKey(groupID)
	key := make([]byte, 0, len(prefix)+indexWidth)
	key = append(key, prefix...)
	key = binary.BigEndian.AppendUint64(key, index)
	return key
}

// RaftLogIndex parses the last 8 bytes of key as a big-endian index. It
// fails if key is shorter than a prefix plus 8 bytes.
func RaftLogIndex(key []byte) (uint64, error) {
	if len(key) < len(RaftLogPrefix)+2*indexWidth {
		return 0, engineerr.NewCodecError(key, errShortKey)
	}
	return binary.BigEndian.Uint64(key[len(key)-indexWidth:]), nil
}

var errShortKey = shortKeyError{}

type shortKeyError struct{}

func (shortKeyError) Error() string { return "raftlog: key too short to hold a be64 index" }
