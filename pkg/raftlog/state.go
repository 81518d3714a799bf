package raftlog

import (
	"encoding/json"

	"github.com/cuemby/skipstore/pkg/engineerr"
)

// HardState mirrors the consensus-layer fields a RaftLocalState persists
// alongside LastIndex (term, vote, commit index), following the shape of
// TiKV's raftpb.HardState.
type HardState struct {
	Term   uint64 `json:"term"`
	Vote   uint64 `json:"vote"`
	Commit uint64 `json:"commit"`
}

// RaftLocalState is the per-group persisted record this package reads and
// writes at RaftStateKey(groupID): the Raft hard state plus the last
// appended log index (spec.md's GLOSSARY).
type RaftLocalState struct {
	HardState HardState `json:"hard_state"`
	LastIndex uint64    `json:"last_index"`
}

func encodeState(s RaftLocalState) ([]byte, error) {
	return json.Marshal(s)
}

func decodeState(key, data []byte) (RaftLocalState, error) {
	var s RaftLocalState
	if err := json.Unmarshal(data, &s); err != nil {
		return RaftLocalState{}, engineerr.NewCodecError(key, err)
	}
	return s, nil
}

// LogEntry is one Raft-group log entry at a monotonically increasing Index
// within one group (spec.md's GLOSSARY). Data carries the opaque,
// consensus-layer command payload. Type and Extensions round-trip
// hashicorp/raft's Log.Type and Log.Extensions so GroupStore (groupstore.go)
// can translate losslessly in both directions.
type LogEntry struct {
	Index      uint64 `json:"index"`
	Term       uint64 `json:"term"`
	Type       uint8  `json:"type"`
	Data       []byte `json:"data"`
	Extensions []byte `json:"extensions,omitempty"`
}

func encodeEntry(e LogEntry) ([]byte, error) {
	return json.Marshal(e)
}

func decodeEntry(key, data []byte) (LogEntry, error) {
	var e LogEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return LogEntry{}, engineerr.NewCodecError(key, err)
	}
	return e, nil
}
