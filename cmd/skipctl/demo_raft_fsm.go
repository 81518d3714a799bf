package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cuemby/skipstore/pkg/skipstore"
	"github.com/hashicorp/raft"
)

// demoFSM applies committed log entries to a skipstore.Engine's default
// column family. It exists only to give demo-raft something to apply
// through raft.Raft; the Raft Log Adaptor itself (raftlog.GroupStore) never
// touches the FSM layer.
type demoFSM struct {
	engine *skipstore.Engine
}

// demoCommand mirrors poc/raft's Command shape: a single set/delete op.
type demoCommand struct {
	Op    string `json:"op"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

func newDemoFSM(engine *skipstore.Engine) *demoFSM {
	return &demoFSM{engine: engine}
}

func (f *demoFSM) Apply(l *raft.Log) interface{} {
	var cmd demoCommand
	if err := json.Unmarshal(l.Data, &cmd); err != nil {
		return fmt.Errorf("unmarshal command: %w", err)
	}

	switch cmd.Op {
	case "set":
		return f.engine.PutDefault([]byte(cmd.Key), []byte(cmd.Value))
	case "delete":
		return f.engine.DeleteDefault([]byte(cmd.Key))
	default:
		return fmt.Errorf("unknown op %q", cmd.Op)
	}
}

func (f *demoFSM) Snapshot() (raft.FSMSnapshot, error) {
	snap := f.engine.Snapshot()
	it, err := snap.NewIterator(skipstore.DefaultCF, skipstore.IterOptions{})
	if err != nil {
		return nil, err
	}
	data := make(map[string]string)
	for ok := it.SeekToFirst(); ok; ok = it.Next() {
		data[string(it.Key())] = string(it.Value())
	}
	return &demoSnapshot{data: data}, nil
}

func (f *demoFSM) Restore(rc io.ReadCloser) error {
	defer rc.Close()
	var data map[string]string
	if err := json.NewDecoder(rc).Decode(&data); err != nil {
		return err
	}
	for k, v := range data {
		if err := f.engine.PutDefault([]byte(k), []byte(v)); err != nil {
			return err
		}
	}
	return nil
}

type demoSnapshot struct {
	data map[string]string
}

func (s *demoSnapshot) Persist(sink raft.SnapshotSink) error {
	err := func() error {
		b, err := json.Marshal(s.data)
		if err != nil {
			return err
		}
		if _, err := sink.Write(b); err != nil {
			return err
		}
		return sink.Close()
	}()
	if err != nil {
		sink.Cancel()
	}
	return err
}

func (s *demoSnapshot) Release() {}
