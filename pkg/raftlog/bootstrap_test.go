package raftlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Node bootstrap (StoreIdentKey, PrepareBootstrapKey usage) is out of scope
// for this package, but the keys are reserved so an embedder's bootstrap
// code — modeled on original_source/node.go's check_store /
// prepare_bootstrap_cluster — can safely share the default column family
// with the adaptor without ever colliding with its log/state namespace.
func TestReservedBootstrapKeys_DoNotCollideWithLogNamespace(t *testing.T) {
	assert.NotEqual(t, StoreIdentKey, RaftStateKey(0))
	assert.NotEqual(t, PrepareBootstrapKey, RaftStateKey(0))
	assert.False(t, hasPrefix(StoreIdentKey, RaftStatePrefix))
	assert.False(t, hasPrefix(StoreIdentKey, RaftLogPrefix))
	assert.False(t, hasPrefix(PrepareBootstrapKey, RaftStatePrefix))
	assert.False(t, hasPrefix(PrepareBootstrapKey, RaftLogPrefix))
}

func hasPrefix(s, prefix []byte) bool {
	if len(prefix) > len(s) {
		return false
	}
	return string(s[:len(prefix)]) == string(prefix)
}
