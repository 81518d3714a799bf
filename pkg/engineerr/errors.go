// Package engineerr defines the error taxonomy shared by skipstore and
// raftlog. Kinds are distinguished by type, not by string matching, so
// callers can use errors.As/errors.Is the way the rest of this module's
// stack does.
package engineerr

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned by the Raft log adaptor when a fetch cannot be
// satisfied because of a detected gap, prior compaction, or a short read
// that never hit its max_size ceiling. Consensus code interprets this as
// "entries no longer available".
var ErrUnavailable = errors.New("raftlog: entries unavailable")

// NotBootstrapped and ClusterMismatch are node-boundary error kinds. Neither
// skipstore nor raftlog produces them; they exist so an embedder's
// bootstrap code has a shared vocabulary to report against, per spec.
var (
	ErrNotBootstrapped = errors.New("store: not bootstrapped")
	ErrClusterMismatch = errors.New("store: cluster mismatch")
)

// CFNameError reports that a requested column family is not registered on
// the engine. It is recoverable: the caller misconfigured the request.
type CFNameError struct {
	Name string
}

func (e *CFNameError) Error() string {
	return fmt.Sprintf("skipstore: column family %q is not registered", e.Name)
}

// NewCFNameError constructs a CFNameError for the given column family name.
func NewCFNameError(name string) error {
	return &CFNameError{Name: name}
}

// EngineError reports an internal consistency failure, such as a handle
// with no backing table. It is fatal at the call site and should surface
// unwrapped to the embedder.
type EngineError struct {
	Msg string
}

func (e *EngineError) Error() string {
	return "skipstore: " + e.Msg
}

// NewEngineError constructs an EngineError with the given message.
func NewEngineError(msg string) error {
	return &EngineError{Msg: msg}
}

// CodecError wraps a failure to decode a persisted message at a key whose
// presence implies a valid message.
type CodecError struct {
	Key []byte
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("raftlog: failed to decode value at key %x: %v", e.Key, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// NewCodecError wraps an underlying decode error with the key it was read
// from, for diagnostics.
func NewCodecError(key []byte, err error) error {
	return &CodecError{Key: append([]byte(nil), key...), Err: err}
}
