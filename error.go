// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"errors"
	"fmt"
)

// ErrInvalidSequence is reported when a Request operation is called in a
// state that does not permit it, for example Send before Open or Send
// twice. Use errors.Is to test for it.
var ErrInvalidSequence = errors.New("xhr: invalid sequence")

// ErrAborted is returned by Wait, and the Client helpers, when the
// request ended because it was aborted.
var ErrAborted = errors.New("xhr: request aborted")

// A SequenceError records an operation attempted in a state that does
// not permit it. It matches ErrInvalidSequence.
type SequenceError struct {
	Op    string // Operation, e.g. "Send"
	State State  // State of the request when Op was attempted
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("xhr: invalid sequence: %s in state %s", e.Op, e.State)
}

// Is reports whether target is ErrInvalidSequence.
func (e *SequenceError) Is(target error) bool {
	return target == ErrInvalidSequence
}

// A TransportError records a failure reported by the transport.
type TransportError struct {
	Method string
	Target string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("xhr: %s %q: %v", e.Method, e.Target, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
