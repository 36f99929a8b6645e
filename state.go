// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

// A State is a step in a request lifecycle. States are ordered: a
// request only ever moves to a greater state, and Done is terminal.
type State int

const (
	// Unsent is the state of a new request, before Open.
	Unsent State = iota
	// Opened is entered by Open. The request is described but not
	// sent yet.
	Opened
	// HeadersReceived is entered synchronously by Send. It is
	// synthetic: it marks that the request was accepted for sending,
	// not that any response headers exist yet.
	HeadersReceived
	// Loading is entered after the synthetic delay, just before the
	// transport is invoked.
	Loading
	// Done is the terminal state. It is entered when the transport
	// result is committed, or when the request is aborted.
	Done
	// stateSentinel provides the total number of states typed as a
	// State.
	stateSentinel

	// numStates provides the total number of states as an int.
	numStates = int(stateSentinel)
)

var stateNames = []string{
	"Unsent",
	"Opened",
	"HeadersReceived",
	"Loading",
	"Done",
}

// States returns all request states in lifecycle order.
func States() []State {
	return []State{
		Unsent,
		Opened,
		HeadersReceived,
		Loading,
		Done,
	}
}

// Name returns the name of the state.
func (s State) Name() string {
	return stateNames[int(s)]
}

// String returns the name of the state.
func (s State) String() string {
	return s.Name()
}
