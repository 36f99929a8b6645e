// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

// An Event identifies a kind of notification a request delivers.
// Install handlers for events in a Client to extend every request it
// creates with custom behavior, such as logging or metrics.
type Event int

const (
	// StateChange occurs on every state transition, including the
	// transition to Done. It is delivered before the terminal event.
	StateChange Event = iota
	// Load occurs once, after the StateChange to Done, when the
	// request ended with a Success outcome.
	Load
	// Error occurs once, after the StateChange to Done, when the
	// transport failed.
	Error
	// Abort occurs once, after the StateChange to Done, when the
	// request was aborted.
	Abort
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"StateChange",
	"Load",
	"Error",
	"Abort",
}

// Events returns all events in the order they can occur for a request.
func Events() []Event {
	return []Event{
		StateChange,
		Load,
		Error,
		Abort,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
