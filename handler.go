// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"time"

	"github.com/gogama/xhr/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in a Client.
//
// A HandlerGroup must not be modified while requests created by a Client
// using it are in flight.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("xhr: nil handler")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, t *Transition) {
	if g == nil {
		return
	}
	i := int(evt)
	if i < len(g.handlers) {
		run(g.handlers[i], evt, t)
	}
}

func run(chain []Handler, evt Event, t *Transition) {
	for _, h := range chain {
		h.Handle(evt, t)
	}
}

// A Transition is a snapshot of one state change of a request, passed
// to event handlers. It must not be modified.
type Transition struct {
	// Request is the request whose state changed. Handlers may call
	// its methods, including Abort.
	Request *Request

	// From is the state before the change.
	From State

	// State is the state after the change.
	State State

	// Outcome is the terminal outcome when State is Done, and nil
	// otherwise.
	Outcome *request.Outcome

	// Time is when the change happened.
	Time time.Time
}

// A Handler handles the occurrence of an event during a request
// lifecycle.
type Handler interface {
	Handle(Event, *Transition)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *Transition)

// Handle calls f(evt, t).
func (f HandlerFunc) Handle(evt Event, t *Transition) {
	f(evt, t)
}
