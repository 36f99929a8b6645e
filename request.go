// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogama/xhr/request"
	"github.com/rs/zerolog"
	"golang.org/x/net/http/httpguts"
)

var errNilResponse = errors.New("xhr: transport returned neither response nor error")

// A Request controls the lifecycle of one asynchronous request. Create
// requests with a Client, or with NewRequest.
//
// A Request is used once: Open it, optionally set headers, then Send
// it. After Send returns, the lifecycle continues on its own goroutine
// until the request is done. Abort may be called at any time, from any
// goroutine, including from inside a callback or handler.
//
// Notifications are delivered one at a time in the order the state
// changes happened. A callback that calls back into the request, for
// example to Abort it, never deadlocks: the notifications it causes are
// delivered as soon as the current one returns. For the same reason, an
// operation called while another goroutine is delivering notifications
// may return before its own notifications are delivered. Use Done or
// Wait to observe the end of the lifecycle.
type Request struct {
	parent    context.Context
	transport Transport
	delay     time.Duration
	handlers  *HandlerGroup
	logger    *zerolog.Logger

	aborted atomic.Bool

	mu            sync.Mutex
	state         State
	descriptor    *request.Descriptor
	outcome       *request.Outcome
	start, end    time.Time
	cancel        context.CancelFunc
	onStateChange func(State)
	onLoad        func(*request.Outcome)
	onError       func(error)
	onAbort       func()
	queue         []notification
	dispatching   bool

	done chan struct{}
}

type notification struct {
	evt Event
	t   *Transition
}

// NewRequest returns a new request in the Unsent state using the
// default client settings.
func NewRequest() *Request {
	return defaultClient.NewRequest()
}

// State returns the current state.
func (r *Request) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Outcome returns the terminal outcome, or nil if the request is not
// done.
func (r *Request) Outcome() *request.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

// Descriptor returns a copy of the request descriptor, or nil before
// Open.
func (r *Request) Descriptor() *request.Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.descriptor == nil {
		return nil
	}
	return r.descriptor.Clone()
}

// Status returns the response status code, or 0 unless the request
// ended with a Success outcome.
func (r *Request) Status() int {
	if o := r.Outcome(); o != nil {
		return o.Status
	}
	return 0
}

// ResponseText returns the response body as a string, or the empty
// string unless the request ended with a Success outcome.
func (r *Request) ResponseText() string {
	if o := r.Outcome(); o != nil {
		return o.Text()
	}
	return ""
}

// Start returns the time Send was called, or the zero time.
func (r *Request) Start() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.start
}

// End returns the time the request became done, or the zero time.
func (r *Request) End() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.end
}

// Duration returns how long the request has been in flight since Send.
// It stops growing once the request is done.
func (r *Request) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.start.IsZero():
		return 0
	case r.end.IsZero():
		return time.Since(r.start)
	default:
		return r.end.Sub(r.start)
	}
}

// OnStateChange sets the callback invoked with the new state on every
// state change. It replaces any previous callback. A nil f clears it.
//
// Events that happened before the callback was set are not replayed.
func (r *Request) OnStateChange(f func(State)) {
	r.mu.Lock()
	r.onStateChange = f
	r.mu.Unlock()
}

// OnLoad sets the callback invoked with the outcome when the request
// ends with a response. It replaces any previous callback. A nil f
// clears it.
func (r *Request) OnLoad(f func(*request.Outcome)) {
	r.mu.Lock()
	r.onLoad = f
	r.mu.Unlock()
}

// OnError sets the callback invoked with the *TransportError when the
// transport fails. It replaces any previous callback. A nil f clears
// it.
func (r *Request) OnError(f func(error)) {
	r.mu.Lock()
	r.onError = f
	r.mu.Unlock()
}

// OnAbort sets the callback invoked when the request is aborted. It
// replaces any previous callback. A nil f clears it.
func (r *Request) OnAbort(f func()) {
	r.mu.Lock()
	r.onAbort = f
	r.mu.Unlock()
}

// Open records the method and target of the request and moves it from
// Unsent to Opened.
//
// An empty method means GET. The async flag is recorded on the
// descriptor but has no effect: the lifecycle always runs
// asynchronously. Open returns a *SequenceError unless the request is
// Unsent, and the descriptor error if the method or target is
// malformed. In both cases the state does not change.
func (r *Request) Open(method, target string, async bool) error {
	d, err := request.NewDescriptor(method, target, async)

	r.mu.Lock()
	if r.state != Unsent {
		s := r.state
		r.mu.Unlock()
		return &SequenceError{Op: "Open", State: s}
	}
	if err != nil {
		r.mu.Unlock()
		return err
	}
	r.descriptor = d
	r.transition(Opened)
	r.mu.Unlock()

	r.deliver()
	return nil
}

// SetRequestHeader adds a request header. Values for the same key
// accumulate. It returns a *SequenceError unless the request is
// Opened.
func (r *Request) SetRequestHeader(key, value string) error {
	if !httpguts.ValidHeaderFieldName(key) {
		return fmt.Errorf("xhr: invalid header field name %q", key)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("xhr: invalid header field value for %q", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Opened {
		return &SequenceError{Op: "SetRequestHeader", State: r.state}
	}
	r.descriptor.Header.Add(key, value)
	return nil
}

// Send sends the request.
//
// The body may be nil, a string, a []byte, an io.Reader or an
// io.ReadCloser. It is read completely, and closed if it is a
// closer, before anything else happens. GET and HEAD requests never
// transmit a body.
//
// Send moves the request to HeadersReceived and notifies the state
// change before returning. After the client's delay the request moves
// to Loading and the transport is invoked, once. Its result is
// committed only if the request was not aborted in the meantime: a
// response leads to a Success outcome and the Load event, and an error
// to a Failure outcome and the Error event. Transport errors are never
// returned by Send.
//
// Send returns a *SequenceError unless the request is Opened, for
// example if it was never opened, was already sent, or was aborted. If
// the body cannot be read, Send returns that error and the request
// stays Opened.
func (r *Request) Send(body interface{}) error {
	r.mu.Lock()
	s := r.state
	r.mu.Unlock()
	if s != Opened {
		return &SequenceError{Op: "Send", State: s}
	}

	b, err := request.BodyBytes(body)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if r.state != Opened {
		s = r.state
		r.mu.Unlock()
		return &SequenceError{Op: "Send", State: s}
	}
	r.descriptor.Body = b
	d := r.descriptor.Clone()
	ctx, cancel := context.WithCancel(r.parent)
	r.cancel = cancel
	r.start = time.Now()
	r.transition(HeadersReceived)
	r.mu.Unlock()

	r.deliver()
	go r.run(ctx, d)
	return nil
}

// Abort aborts the request.
//
// If the request is not done yet, it becomes done with an Aborted
// outcome, and the StateChange and Abort events are delivered. Any
// transport result that arrives later is discarded. The transport's
// context is cancelled so it can release its resources. If the request
// is already done, Abort does nothing.
func (r *Request) Abort() {
	r.aborted.Store(true)

	r.mu.Lock()
	if r.state == Done {
		r.mu.Unlock()
		return
	}
	cancel := r.cancel
	r.finish(request.Cancelled())
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.deliver()
}

// AbortAfter arranges for the request to be aborted once d has elapsed.
// The returned stop function cancels the arrangement; it reports
// whether it did so before the abort was triggered.
func (r *Request) AbortAfter(d time.Duration) (stop func() bool) {
	t := time.AfterFunc(d, r.Abort)
	return t.Stop
}

// Done returns a channel that is closed once the request is done and
// the terminal notifications have been delivered.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the request is done, or until ctx ends. It returns
// the outcome, with a nil error for a Success outcome, the
// *TransportError for a Failure outcome, and ErrAborted for an Aborted
// one. If ctx ends first, Wait returns ctx.Err() and leaves the request
// alone.
func (r *Request) Wait(ctx context.Context) (*request.Outcome, error) {
	select {
	case <-r.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	o := r.Outcome()
	switch o.Tag {
	case request.Failure:
		return o, o.Err
	case request.Aborted:
		return o, ErrAborted
	default:
		return o, nil
	}
}

func (r *Request) run(ctx context.Context, d *request.Descriptor) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}

	r.mu.Lock()
	if r.aborted.Load() || r.state != HeadersReceived {
		r.mu.Unlock()
		return
	}
	r.transition(Loading)
	r.mu.Unlock()
	r.deliver()

	resp, err := r.transport.Transfer(ctx, d)
	r.commit(d, resp, err)
}

func (r *Request) commit(d *request.Descriptor, resp *request.Response, err error) {
	r.mu.Lock()
	if r.aborted.Load() || r.state != Loading {
		r.mu.Unlock()
		r.logger.Warn().
			Str("method", d.Method).
			Str("target", d.Target()).
			AnErr("cause", err).
			Msg("discarding transport result of aborted request")
		return
	}
	if err == nil && resp == nil {
		err = errNilResponse
	}
	var o *request.Outcome
	if err != nil {
		o = request.Failed(&TransportError{
			Method: d.Method,
			Target: d.Target(),
			Err:    err,
		})
	} else {
		o = request.Succeeded(resp)
	}
	cancel := r.cancel
	r.finish(o)
	r.mu.Unlock()

	cancel()
	r.deliver()
}

// finish records the outcome and moves to Done. The caller holds mu.
func (r *Request) finish(o *request.Outcome) {
	r.outcome = o
	r.end = time.Now()
	r.transition(Done)
}

// transition changes state and queues the resulting notifications. The
// caller holds mu.
func (r *Request) transition(to State) {
	t := &Transition{
		Request: r,
		From:    r.state,
		State:   to,
		Time:    time.Now(),
	}
	r.state = to
	r.queue = append(r.queue, notification{evt: StateChange, t: t})
	if to == Done {
		t.Outcome = r.outcome
		r.queue = append(r.queue, notification{evt: terminalEvent(r.outcome.Tag), t: t})
	}
}

func terminalEvent(tag request.Tag) Event {
	switch tag {
	case request.Success:
		return Load
	case request.Failure:
		return Error
	default:
		return Abort
	}
}

// deliver drains the notification queue unless another call is already
// draining it.
func (r *Request) deliver() {
	r.mu.Lock()
	if r.dispatching {
		r.mu.Unlock()
		return
	}
	r.dispatching = true
	r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			r.mu.Lock()
			r.dispatching = false
			r.mu.Unlock()
			panic(p)
		}
	}()

	for {
		r.mu.Lock()
		if len(r.queue) == 0 {
			r.dispatching = false
			r.mu.Unlock()
			return
		}
		n := r.queue[0]
		r.queue = r.queue[1:]
		d := r.descriptor
		var f func()
		switch n.evt {
		case StateChange:
			if cb := r.onStateChange; cb != nil {
				f = func() { cb(n.t.State) }
			}
		case Load:
			if cb := r.onLoad; cb != nil {
				f = func() { cb(n.t.Outcome) }
			}
		case Error:
			if cb := r.onError; cb != nil {
				f = func() { cb(n.t.Outcome.Err) }
			}
		case Abort:
			if cb := r.onAbort; cb != nil {
				f = cb
			}
		}
		r.mu.Unlock()

		r.notify(n, d, f)
	}
}

func (r *Request) notify(n notification, d *request.Descriptor, f func()) {
	r.log(n, d)
	if f != nil {
		f()
	}
	r.handlers.run(n.evt, n.t)
	if n.evt != StateChange {
		close(r.done)
	}
}

func (r *Request) log(n notification, d *request.Descriptor) {
	var method, target string
	if d != nil {
		method, target = d.Method, d.Target()
	}
	if n.evt == StateChange {
		r.logger.Debug().
			Str("method", method).
			Str("target", target).
			Stringer("from", n.t.From).
			Stringer("to", n.t.State).
			Msg("state change")
		return
	}
	o := n.t.Outcome
	r.logger.Info().
		Str("method", method).
		Str("target", target).
		Stringer("outcome", o.Tag).
		Int("status", o.Status).
		Int("bytes", len(o.Body)).
		AnErr("error", o.Err).
		Msg("request done")
}
