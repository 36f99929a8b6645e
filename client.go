// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"time"

	"github.com/gogama/xhr/request"
	"github.com/gogama/xhr/transport"
	"github.com/rs/zerolog"
)

// DefaultDelay is the synthetic delay between HeadersReceived and
// Loading used when Client.Delay is zero.
const DefaultDelay = 500 * time.Millisecond

var defaultTransport Transport = &transport.HTTP{}

var defaultClient = &Client{}

var nopLogger = zerolog.Nop()

// A Client creates requests that share a transport, a synthetic delay,
// handler chains and a logger. Its zero value is a valid configuration.
//
// The zero value client uses a zero transport.HTTP as the transport,
// DefaultDelay as the delay, no event handlers, and no logging. Client
// is safe for concurrent use by multiple goroutines, and should be
// reused rather than created as needed, since its transport typically
// caches connections.
//
// Besides creating requests with NewRequest, Client implements the
// Executor interface, which runs a whole request lifecycle and waits
// for its outcome in one call.
type Client struct {
	// Transport performs the requests.
	//
	// If Transport is nil, a zero transport.HTTP is used.
	Transport Transport
	// Delay is how long a sent request waits in HeadersReceived before
	// it moves to Loading and the transport is invoked.
	//
	// If Delay is zero, DefaultDelay is used. If it is negative, there
	// is no delay.
	Delay time.Duration
	// Handlers allows custom handler chains to be invoked when events
	// occur during request lifecycles. Each chain runs after the
	// request's own callback for the event.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger receives structured logs of state changes at debug level,
	// of outcomes at info level, and of discarded transport results at
	// warn level.
	//
	// If Logger is nil, nothing is logged.
	Logger *zerolog.Logger
}

// NewRequest returns a new request in the Unsent state.
func (c *Client) NewRequest() *Request {
	return c.NewRequestContext(context.Background())
}

// NewRequestContext returns a new request in the Unsent state. The
// transport's context is derived from ctx, so ending ctx makes an
// in-flight transport call fail. It does not abort the request.
func (c *Client) NewRequestContext(ctx context.Context) *Request {
	if ctx == nil {
		panic("xhr: nil context")
	}

	return &Request{
		parent:    ctx,
		transport: c.transport(),
		delay:     c.delay(),
		handlers:  c.Handlers,
		logger:    c.logger(),
		done:      make(chan struct{}),
	}
}

// Do runs the whole lifecycle of a request described by d: it opens
// the request, copies the headers, sends it with d's body, and waits
// for its outcome.
//
// The error is nil for a Success outcome, even if the status is not
// 2XX, and the *TransportError for a Failure outcome. If Open or Send
// fail, their error is returned with a nil outcome. If ctx ends before
// the request is done, Do aborts the request and returns ctx.Err().
//
// For simple use cases, the Get and Post methods may prove easier to
// use than Do.
func (c *Client) Do(ctx context.Context, d *request.Descriptor) (*request.Outcome, error) {
	r := c.NewRequestContext(ctx)
	if err := r.Open(d.Method, d.Target(), d.Async); err != nil {
		return nil, err
	}
	for k, vs := range d.Header {
		for _, v := range vs {
			if err := r.SetRequestHeader(k, v); err != nil {
				return nil, err
			}
		}
	}
	if err := r.Send(d.Body); err != nil {
		return nil, err
	}
	o, err := r.Wait(ctx)
	if o == nil {
		r.Abort()
	}
	return o, err
}

// Get runs the lifecycle of a GET to the specified target, in the same
// way as Do.
func (c *Client) Get(ctx context.Context, target string) (*request.Outcome, error) {
	return Get(ctx, c, target)
}

// Post runs the lifecycle of a POST to the specified target, in the
// same way as Do.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by request.BodyBytes, namely: string; []byte;
// io.Reader; and io.ReadCloser.
func (c *Client) Post(ctx context.Context, target, contentType string, body interface{}) (*request.Outcome, error) {
	return Post(ctx, c, target, contentType, body)
}

func (c *Client) transport() Transport {
	if c.Transport == nil {
		return defaultTransport
	}

	return c.Transport
}

func (c *Client) delay() time.Duration {
	if c.Delay == 0 {
		return DefaultDelay
	}

	return c.Delay
}

func (c *Client) logger() *zerolog.Logger {
	if c.Logger == nil {
		return &nopLogger
	}

	return c.Logger
}
