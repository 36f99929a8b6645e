// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/xhr/transient"
)

// An Execution holds the attempt-level state of one HTTP transport
// call performing a Descriptor.
//
// The transport creates an Execution per call and updates it as
// attempts are made. Retry and timeout policies read it to make their
// decisions. Policies may attach data of their own with SetValue, but
// should otherwise treat the exported fields as read-only.
type Execution struct {
	// Descriptor is the request being performed. It is never nil.
	Descriptor *Descriptor

	// Start is the time the first attempt started. It is the zero
	// time until then.
	Start time.Time

	// End is the time the execution ended. It is the zero time while
	// the execution is in flight.
	End time.Time

	// Attempt is the zero-based index of the current attempt: zero on
	// the initial attempt, one on the first retry, and so on.
	Attempt int

	// AttemptTimeouts counts the attempts that ended in a timeout.
	AttemptTimeouts int

	// Request is the HTTP request of the current or most recent
	// attempt.
	Request *http.Request

	// Response is the HTTP response of the most recent attempt. It is
	// nil if that attempt failed before a response arrived, or while an
	// attempt is underway.
	Response *http.Response

	// Err is the error of the most recent attempt, or nil. Once the
	// execution has ended it equals the error returned by the
	// transport.
	Err error

	// Body is the buffered response body of the most recent attempt.
	// Body and Err may both be non-nil if reading the body failed part
	// way; such a Body must not be trusted.
	Body []byte

	data context.Context
}

// StatusCode returns the status code of the most recent response, or 0
// if there is none.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Header returns the headers of the most recent response, or a nil
// header if there is none. The nil header is safe to read.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}
	return e.Response.Header
}

// Duration returns how long the execution has been running. It is zero
// before the execution starts and stops growing once it ends.
func (e *Execution) Duration() time.Duration {
	switch {
	case !e.Started():
		return 0
	case !e.Ended():
		return time.Since(e.Start)
	default:
		return e.End.Sub(e.Start)
	}
}

// Started reports whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended reports whether the execution has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout reports whether Err is a timeout according to
// transient.Categorize.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue stores a value on the execution. Keys follow the rules of
// context.WithValue: non-nil, comparable, and preferably of an
// unexported type to avoid collisions.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}
	e.data = context.WithValue(ctx, key, value)
}

// Value returns the value stored for key, or nil.
func (e *Execution) Value(key interface{}) interface{} {
	if e.data == nil {
		return nil
	}
	return e.data.Value(key)
}
