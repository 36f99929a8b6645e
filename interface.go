// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"

	"github.com/gogama/xhr/request"
)

// Transport is the interface that wraps the basic Transfer method.
//
// Transfer performs the request described by d and returns the
// response, or an error if no response could be obtained. A response
// with a non-2XX status is not an error. A Request calls Transfer at
// most once per Send, on its own goroutine, and cancels ctx when it is
// aborted; a Transport should release its resources promptly when
// that happens, but need not return early for correctness.
//
// Transfer must not modify d. Package transport provides an HTTP
// implementation.
type Transport interface {
	Transfer(ctx context.Context, d *request.Descriptor) (*request.Response, error)
}

// The TransportFunc type is an adapter to allow the use of ordinary
// functions as transports. If f is a function with appropriate
// signature, then TransportFunc(f) is a Transport that calls f.
type TransportFunc func(ctx context.Context, d *request.Descriptor) (*request.Response, error)

// Transfer calls f(ctx, d).
func (f TransportFunc) Transfer(ctx context.Context, d *request.Descriptor) (*request.Response, error) {
	return f(ctx, d)
}

// Doer is the interface that wraps the basic Do method.
//
// Do runs the whole lifecycle of one request described by d and
// returns its outcome once it is done. Client implements the Doer
// interface, and any other Doer implementation must behave
// substantially the same as Client.Do.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Do(ctx context.Context, d *request.Descriptor) (*request.Outcome, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Get runs the lifecycle of a GET to the specified target. Client
// implements the Getter interface.
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(ctx context.Context, target string) (*request.Outcome, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Post runs the lifecycle of a POST to the specified target. The body
// parameter may be nil for an empty body, or may be any of the types
// supported by request.BodyBytes, namely: string; []byte; io.Reader;
// and io.ReadCloser.
//
// Any Doer can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(ctx context.Context, target, contentType string, body interface{}) (*request.Outcome, error)
}

// Executor is the interface that groups the basic Do, Get and Post
// methods.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Getter
	Poster
}

// Get uses the specified Doer to run a GET to the specified target.
func Get(ctx context.Context, d Doer, target string) (*request.Outcome, error) {
	desc, err := request.NewDescriptor("GET", target, true)
	if err != nil {
		return nil, err
	}
	return d.Do(ctx, desc)
}

// Post uses the specified Doer to run a POST to the specified target
// with the given content type and body.
func Post(ctx context.Context, d Doer, target, contentType string, body interface{}) (*request.Outcome, error) {
	b, err := request.BodyBytes(body)
	if err != nil {
		return nil, err
	}
	desc, err := request.NewDescriptor("POST", target, true)
	if err != nil {
		return nil, err
	}
	desc.Header.Set("Content-Type", contentType)
	desc.Body = b
	return d.Do(ctx, desc)
}

// Inflate converts any non-nil Doer into an Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("xhr: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(ctx context.Context, d *request.Descriptor) (*request.Outcome, error) {
	return i.doer.Do(ctx, d)
}

func (i inflated) Get(ctx context.Context, target string) (*request.Outcome, error) {
	return Get(ctx, i.doer, target)
}

func (i inflated) Post(ctx context.Context, target, contentType string, body interface{}) (*request.Outcome, error) {
	return Post(ctx, i.doer, target, contentType, body)
}
