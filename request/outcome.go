// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "net/http"

// A Response is what a transport produces when it obtains a response.
type Response struct {
	// Status is the response status code.
	Status int

	// Header holds the response headers. It may be nil.
	Header http.Header

	// Body is the complete response body.
	Body []byte
}

// A Tag classifies how a request lifecycle ended.
type Tag int

const (
	// Success means the transport produced a Response, whatever its
	// status code.
	Success Tag = iota
	// Failure means the transport returned an error.
	Failure
	// Aborted means the request was aborted before the transport
	// result was committed.
	Aborted
)

var tagNames = []string{
	"Success",
	"Failure",
	"Aborted",
}

// Name returns the name of the tag.
func (t Tag) Name() string {
	return tagNames[int(t)]
}

// String returns the name of the tag.
func (t Tag) String() string {
	return t.Name()
}

// An Outcome records how a request lifecycle ended. It is written once,
// when the lifecycle reaches its terminal state, and never changes
// afterwards.
type Outcome struct {
	// Tag is the terminal classification.
	Tag Tag

	// Status, Header and Body are copied from the transport Response
	// when Tag is Success, and are zero otherwise.
	Status int
	Header http.Header
	Body   []byte

	// Err is the failure cause when Tag is Failure, and nil otherwise.
	Err error
}

// Succeeded returns a Success outcome for resp.
func Succeeded(resp *Response) *Outcome {
	return &Outcome{
		Tag:    Success,
		Status: resp.Status,
		Header: resp.Header,
		Body:   resp.Body,
	}
}

// Failed returns a Failure outcome with cause err.
func Failed(err error) *Outcome {
	return &Outcome{
		Tag: Failure,
		Err: err,
	}
}

// Cancelled returns an Aborted outcome.
func Cancelled() *Outcome {
	return &Outcome{Tag: Aborted}
}

// Text returns the response body as a string.
func (o *Outcome) Text() string {
	return string(o.Body)
}
