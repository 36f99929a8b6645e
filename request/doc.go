// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the data types that flow through a request
lifecycle: Descriptor (what to send), Response (what a transport
produced), Outcome (how the lifecycle ended) and Execution (the
attempt-level state of an HTTP transport call).

A Descriptor is created when a request is opened:

	d, err := request.NewDescriptor("POST", "https://example.com/posts", true)
	...

The body is attached when the request is sent. Once sending starts the
descriptor must be treated as immutable; xhr.Request only ever hands out
copies of it.

An Outcome is written exactly once, when the request reaches its
terminal state, and is tagged Success, Failure or Aborted. A Success
carries the status, headers and body of the Response the transport
returned. Note that, as in the browser request API, any HTTP status is
a Success: Failure means no response was obtained at all.

Execution is used by the bundled HTTP transport and by its retry and
timeout policies. Lifecycle callers will not normally see one.
*/
package request
