// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package xhr emulates the lifecycle of an asynchronous browser-style
request: a Request moves through the states Unsent, Opened,
HeadersReceived, Loading and Done, notifying callbacks on the way, and
may be aborted at any point before it is done.

Create a Request from a Client, register callbacks, then open and send
it:

	client := &xhr.Client{}
	req := client.NewRequest()
	req.OnStateChange(func(s xhr.State) { fmt.Println("state:", s) })
	req.OnLoad(func(o *request.Outcome) { fmt.Println(o.Status, o.Text()) })
	req.OnError(func(err error) { fmt.Println("error:", err) })
	req.OnAbort(func() { fmt.Println("aborted") })
	if err := req.Open("GET", "https://www.example.com", true); err != nil {
		...
	}
	if err := req.Send(nil); err != nil {
		...
	}

Send returns as soon as the request enters HeadersReceived. The rest of
the lifecycle runs on its own goroutine. To consume the result in
future style instead, wait on the request:

	outcome, err := req.Wait(ctx)

or use the Client helpers, which open, send and wait in one call:

	outcome, err := client.Get(ctx, "https://www.example.com")

The transport that actually performs the request is pluggable. The zero
Client uses an HTTP transport from package transport with its default
policies. For control over retries and attempt timeouts, configure one
explicitly:

	client := &xhr.Client{
		Transport: &transport.HTTP{
			RetryPolicy:   retry.DefaultPolicy,
			TimeoutPolicy: timeout.Fixed(10 * time.Second),
		},
	}

To observe every request a client creates, install handlers into the
appropriate handler chain:

	handlers := &xhr.HandlerGroup{}
	handlers.PushBack(xhr.StateChange, xhr.HandlerFunc(
		func(_ xhr.Event, t *xhr.Transition) {
			log.Printf("%s -> %s", t.From, t.State)
		}),
	)
	client := &xhr.Client{
		Handlers: handlers,
	}

A Request is done exactly once. Once Abort has been called, a transport
result that arrives later is discarded, so the abort notification is
always the only terminal notification delivered.
*/
package xhr
