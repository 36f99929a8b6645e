// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport provides the HTTP transport used by request
lifecycles to actually perform their requests.

The zero HTTP value is ready to use. It sends requests with
http.DefaultClient, never retries, and times each attempt out after
timeout.DefaultPolicy:

	t := &transport.HTTP{}
	resp, err := t.Transfer(ctx, d)

Retries are opt-in. Use package retry to build a policy:

	t := &transport.HTTP{
		RetryPolicy: retry.NewPolicy(retry.Times(3).And(retry.TransientErr),
			retry.NewFixedWaiter(100*time.Millisecond)),
	}

To speak cleartext HTTP/2 to servers that support it, use NewH2CDoer
as the HTTPDoer.
*/
package transport
