// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides retry policies for the HTTP transport.
//
// The request lifecycle itself never retries: a lifecycle reports
// exactly one outcome. Retrying is a property of the transport, and
// transport.HTTP consults a Policy after every failed attempt.
//
// A Policy combines a Decider, which decides whether to retry, with a
// Waiter, which computes the pause before the retry:
//
//	decider := retry.Times(3).
//		And(retry.Before(5 * time.Second)).
//		And(retry.StatusCode(503).Or(retry.TransientErr))
//	waiter := retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, time.Now())
//	policy := retry.NewPolicy(decider, waiter)
//
// Waiters can also be built from any github.com/cenkalti/backoff/v4
// back-off with NewBackOffWaiter.
package retry
