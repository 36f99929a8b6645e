// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/xhr/request"
)

// A Policy sets the timeout of each transport attempt.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout for the next attempt of e.
	Timeout(e *request.Execution) time.Duration
}

// DefaultPolicy sets a fixed timeout of 5 seconds on every attempt.
var DefaultPolicy Policy = Fixed(5 * time.Second)

// Infinite never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed returns a policy that uses d for every attempt.
func Fixed(d time.Duration) Policy {
	return policy{d}
}

// Adaptive returns a policy that lengthens the timeout after an attempt
// timed out.
//
// The usual timeout is used for the first attempt and whenever the
// previous attempt did not time out. After the k-th timeout of an
// execution, after[k-1] is used, and the last element of after once
// the timeouts outnumber it. For example:
//
//	p := timeout.Adaptive(200*time.Millisecond, time.Second, 10*time.Second)
//
// times out attempts after 200ms normally, after 1s following the first
// timeout, and after 10s following any later one.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make(policy, 1, 1+len(after))
	p[0] = usual
	return append(p, after...)
}

type policy []time.Duration

func (p policy) Timeout(e *request.Execution) time.Duration {
	if !e.Timeout() {
		return p[0]
	}
	i := e.AttemptTimeouts
	if i >= len(p) {
		i = len(p) - 1
	}
	return p[i]
}
