// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/gogama/xhr/request"
)

// A Waiter computes how long to wait before retrying a failed attempt.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}

// DefaultWaiter is a full-jitter exponential back-off with a base of
// 50 milliseconds and a cap of 1 second.
var DefaultWaiter = NewExpWaiter(50*time.Millisecond, 1*time.Second, time.Now())

// NewFixedWaiter returns a Waiter that always waits d.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *request.Execution) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter returns a Waiter implementing capped exponential
// back-off with optional "full jitter"
// (https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter).
//
// The ceiling for attempt n is min(base * 2**n, max). base must be
// positive and max must be at least base.
//
// With a nil jitter the waiter returns the ceiling itself. Otherwise
// the wait is drawn uniformly from [0, ceiling) using a generator
// seeded from jitter, which may be a time.Time, int or int64 seed, a
// rand.Source, or a *rand.Rand.
func NewExpWaiter(base, max time.Duration, jitter interface{}) Waiter {
	if base < 1 {
		panic("xhr/retry: base must be positive")
	}
	if max < base {
		panic("xhr/retry: max must be at least base")
	}
	return &expWaiter{
		base: base,
		max:  max,
		rand: jitterToRand(jitter),
	}
}

type expWaiter struct {
	base time.Duration
	max  time.Duration
	rand *rand.Rand
	lock sync.Mutex
}

func (w *expWaiter) Wait(e *request.Execution) time.Duration {
	ceil := w.max
	if e.Attempt < 63 {
		exp := int64(1) << uint(e.Attempt)
		if c := int64(w.base) * exp; c/exp == int64(w.base) && c < int64(w.max) {
			ceil = time.Duration(c)
		}
	}

	if w.rand == nil || ceil <= 0 {
		return ceil
	}

	w.lock.Lock()
	defer w.lock.Unlock()
	return time.Duration(w.rand.Int63n(int64(ceil)))
}

func jitterToRand(jitter interface{}) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("xhr/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("xhr/retry: invalid jitter type")
	}
	return rand.New(s)
}

// NewBackOffWaiter returns a Waiter backed by back-offs from package
// github.com/cenkalti/backoff/v4.
//
// newBackOff is called once per execution, on its first retry, and
// the back-off it returns is kept on the execution for the following
// retries. When the back-off reports backoff.Stop the waiter returns
// zero, so pair it with a Decider that bounds the retries, such as
// Times or Before.
func NewBackOffWaiter(newBackOff func() backoff.BackOff) Waiter {
	if newBackOff == nil {
		panic("xhr/retry: nil back-off constructor")
	}
	return &backOffWaiter{newBackOff: newBackOff}
}

type backOffWaiter struct {
	newBackOff func() backoff.BackOff
}

type backOffKey struct {
	w *backOffWaiter
}

func (w *backOffWaiter) Wait(e *request.Execution) time.Duration {
	key := backOffKey{w}
	b, _ := e.Value(key).(backoff.BackOff)
	if b == nil {
		b = w.newBackOff()
		b.Reset()
		e.SetValue(key, b)
	}
	d := b.NextBackOff()
	if d == backoff.Stop {
		return 0
	}
	return d
}
