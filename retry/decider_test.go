// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gogama/xhr/request"
)

func TestDefaultDecider(t *testing.T) {
	t.Run("retryable status codes", func(t *testing.T) {
		for _, code := range []int{429, 502, 503, 504} {
			e := request.Execution{Response: &http.Response{StatusCode: code}}
			for j := 0; j < DefaultTimes; j++ {
				e.Attempt = j
				assert.True(t, DefaultDecider(&e), "status %d attempt %d", code, j)
			}
			e.Attempt = DefaultTimes
			assert.False(t, DefaultDecider(&e), "status %d attempt %d", code, e.Attempt)
		}
	})
	t.Run("non-retryable status codes", func(t *testing.T) {
		for _, code := range []int{200, 201, 204, 400, 401, 403, 404, 500} {
			e := request.Execution{Response: &http.Response{StatusCode: code}}
			assert.False(t, DefaultDecider(&e), "status %d", code)
		}
	})
	t.Run("transient errors", func(t *testing.T) {
		for _, err := range transientErrs {
			e := request.Execution{Err: err}
			assert.True(t, DefaultDecider(&e), "%v", err)
			e.Attempt = DefaultTimes
			assert.False(t, DefaultDecider(&e), "%v", err)
		}
	})
	t.Run("non-transient errors", func(t *testing.T) {
		for _, err := range nonTransientErrs {
			e := request.Execution{Err: err}
			assert.False(t, DefaultDecider(&e), "%v", err)
		}
	})
}

func TestTransientErr(t *testing.T) {
	for i, err := range transientErrs {
		t.Run(fmt.Sprintf("transientErrs[%d]", i), func(t *testing.T) {
			assert.True(t, TransientErr(&request.Execution{Err: err}))
			assert.True(t, TransientErr(&request.Execution{Err: &url.Error{Op: "Get", Err: err}}))
		})
	}
	for i, err := range nonTransientErrs {
		t.Run(fmt.Sprintf("nonTransientErrs[%d]", i), func(t *testing.T) {
			assert.False(t, TransientErr(&request.Execution{Err: err}))
		})
	}
}

func TestDeciderFunc_AndOr(t *testing.T) {
	yes := DeciderFunc(func(_ *request.Execution) bool { return true })
	no := DeciderFunc(func(_ *request.Execution) bool { return false })
	boom := DeciderFunc(func(_ *request.Execution) bool { panic("must not be evaluated") })
	e := &request.Execution{}
	assert.True(t, yes.And(yes)(e))
	assert.False(t, yes.And(no)(e))
	assert.False(t, no.And(boom)(e))
	assert.True(t, yes.Or(boom)(e))
	assert.True(t, no.Or(yes)(e))
	assert.False(t, no.Or(no)(e))
	assert.True(t, yes.Decide(e))
}

func TestTimes(t *testing.T) {
	assert.False(t, Times(0)(&request.Execution{}))
	assert.True(t, Times(1)(&request.Execution{}))
	assert.False(t, Times(1)(&request.Execution{Attempt: 1}))
	assert.True(t, Times(2)(&request.Execution{Attempt: 1}))
	assert.False(t, Times(2)(&request.Execution{Attempt: 2}))
}

func TestBefore(t *testing.T) {
	e := request.Execution{Start: time.Now(), Attempt: 20}
	before := Before(time.Minute)
	assert.True(t, before(&e))
	e.End = e.Start.Add(2 * time.Minute)
	assert.False(t, before(&e))
}

func TestStatusCode(t *testing.T) {
	assert.False(t, StatusCode()(&request.Execution{}))
	assert.False(t, StatusCode(0)(&request.Execution{}), "no response never matches")
	r := http.Response{StatusCode: 602}
	e := request.Execution{Response: &r}
	assert.False(t, StatusCode()(&e))
	assert.True(t, StatusCode(602)(&e))
	two := StatusCode(509, 602)
	assert.True(t, two(&e))
	r.StatusCode = 509
	assert.True(t, two(&e))
	r.StatusCode = 508
	assert.False(t, two(&e))
}

var (
	transientErrs = []error{
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		syscall.ETIMEDOUT,
	}
	nonTransientErrs = []error{
		nil,
		errors.New("ain't transient"),
		syscall.EHOSTUNREACH,
		syscall.ENETDOWN,
	}
)
