// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"net/http"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecution_StatusCode(t *testing.T) {
	e := &Execution{}
	require.Nil(t, e.Response)
	assert.Equal(t, 0, e.StatusCode())
	e.Response = &http.Response{StatusCode: 418}
	assert.Equal(t, 418, e.StatusCode())
}

func TestExecution_Header(t *testing.T) {
	e := &Execution{}
	assert.Nil(t, e.Header())
	assert.Empty(t, e.Header().Get("Foo"))
	h := http.Header{"Foo": []string{"bar"}}
	e.Response = &http.Response{Header: h}
	assert.Equal(t, "bar", e.Header().Get("Foo"))
}

func TestExecution_TimeMethods(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		e := &Execution{}
		assert.False(t, e.Started())
		assert.False(t, e.Ended())
		assert.Equal(t, time.Duration(0), e.Duration())
	})
	t.Run("in flight", func(t *testing.T) {
		e := &Execution{Start: time.Now()}
		time.Sleep(2 * time.Millisecond)
		assert.True(t, e.Started())
		assert.False(t, e.Ended())
		assert.GreaterOrEqual(t, e.Duration(), 2*time.Millisecond)
	})
	t.Run("ended", func(t *testing.T) {
		start := time.Now()
		e := &Execution{Start: start, End: start.Add(time.Second)}
		assert.True(t, e.Ended())
		assert.Equal(t, time.Second, e.Duration())
		time.Sleep(time.Millisecond)
		assert.Equal(t, time.Second, e.Duration())
	})
}

func TestExecution_Timeout(t *testing.T) {
	assert.False(t, (&Execution{}).Timeout())
	assert.False(t, (&Execution{Err: errors.New("foo")}).Timeout())
	assert.True(t, (&Execution{Err: syscall.ETIMEDOUT}).Timeout())
	assert.True(t, (&Execution{Err: &url.Error{Op: "Get", Err: syscall.ETIMEDOUT}}).Timeout())
}

func TestExecution_Value(t *testing.T) {
	e := &Execution{}
	assert.Nil(t, e.Value(fooKey{}))
	e.SetValue(fooKey{}, "ham")
	e.SetValue(barKey{}, "eggs")
	assert.Equal(t, "ham", e.Value(fooKey{}))
	assert.Equal(t, "eggs", e.Value(barKey{}))
	e.SetValue(fooKey{}, "spam")
	assert.Equal(t, "spam", e.Value(fooKey{}))
	assert.Equal(t, "eggs", e.Value(barKey{}))
}

type fooKey struct{}

type barKey struct{}
