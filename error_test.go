// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceError(t *testing.T) {
	err := &SequenceError{Op: "Send", State: Unsent}
	assert.EqualError(t, err, "xhr: invalid sequence: Send in state Unsent")
	assert.True(t, errors.Is(err, ErrInvalidSequence))
	assert.False(t, errors.Is(err, ErrAborted))

	var target *SequenceError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, "Send", target.Op)
}

func TestTransportError(t *testing.T) {
	err := &TransportError{Method: "GET", Target: "http://example.com", Err: syscall.ECONNREFUSED}
	assert.EqualError(t, err, `xhr: GET "http://example.com": `+syscall.ECONNREFUSED.Error())
	assert.Equal(t, syscall.ECONNREFUSED, errors.Unwrap(err))
	assert.True(t, errors.Is(err, syscall.ECONNREFUSED))
	assert.False(t, errors.Is(err, context.Canceled))
}
