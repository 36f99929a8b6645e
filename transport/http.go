// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/xhr/request"
	"github.com/gogama/xhr/retry"
	"github.com/gogama/xhr/timeout"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

var nopLogger = zerolog.Nop()

// HTTP is a transport that performs request descriptors over HTTP. Its
// zero value is a valid configuration.
//
// The zero value uses http.DefaultClient (from net/http) as the
// HTTPDoer, retry.Never as the retry policy, and timeout.DefaultPolicy
// as the timeout policy.
//
// On top of the HTTPDoer's own features, HTTP reads and buffers the
// whole response body, retries failed attempts according to its retry
// policy, and sets a timeout on each attempt according to its timeout
// policy. HTTP is safe for concurrent use by multiple goroutines.
type HTTP struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer
	// RetryPolicy decides when to retry failed attempts and how long
	// to sleep after a failed attempt before retrying.
	//
	// If RetryPolicy is nil, retry.Never is used.
	RetryPolicy retry.Policy
	// TimeoutPolicy specifies how to set timeouts on individual
	// attempts.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// Logger receives debug logs about attempts and retries.
	//
	// If Logger is nil, nothing is logged.
	Logger *zerolog.Logger
}

// Transfer performs d and returns the final response. It implements
// the lifecycle transport contract on top of Execute.
//
// Any non-nil error is a *url.Error. A non-2XX status code is not an
// error.
func (t *HTTP) Transfer(ctx context.Context, d *request.Descriptor) (*request.Response, error) {
	e, err := t.Execute(ctx, d)
	if err != nil {
		return nil, err
	}
	return &request.Response{
		Status: e.StatusCode(),
		Header: e.Header(),
		Body:   e.Body,
	}, nil
}

// Execute performs d and returns the state of the final attempt,
// following the timeout and retry policies set on t.
//
// The returned Execution is never nil. If an error is returned, the
// Execution's Err field references the same error, and the error is
// always a *url.Error. The url.Error's Timeout method, and the
// Execution's Timeout method, report true if the final attempt timed
// out or if ctx reached its deadline.
//
// Cancelling ctx stops the execution promptly, including while waiting
// to retry.
func (t *HTTP) Execute(ctx context.Context, d *request.Descriptor) (*request.Execution, error) {
	e := request.Execution{
		Descriptor: d,
	}

	doer := t.doer()

	timeoutPolicy := t.TimeoutPolicy
	if timeoutPolicy == nil {
		timeoutPolicy = timeout.DefaultPolicy
	}

	retryPolicy := t.RetryPolicy
	if retryPolicy == nil {
		retryPolicy = retry.Never
	}

	logger := t.logger()
	e.Start = time.Now()

RetryLoop:
	for {
		sendAndReceive(ctx, &e, doer, timeoutPolicy, logger)
		if e.Timeout() {
			e.AttemptTimeouts++
		}
		ctxErr := ctx.Err()
		if ctxErr == context.DeadlineExceeded {
			if e.Err == nil {
				e.Err = urlErrorWrap(d, ctxErr)
			}
			break
		} else if ctxErr != nil {
			e.Err = urlErrorWrap(d, ctxErr)
			break
		} else if retryPolicy.Decide(&e) {
			wait := retryPolicy.Wait(&e)
			logger.Debug().
				Int("attempt", e.Attempt).
				Int("status", e.StatusCode()).
				AnErr("cause", e.Err).
				Dur("wait", wait).
				Msg("retrying")
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				e.Err = urlErrorWrap(d, ctx.Err())
				break RetryLoop
			}
			e.Response = nil
			e.Err = nil
			e.Body = nil
			e.Attempt++
		} else {
			break
		}
	}

	e.End = time.Now()
	return &e, e.Err
}

func sendAndReceive(ctx context.Context, e *request.Execution, doer HTTPDoer, timeoutPolicy timeout.Policy, logger *zerolog.Logger) {
	attemptTimeout := timeoutPolicy.Timeout(e)
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()
	e.Request = e.Descriptor.ToRequest(ctx)
	logger.Debug().
		Str("method", e.Descriptor.Method).
		Str("target", e.Descriptor.Target()).
		Int("attempt", e.Attempt).
		Dur("timeout", attemptTimeout).
		Msg("attempt")
	var err error
	e.Response, err = doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(e.Descriptor, err)
	} else {
		readBody(e, logger)
	}
}

func readBody(e *request.Execution, logger *zerolog.Logger) {
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	closeErr := e.Response.Body.Close()
	if err != nil {
		e.Err = urlErrorWrap(e.Descriptor, multierr.Append(err, closeErr))
	} else if closeErr != nil {
		logger.Debug().Err(closeErr).Msg("closing response body")
	}
}

func (t *HTTP) doer() HTTPDoer {
	if t.HTTPDoer == nil {
		return http.DefaultClient
	}

	return t.HTTPDoer
}

func (t *HTTP) logger() *zerolog.Logger {
	if t.Logger == nil {
		return &nopLogger
	}

	return t.Logger
}

// CloseIdleConnections invokes the same method on the underlying
// HTTPDoer. If the HTTPDoer has no such method, it does nothing.
func (t *HTTP) CloseIdleConnections() {
	if ic, ok := t.doer().(interface{ CloseIdleConnections() }); ok {
		ic.CloseIdleConnections()
	}
}

func urlErrorWrap(d *request.Descriptor, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(d.Method),
		URL: d.Target(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
