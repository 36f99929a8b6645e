// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// Not means a retry is very unlikely to help. Every other category
// means a retry has some prospect of success.
type Category int

const (
	// Not is the category of nil and of every non-transient error.
	Not Category = iota
	// Timeout is a client-side timeout: the error, or an error it
	// wraps, has a Timeout method reporting true.
	Timeout
	// ConnRefused means the remote host refused the connection
	// (syscall.ECONNREFUSED). A service that is restarting briefly
	// refuses connections, so this is treated as transient.
	ConnRefused
	// ConnReset means the remote host reset an established connection
	// (syscall.ECONNRESET), typically because the service or a load
	// balancer in front of it went away mid-request.
	ConnReset
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
}

// String returns the name of the category.
func (c Category) String() string {
	return categoryNames[int(c)]
}

// Categorize returns the transience category of err, looking through
// wrapped errors. Timeout takes precedence over the connection
// categories. Temporary methods are ignored: their meaning is too
// loosely defined to rely on.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var t timeouter
	if errors.As(err, &t) && t.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}

	return Not
}

type timeouter interface {
	Timeout() bool
}
