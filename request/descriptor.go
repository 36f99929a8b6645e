// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	urlpkg "net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/http/httpguts"
	"golang.org/x/net/idna"
)

var template, _ = http.NewRequest("GET", "", nil)

// A Descriptor describes the request a lifecycle will perform: the
// method, the target, and the body supplied when the request is sent.
//
// The field structure loosely mirrors http.Request, but only keeps the
// parts a transport needs to perform a single logical request.
type Descriptor struct {
	// Method is the request method (GET, POST, PUT, etc.). It is never
	// empty on a descriptor made by NewDescriptor.
	Method string

	// URL is the parsed request target. It may be relative, in which
	// case the transport decides how to resolve it.
	URL *urlpkg.URL

	// Async records the caller's asynchronous flag. It is informational
	// only: lifecycles always run asynchronously.
	Async bool

	// Header holds the request headers set while the request was
	// opened.
	Header http.Header

	// Body is the pre-buffered request body. It is nil until the
	// request is sent, and stays nil if the request was sent without a
	// body.
	Body []byte
}

// NewDescriptor returns a new Descriptor given a method, a target and
// the caller's asynchronous flag.
//
// An empty method means GET. The method must be a valid HTTP token. The
// target is parsed as a URL; a non-ASCII host name is converted to its
// ASCII (punycode) form, and an empty port ("host:") is removed.
func NewDescriptor(method, target string, async bool) (*Descriptor, error) {
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("xhr/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(target)
	if err != nil {
		return nil, err
	}
	u.Host, err = normalizeHost(u.Host)
	if err != nil {
		return nil, fmt.Errorf("xhr/request: invalid host in %q: %w", target, err)
	}
	return &Descriptor{
		Method: method,
		URL:    u,
		Async:  async,
		Header: make(http.Header),
	}, nil
}

// Target returns the request target as a string.
func (d *Descriptor) Target() string {
	if d.URL == nil {
		return ""
	}
	return d.URL.String()
}

// SendsBody reports whether the body is transmitted when the
// descriptor is turned into an HTTP request. GET and HEAD requests
// never carry a body, even if one was supplied.
func (d *Descriptor) SendsBody() bool {
	if len(d.Body) == 0 {
		return false
	}
	return d.Method != "GET" && d.Method != "HEAD"
}

// Clone returns a deep copy of d.
func (d *Descriptor) Clone() *Descriptor {
	d2 := new(Descriptor)
	*d2 = *d
	if d.URL != nil {
		u := *d.URL
		if d.URL.User != nil {
			user := *d.URL.User
			u.User = &user
		}
		d2.URL = &u
	}
	d2.Header = d.Header.Clone()
	if d.Body != nil {
		d2.Body = append([]byte(nil), d.Body...)
	}
	return d2
}

// ToRequest creates the HTTP request for one attempt at performing the
// descriptor. The context of the new request is set to ctx, which may
// not be nil.
//
// When a body is sent and no Content-Type header was set, the content
// type defaults to application/json.
func (d *Descriptor) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = d.Method
	r.URL = d.URL
	r.Host = d.URL.Host
	r.Header = d.Header.Clone()
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	if d.SendsBody() {
		body := d.Body
		r.Body = io.NopCloser(bytes.NewReader(body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		r.ContentLength = int64(len(body))
		if r.Header.Get("Content-Type") == "" {
			r.Header.Set("Content-Type", "application/json")
		}
	}
	return r
}

func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// hasPort is lifted verbatim from net/http/http.go
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

func normalizeHost(host string) (string, error) {
	if hasPort(host) {
		host = strings.TrimSuffix(host, ":")
	}
	if isASCII(host) {
		return host, nil
	}
	name, port := host, ""
	if hasPort(host) {
		var err error
		name, port, err = net.SplitHostPort(host)
		if err != nil {
			return "", err
		}
	}
	name, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return "", err
	}
	if port != "" {
		return net.JoinHostPort(name, port), nil
	}
	return name, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
