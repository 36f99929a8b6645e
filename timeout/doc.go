// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines per-attempt timeout policies for the HTTP
// transport.
//
// These timeouts bound individual transport attempts. A lifecycle-wide
// timeout is composed by the caller, by aborting the request when a
// timer fires (see xhr.Request.AbortAfter).
package timeout
