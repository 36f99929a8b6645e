// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies transport errors as transient or not.
// The HTTP transport's retry deciders use it, and it is equally handy
// for bucketing failure outcomes in logs or metrics.
//
// The package depends only on the standard library.
package transient
