// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package metrics exports Prometheus metrics about request lifecycles.

A Collector is an event handler. Install it in the handler group of a
Client to count the requests the client creates:

	reg := prometheus.NewRegistry()
	c, err := metrics.NewCollector(reg, "xhr")
	...
	handlers := &xhr.HandlerGroup{}
	c.Install(handlers)
	client := &xhr.Client{Handlers: handlers}
*/
package metrics
