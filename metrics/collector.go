// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"io"
	"strings"

	"github.com/gogama/xhr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// A Collector records request lifecycle metrics. It implements
// xhr.Handler and is safe for concurrent use.
type Collector struct {
	requests    *prometheus.CounterVec
	inFlight    prometheus.Gauge
	duration    *prometheus.HistogramVec
	transitions *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg
// under the given namespace:
//
//	<namespace>_requests_total{outcome}
//	<namespace>_requests_in_flight
//	<namespace>_request_duration_seconds{outcome}
//	<namespace>_state_transitions_total{state}
//
// Outcome and state label values are the lower-case tag and state
// names.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Number of requests that became done, by outcome.",
		}, []string{"outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_in_flight",
			Help:      "Number of requests sent and not done yet.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time from send to done, by outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "Number of state changes, by new state.",
		}, []string{"state"}),
	}

	for _, m := range []prometheus.Collector{c.requests, c.inFlight, c.duration, c.transitions} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Install adds c to the StateChange handler chain of g.
func (c *Collector) Install(g *xhr.HandlerGroup) {
	g.PushBack(xhr.StateChange, c)
}

// Handle records a state change. Other events are ignored.
func (c *Collector) Handle(evt xhr.Event, t *xhr.Transition) {
	if evt != xhr.StateChange {
		return
	}

	c.transitions.WithLabelValues(strings.ToLower(t.State.Name())).Inc()
	switch t.State {
	case xhr.HeadersReceived:
		c.inFlight.Inc()
	case xhr.Done:
		outcome := strings.ToLower(t.Outcome.Tag.Name())
		c.requests.WithLabelValues(outcome).Inc()
		if t.From >= xhr.HeadersReceived {
			c.inFlight.Dec()
			c.duration.WithLabelValues(outcome).Observe(t.Request.Duration().Seconds())
		}
	}
}

// WriteText writes every metric family gathered from g to w in the
// Prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
