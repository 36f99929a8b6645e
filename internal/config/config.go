// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config holds the xhrdemo configuration and its layering of
// defaults, a TOML file, XHR_* environment variables and command line
// flags.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gogama/xhr"
	"github.com/gogama/xhr/internal/logging"
	"github.com/gogama/xhr/retry"
	"github.com/gogama/xhr/timeout"
	"github.com/gogama/xhr/transport"
	"github.com/rs/zerolog"
)

// Config is the effective xhrdemo configuration.
type Config struct {
	URL        string
	Method     string
	Data       string
	Delay      time.Duration
	Timeout    time.Duration
	Retries    int
	AbortAfter time.Duration
	H2C        bool
	LogLevel   string
	LogFormat  string
	Metrics    bool
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Method:    http.MethodGet,
		Delay:     xhr.DefaultDelay,
		Timeout:   5 * time.Second,
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("url is required")
	}
	if c.Method == "" {
		return errors.New("method is required")
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative: %s", c.Delay)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive: %s", c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative: %d", c.Retries)
	}
	if c.AbortAfter < 0 {
		return fmt.Errorf("abort-after must not be negative: %s", c.AbortAfter)
	}
	if c.H2C && strings.HasPrefix(strings.ToLower(c.URL), "https:") {
		return errors.New("h2c cannot be used with an https url")
	}
	if _, err := logging.New(c.LogLevel, c.LogFormat, nil); err != nil {
		return err
	}
	return nil
}

// HTTPTransport builds the HTTP transport described by c.
//
// With zero retries the transport never retries. Otherwise it retries
// up to Retries times on throttling and gateway statuses and on
// transient errors.
func (c *Config) HTTPTransport(logger *zerolog.Logger) *transport.HTTP {
	t := &transport.HTTP{
		RetryPolicy:   retry.Never,
		TimeoutPolicy: timeout.Fixed(c.Timeout),
		Logger:        logger,
	}
	if c.Retries > 0 {
		t.RetryPolicy = retry.NewPolicy(retry.Times(c.Retries).And(retryable), retry.DefaultWaiter)
	}
	if c.H2C {
		t.HTTPDoer = transport.NewH2CDoer()
	}
	return t
}

var retryable = retry.StatusCode(429, 502, 503, 504).Or(retry.TransientErr)

// Client builds the lifecycle client described by c. A zero Delay
// means the request moves to Loading as soon as it is sent.
func (c *Config) Client(logger *zerolog.Logger, handlers *xhr.HandlerGroup) *xhr.Client {
	delay := c.Delay
	if delay == 0 {
		delay = -1
	}
	return &xhr.Client{
		Transport: c.HTTPTransport(logger),
		Delay:     delay,
		Handlers:  handlers,
		Logger:    logger,
	}
}

// configSetter applies layered values unless the matching flag was set
// explicitly on the command line.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
