// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import "os"

// ApplyEnvConfig copies the XHR_* environment variables that are set
// into cfg, skipping those whose flag is in changed. It fails if a
// variable cannot be parsed.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", os.Getenv("XHR_URL"), &cfg.URL)
	s.setString("method", os.Getenv("XHR_METHOD"), &cfg.Method)
	s.setString("data", os.Getenv("XHR_DATA"), &cfg.Data)
	s.setString("log-level", os.Getenv("XHR_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("XHR_LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setDuration("delay", os.Getenv("XHR_DELAY"), &cfg.Delay); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("XHR_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("abort-after", os.Getenv("XHR_ABORT_AFTER"), &cfg.AbortAfter); err != nil {
		return err
	}

	if err := s.setIntFromString("retries", os.Getenv("XHR_RETRIES"), &cfg.Retries); err != nil {
		return err
	}

	if err := s.setBoolFromString("h2c", os.Getenv("XHR_H2C"), &cfg.H2C); err != nil {
		return err
	}
	return s.setBoolFromString("metrics", os.Getenv("XHR_METRICS"), &cfg.Metrics)
}
