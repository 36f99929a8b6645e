// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with durations as strings, so that a TOML
// file can say delay = "250ms".
type FileConfig struct {
	URL        string `toml:"url"`
	Method     string `toml:"method"`
	Data       string `toml:"data"`
	Delay      string `toml:"delay"`
	Timeout    string `toml:"timeout"`
	Retries    *int   `toml:"retries"`
	AbortAfter string `toml:"abort_after"`
	H2C        *bool  `toml:"h2c"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
	Metrics    *bool  `toml:"metrics"`
}

// LoadFileConfig reads and parses the TOML file at path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultPath returns $HOME/.xhr/config.toml, or the empty string if
// the home directory is unknown.
func DefaultPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".xhr", "config.toml")
	}
	return ""
}

// FileExists reports whether a file exists at p.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// ApplyFileConfig copies the values set in fc into cfg, skipping those
// whose flag is in changed.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", fc.URL, &cfg.URL)
	s.setString("method", fc.Method, &cfg.Method)
	s.setString("data", fc.Data, &cfg.Data)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)

	if err := s.setDuration("delay", fc.Delay, &cfg.Delay); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("abort-after", fc.AbortAfter, &cfg.AbortAfter); err != nil {
		return err
	}

	s.setInt("retries", fc.Retries, &cfg.Retries)

	s.setBool("h2c", fc.H2C, &cfg.H2C)
	s.setBool("metrics", fc.Metrics, &cfg.Metrics)

	return nil
}
