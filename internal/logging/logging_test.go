// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("debug", "json", &buf)
		require.NoError(t, err)

		logger.Debug().Str("state", "Opened").Msg("state change")

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
		assert.Equal(t, "debug", m["level"])
		assert.Equal(t, "Opened", m["state"])
		assert.Equal(t, "state change", m["message"])
		assert.Contains(t, m, "time")
	})
	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("info", "console", &buf)
		require.NoError(t, err)

		logger.Info().Str("outcome", "Success").Msg("request done")

		s := buf.String()
		assert.Contains(t, s, "INF")
		assert.Contains(t, s, "request done")
		assert.Contains(t, s, "outcome=Success")
	})
	t.Run("defaults", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("", "", &buf)
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

		logger.Debug().Msg("hidden")
		assert.Empty(t, buf.String())
	})
	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("WARN", "json", &buf)
		require.NoError(t, err)

		logger.Info().Msg("hidden")
		assert.Empty(t, buf.String())
		logger.Warn().Msg("shown")
		assert.Contains(t, buf.String(), "shown")
	})
	t.Run("bad level", func(t *testing.T) {
		_, err := New("loud", "json", &bytes.Buffer{})
		assert.Error(t, err)
	})
	t.Run("bad format", func(t *testing.T) {
		_, err := New("info", "xml", &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"xml"`)
	})
}
