package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "INFO", false)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("symbol", "TCS").Msg("fetched")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "TCS", event["symbol"])
	assert.Equal(t, "fetched", event["message"])
}

func TestNewLogger_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "warn", true)
	require.NoError(t, err)

	log.Warn().Msg("no beta")
	assert.Contains(t, buf.String(), "no beta")
	assert.NotContains(t, buf.String(), "{")
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	for _, level := range []string{"", "loud"} {
		log, err := newLogger(&bytes.Buffer{}, level, false)
		assert.Error(t, err, level)
		assert.Equal(t, zerolog.WarnLevel, log.GetLevel(), level)
	}
}
