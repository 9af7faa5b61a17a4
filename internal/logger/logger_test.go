package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(Config{Level: "info", Format: "json", ServiceName: "member-search"}, &buf)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("strategy", "split").Msg("search")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "search", entry["message"])
	assert.Equal(t, "split", entry["strategy"])
	assert.Equal(t, "member-search", entry["service"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewWithWriter_InvalidConfig(t *testing.T) {
	cases := []Config{
		{Level: "loud", Format: "json", ServiceName: "x"},
		{Level: "info", Format: "xml", ServiceName: "x"},
		{Level: "info", Format: "json"},
	}
	for _, cfg := range cases {
		_, err := NewWithWriter(cfg, &bytes.Buffer{})
		assert.Error(t, err, "%+v", cfg)
	}
}
