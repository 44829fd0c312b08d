package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestRequestIDIsCarriedByContext(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{ServiceName: "bloombuilder", Output: &buf})

	ctx := log.WithRequestID(context.Background(), "req-1")
	log.Error(ctx, "failed to list flowers", errors.New("connection refused"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "bloombuilder", entry["service"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "connection refused", entry["error"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: zerolog.WarnLevel, Output: &buf})
	log.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())
}
