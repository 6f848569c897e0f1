package otel

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), zerolog.New(&buf))

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"tracing_enabled":false`)
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")

	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), zerolog.New(&buf))

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "tracing_init_failed")
}

func TestParseRatio(t *testing.T) {
	tests := []struct {
		arg  string
		want float64
	}{
		{"0.25", 0.25},
		{"1", 1.0},
		{"", 1.0},
		{"abc", 1.0},
		{"1.5", 1.0},
		{"-0.1", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRatio(tt.arg))
		})
	}
}

func TestSamplerFor(t *testing.T) {
	assert.Contains(t, samplerFor("always_on", "").Description(), "AlwaysOn")
	assert.Contains(t, samplerFor("always_off", "").Description(), "AlwaysOff")
	assert.Contains(t, samplerFor("traceidratio", "0.5").Description(), "TraceIDRatioBased{0.5}")
	assert.Contains(t, samplerFor("unknown", "").Description(), "ParentBased")
}
