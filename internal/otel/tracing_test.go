package otel

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		name, arg  string
		wantPrefix string
	}{
		{name: "always_on", wantPrefix: "AlwaysOnSampler"},
		{name: "always_off", wantPrefix: "AlwaysOffSampler"},
		{name: "traceidratio", arg: "0.25", wantPrefix: "TraceIDRatioBased{0.25}"},
		{name: "parentbased_traceidratio", arg: "0.5", wantPrefix: "ParentBased{root:TraceIDRatioBased{0.5}"},
		{name: "parentbased_always_off", wantPrefix: "ParentBased{root:AlwaysOffSampler"},
		{name: "", wantPrefix: "ParentBased{root:AlwaysOnSampler"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := samplerFor(tt.name, tt.arg).Description()
			assert.True(t, strings.HasPrefix(desc, tt.wantPrefix), desc)
		})
	}
}

func TestParseRatio(t *testing.T) {
	assert.Equal(t, 0.1, parseRatio("0.1"))
	assert.Equal(t, 1.0, parseRatio(""))
	assert.Equal(t, 1.0, parseRatio("abc"))
	assert.Equal(t, 1.0, parseRatio("7"))
}

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")
	core, logs := observer.New(zap.InfoLevel)

	shutdown, err := Init(context.Background(), zap.New(core))
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	entries := logs.FilterMessage("tracing_configured").All()
	require.Len(t, entries, 1)
	assert.Equal(t, false, entries[0].ContextMap()["tracing_enabled"])
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")
	core, logs := observer.New(zap.InfoLevel)

	shutdown, err := Init(context.Background(), zap.New(core))
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("tracing_init_failed").Len())
}
