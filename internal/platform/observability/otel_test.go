package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for input, want := range cases {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENVIRONMENT", "ci")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "false")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "ci", cfg.Environment)
	assert.False(t, cfg.OTLPInsecure)
	assert.Equal(t, "dev", cfg.ServiceVersion)
	assert.Equal(t, 1.0, cfg.TraceSampleRatio)
}

func TestConfigFromEnv_RejectsSampleRatioOutOfRange(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLE_RATIO", "1.5")
	_, err := ConfigFromEnv()
	require.Error(t, err)
}

func TestConfigValidate_RejectsUnknownLevel(t *testing.T) {
	require.Error(t, Config{LogLevel: "loud", TraceSampleRatio: 1}.Validate())
	require.NoError(t, Config{LogLevel: "warn", TraceSampleRatio: 0.25}.Validate())
}

func TestNewSampler_RootSpans(t *testing.T) {
	params := sdktrace.SamplingParameters{
		ParentContext: context.Background(),
		TraceID:       trace.TraceID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		Name:          "returns.create",
	}
	assert.Equal(t, sdktrace.RecordAndSample, newSampler(1).ShouldSample(params).Decision)
	assert.Equal(t, sdktrace.Drop, newSampler(0).ShouldSample(params).Decision)
}

func TestInstrumentsFallBackWhenNil(t *testing.T) {
	var i *Instruments
	assert.NotNil(t, i.Tracer("test"))
	assert.NotNil(t, i.Meter("test"))
}
