package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")

	cfg := ConfigFromEnv("order-worker")
	assert.Equal(t, "order-worker", cfg.ServiceName)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "collector:4318", cfg.OTLPEndpoint)
	assert.False(t, cfg.OTLPInsecure)
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, "order-service", cfg.ServiceName)
	assert.Equal(t, "local", cfg.Environment)

	cfg = Config{ServiceName: "order-api", Environment: "prod"}.withDefaults()
	assert.Equal(t, "order-api", cfg.ServiceName)
	assert.Equal(t, "prod", cfg.Environment)
}

func TestInstruments_FallBackWhenUnconfigured(t *testing.T) {
	var instruments *Instruments
	assert.NotNil(t, instruments.Tracer("orders"))
	assert.NotNil(t, instruments.Meter("orders"))
}

func TestInit_ReturnsWorkingInstruments(t *testing.T) {
	instruments, shutdown, err := Init(context.Background(), Config{ServiceName: "order-api-test"})
	require.NoError(t, err)
	require.NotNil(t, instruments.Logger)
	require.NotNil(t, instruments.TracerProvider)
	require.NotNil(t, instruments.MeterProvider)
	// No collector is running here; flush errors are expected on shutdown.
	_ = shutdown(context.Background())
}
