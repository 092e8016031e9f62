package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func TestGRPCEndpointStripsScheme(t *testing.T) {
	assert.Equal(t, "collector:4317", grpcEndpoint("http://collector:4317"))
	assert.Equal(t, "collector:4317", grpcEndpoint("https://collector:4317"))
	assert.Equal(t, "collector:4317", grpcEndpoint("collector:4317"))
}

func TestNewResourceCarriesServiceAttributes(t *testing.T) {
	res, err := newResource(context.Background(), Config{
		ServiceName:    "multistepform",
		ServiceVersion: "0.1.0",
		Environment:    "test",
	})
	require.NoError(t, err)

	value, ok := res.Set().Value(semconv.ServiceNamespaceKey)
	require.True(t, ok)
	assert.Equal(t, "multistepform", value.AsString())

	value, ok = res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "multistepform", value.AsString())
}
