package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupOTelSDK(t *testing.T) {
	t.Run("disabled without an endpoint", func(t *testing.T) {
		t.Setenv(EndpointEnv, "")
		assert.False(t, Enabled())

		shutdown, err := SetupOTelSDK(context.Background(), "options-analyzer-test")
		require.NoError(t, err)
		require.NotNil(t, shutdown)
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("enabled with an endpoint", func(t *testing.T) {
		t.Setenv(EndpointEnv, "http://localhost:4318")
		assert.True(t, Enabled())
	})
}
