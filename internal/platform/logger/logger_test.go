package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewNamed(t *testing.T) {
	for _, env := range []string{"development", "production", "staging"} {
		t.Run(env, func(t *testing.T) {
			log, err := NewNamed(env, "service-lodging")
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(zap.InfoLevel))
		})
	}
}

func TestNewNamed_DebugOnlyInDevelopment(t *testing.T) {
	dev, err := NewNamed("development", "svc")
	require.NoError(t, err)
	prod, err := NewNamed("production", "svc")
	require.NoError(t, err)

	assert.True(t, dev.Core().Enabled(zap.DebugLevel))
	assert.False(t, prod.Core().Enabled(zap.DebugLevel))
}
