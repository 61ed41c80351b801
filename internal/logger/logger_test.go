package logger_test

import (
	"testing"

	"fieldservice/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("defaults_to_info", func(t *testing.T) {
		l, err := logger.New("", "production")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("honors_level", func(t *testing.T) {
		l, err := logger.New("DEBUG", "development")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("rejects_unknown_level", func(t *testing.T) {
		_, err := logger.New("chatty", "development")
		require.Error(t, err)
	})
}
