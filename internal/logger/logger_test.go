package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Production(t *testing.T) {
	l, err := New("production")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNew_DevelopmentFallback(t *testing.T) {
	t.Setenv("LOG_ENV", "")
	t.Setenv("APP_ENV", "")

	l, err := New("")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("LOG_ENV", "production")

	l, err := New("")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	l, err := New("development")
	require.NoError(t, err)
	assert.Same(t, l, OrNop(l))
}
