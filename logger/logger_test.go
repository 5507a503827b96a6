package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize_Console(t *testing.T) {
	err := Initialize(false, "info")
	require.NoError(t, err)
	require.NotNil(t, Logger)
	assert.False(t, JSONOutput)

	// Should not panic
	Infow("test message", FieldURI, "file:///a.json")
	Cleanup()
}

func TestInitialize_JSON(t *testing.T) {
	err := Initialize(true, "debug")
	require.NoError(t, err)
	require.NotNil(t, Logger)
	assert.True(t, JSONOutput)
	Cleanup()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zap.DebugLevel},
		{"info", zap.InfoLevel},
		{"warn", zap.WarnLevel},
		{"warning", zap.WarnLevel},
		{"error", zap.ErrorLevel},
		{"", zap.InfoLevel},
		{"bogus", zap.InfoLevel},
		{"DEBUG", zap.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestNopLoggerBeforeInitialize(t *testing.T) {
	// The package-level logger must be safe to use before Initialize
	saved := Logger
	defer func() { Logger = saved }()

	Logger = zap.NewNop().Sugar()
	Infow("should not panic")
	Errorw("should not panic either", FieldError, "boom")
}
