package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(true, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(false, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}

func TestComponent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := Component(zap.New(core), "recorder")
	l.Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "recorder", entries[0].ContextMap()["component"])

	core, logs = observer.New(zapcore.InfoLevel)
	Component(zap.New(core), "  ").Info("bare")
	require.Len(t, logs.All(), 1)
	assert.Empty(t, logs.All()[0].ContextMap())
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "short", in: "python", limit: 10, want: "python"},
		{name: "trimmed", in: "  go  ", limit: 10, want: "go"},
		{name: "truncated", in: "kubernetes", limit: 4, want: "kube..."},
		{name: "zero limit", in: "anything", limit: 0, want: ""},
		{name: "runes", in: "résumé", limit: 3, want: "rés..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateForLog(tt.in, tt.limit))
		})
	}
}

func TestNewStderr(t *testing.T) {
	l, err := NewStderr(false, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
