package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/edutrack/core/internal/infrastructure/config"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LoggerConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}

func TestNew_Console(t *testing.T) {
	l, err := New(config.LoggerConfig{Level: "debug", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	assert.NotNil(t, l.SugaredLogger)
}

func TestLogMutation(t *testing.T) {
	l, logs := observed()

	l.WithComponent("courses").LogMutation("create_course", map[string]interface{}{"course_id": "c1"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Dataset mutated", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "courses", fields["component"])
	assert.Equal(t, "create_course", fields["action"])
	assert.Equal(t, "c1", fields["course_id"])
}

func TestLogStoreEvent_WarnsOnError(t *testing.T) {
	l, logs := observed()

	l.LogStoreEvent("load_fallback", "/tmp/x.json", errors.New("boom"))
	l.LogStoreEvent("saved", "/tmp/x.json", nil)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, "boom", logs.All()[0].ContextMap()["error"])
	assert.Equal(t, zapcore.DebugLevel, logs.All()[1].Level)
}

func TestWithError(t *testing.T) {
	l, logs := observed()

	l.WithComponent("http").WithError(errors.New("disk full")).Errorw("save failed")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "disk full", fields["error"])
	assert.Equal(t, "http", fields["component"])
}
