package contextkeys

import (
	"context"
	"testing"

	"property-service/internal/core/port"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	port.LoggerPort
	infos []string
}

func (r *recordingLogger) Info(msg string, _ port.Fields) { r.infos = append(r.infos, msg) }

func TestLoggerFromContext_FallsBackToNoop(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	assert.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.WithFields(port.Fields{"k": "v"}).Info("ignored", nil)
	})
}

func TestLoggerFromContext_ReturnsStoredLogger(t *testing.T) {
	rec := &recordingLogger{}
	ctx := ContextWithLogger(context.Background(), rec)

	LoggerFromContext(ctx).Info("hello", nil)
	assert.Equal(t, []string{"hello"}, rec.infos)
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))

	ctx := ContextWithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", TraceIDFromContext(ctx))
}
