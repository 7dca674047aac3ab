package logger_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/islandlog/islandlog/internal/logger"
)

func plainLogger(buf *bytes.Buffer, level logger.Level) *logger.Logger {
	return logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(level),
		logger.WithColors(false),
	)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := plainLogger(&buf, logger.WARN)

	log.Debug("dropped")
	log.Info("dropped")
	log.Warn("kept")
	log.Error("kept too")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "kept too")
}

func TestPrefixAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := plainLogger(&buf, logger.DEBUG).WithPrefix("store").WithFields(map[string]any{
		"request_id": "abc123",
		"method":     "GET",
	})

	log.Info("snapshot loaded in %dms", 3)

	out := buf.String()
	assert.Contains(t, out, "[store]")
	assert.Contains(t, out, "snapshot loaded in 3ms")
	assert.Contains(t, out, "method=GET request_id=abc123", "fields print in sorted order")
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	base := plainLogger(&buf, logger.DEBUG)
	_ = base.WithField("worker_id", 7)

	base.Info("no fields here")
	assert.NotContains(t, buf.String(), "worker_id")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := plainLogger(&buf, logger.DEBUG).WithPrefix("request")

	ctx := logger.NewContext(context.Background(), log)
	logger.FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "[request] ")

	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
