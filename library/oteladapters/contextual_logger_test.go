package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/fixed-capacity-library-go/library/oteladapters"
)

func Test_SlogBridgeLoggerWithHandler_AllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message", "book_id", 3)
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG","msg":"debug message"`)
	assert.Contains(t, output, `"level":"INFO","msg":"info message","book_id":3`)
	assert.Contains(t, output, `"level":"WARN","msg":"warn message"`)
	assert.Contains(t, output, `"level":"ERROR","msg":"error message"`)
}

func Test_SlogBridgeLogger_WithLoggerProvider(t *testing.T) {
	// arrange
	logger := oteladapters.NewSlogBridgeLogger("test", otelslog.WithLoggerProvider(noop.NewLoggerProvider()))

	// act & assert
	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "library operation completed", "operation", "add_book")
	})
}

func Test_OTelLogger_ArgumentHandling(t *testing.T) {
	// arrange
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))
	ctx := context.Background()

	// act & assert
	assert.NotPanics(t, func() {
		logger.DebugContext(ctx, "debug message", "book_id", 1, "score", int64(190), "ratio", 0.5, "ok", true)
		logger.InfoContext(ctx, "info message", "patron_id", "2", "dangling")
		logger.WarnContext(ctx, "warn message", 42, "no string key")
		logger.ErrorContext(ctx, "error message")
	})
}
