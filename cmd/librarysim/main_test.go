package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func givenConfig(modifiers ...func(*Config)) Config {
	cfg := Config{LogLevel: slog.LevelInfo, LogFormat: logFormatJSON}
	for _, modify := range modifiers {
		modify(&cfg)
	}

	return cfg
}

func Test_Run_DefaultScenario(t *testing.T) {
	// arrange
	var out bytes.Buffer

	// act
	err := run(context.Background(), givenConfig(), &out, io.Discard)

	// assert
	require.NoError(t, err)
	transcript := out.String()

	assert.Contains(t, transcript, "[The Hobbit,J.R.R. Tolkien,1937,26] -> id -1", "the 11th book does not fit")
	assert.Contains(t, transcript, "Georg Chrysler -> id -1", "the 11th patron does not fit")
	assert.Contains(t, transcript, "borrow book 5 by patron 3: true")
	assert.Contains(t, transcript, "return book 5: available true")
	assert.Contains(t, transcript, "return book 4: available true")
	assert.Contains(t, transcript, "borrow book 10 by patron 3: false")
	assert.Contains(t, transcript, "borrow book -3 by patron 3: false")
	assert.Contains(t, transcript, "borrow book 2 by patron 3: true")
	assert.Contains(t, transcript, "borrow book 3 by patron 3: false", "the borrow limit is reached")
	assert.Contains(t, transcript, "suggest to patron 9: [Harry Potter and the Goblet of Fire,J.K. Rowling,2000,24]")
	assert.Contains(t, transcript, "suggest to patron 10: no book found")
	assert.Contains(t, transcript, "3 Jonathan Gropp, borrowed 3/3")
	assert.NotContains(t, transcript, "::JOURNAL::")
	assert.NotContains(t, transcript, "::METRICS::")
}

func Test_Run_PrintsJournalAndBorrowHistory(t *testing.T) {
	// arrange
	var out bytes.Buffer
	cfg := givenConfig(func(c *Config) { c.PrintJournal = true })

	// act
	err := run(context.Background(), cfg, &out, io.Discard)

	// assert
	require.NoError(t, err)
	transcript := out.String()

	// 10 books + 10 patrons + 4 borrows + 1 return + 2 rejected borrows; invalid ids record nothing
	assert.Contains(t, transcript, "::JOURNAL:: 27 events, max sequence number 27")
	// registration, 4 borrows, 1 return and 2 rejected borrows; the last rejection is the last event overall
	assert.Contains(t, transcript, "patron 3: borrowed now [0 1 2], total 4, failed 2, events 8, max sequence number 27")
	assert.NotContains(t, transcript, "patron 9: borrowed now", "suggestions leave no circulation events")
}

func Test_Run_WritesObservabilitySummary(t *testing.T) {
	// arrange
	var out bytes.Buffer
	cfg := givenConfig(func(c *Config) { c.ObservabilityEnabled = true })

	// act
	err := run(context.Background(), cfg, &out, io.Discard)

	// assert
	require.NoError(t, err)
	transcript := out.String()

	assert.Contains(t, transcript, "::METRICS::")
	assert.Contains(t, transcript, "library_operation_calls_total{operation=add_book,status=success} 10")
	assert.Contains(t, transcript, "library_operation_calls_total{operation=add_book,status=capacity_exceeded} 1")
	assert.Contains(t, transcript, "library_operation_calls_total{operation=borrow_book,status=success} 4")
	assert.Contains(t, transcript, "library_operation_calls_total{operation=borrow_book,status=rejected} 2")
	assert.Contains(t, transcript, "library_operation_calls_total{operation=borrow_book,status=invalid_id} 2")
	assert.Contains(t, transcript, "::SPANS::")
	assert.Contains(t, transcript, "library.borrow_book ok 4")
	assert.Contains(t, transcript, "library.borrow_book 4", "rejections keep the span status unset")
	// 34 library operations log start and outcome inside their span, 13 scenario steps log outside any span
	assert.Contains(t, transcript, "::LOGS:: 81 records, 68 with trace context")
}

func Test_Run_TextLogsGoToLogOutput(t *testing.T) {
	// arrange
	var out, logs bytes.Buffer
	cfg := givenConfig(func(c *Config) { c.LogFormat = logFormatText })

	// act
	err := run(context.Background(), cfg, &out, &logs)

	// assert
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "library operation rejected")
	assert.NotContains(t, out.String(), "library operation rejected")
}

func Test_Run_DebugLevelLogsScenarioSteps(t *testing.T) {
	// arrange
	var logs bytes.Buffer
	cfg := givenConfig(func(c *Config) { c.LogLevel = slog.LevelDebug })

	// act
	err := run(context.Background(), cfg, io.Discard, &logs)

	// assert
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"msg":"scenario step","operation":"suggest","book_id":0,"patron_id":10`)
	assert.Contains(t, logs.String(), `"msg":"scenario step","operation":"report"`)
}

func Test_Run_CanceledContext(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	err := run(ctx, givenConfig(), io.Discard, io.Discard)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Run_UnknownScenarioFile(t *testing.T) {
	// act
	err := run(context.Background(), givenConfig(func(c *Config) { c.ScenarioPath = "testdata/missing.yaml" }), io.Discard, io.Discard)

	// assert
	assert.ErrorContains(t, err, "testdata/missing.yaml")
}
