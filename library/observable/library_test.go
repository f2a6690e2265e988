package observable_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/fixed-capacity-library-go/library"
	"github.com/AntonStoeckl/fixed-capacity-library-go/library/observable"
	. "github.com/AntonStoeckl/fixed-capacity-library-go/testutil/observability" //nolint:revive
)

type fixture struct {
	lib     *observable.Library
	metrics *MetricsCollectorSpy
	tracing *TracingCollectorSpy
	logs    *LogHandlerSpy
}

func givenObservableLibrary(t *testing.T, bookCapacity, maxBorrowed, patronCapacity int) fixture {
	t.Helper()

	core, err := library.NewLibrary(bookCapacity, maxBorrowed, patronCapacity)
	require.NoError(t, err)

	f := fixture{
		metrics: NewMetricsCollectorSpy(),
		tracing: NewTracingCollectorSpy(),
		logs:    NewLogHandlerSpy(false),
	}

	f.lib, err = observable.NewLibrary(
		core,
		observable.WithMetrics(f.metrics),
		observable.WithTracing(f.tracing),
		observable.WithContextualLogging(slog.New(f.logs)),
	)
	require.NoError(t, err)

	return f
}

func callsWithStatus(f fixture, operation, status string) int {
	return f.metrics.CountCounter(observable.OperationCallsMetric, map[string]string{
		observable.LogAttrOperation: operation,
		observable.LogAttrStatus:    status,
	})
}

func Test_NewLibrary_NilCore(t *testing.T) {
	// act
	lib, err := observable.NewLibrary(nil)

	// assert
	assert.ErrorIs(t, err, observable.ErrNilLibrary)
	assert.Nil(t, lib)
}

func Test_AddBook_Statuses(t *testing.T) {
	// arrange
	f := givenObservableLibrary(t, 1, 1, 1)
	ctx := context.Background()
	book := library.NewBook("Momo", "Michael Ende", 1973, 6, 8, 10)

	// act
	firstID := f.lib.AddBook(ctx, book)
	secondID := f.lib.AddBook(ctx, book)
	fullID := f.lib.AddBook(ctx, library.NewBook("Other", "Some Author", 2000, 1, 1, 1))
	nilID := f.lib.AddBook(ctx, nil)

	// assert
	assert.Equal(t, []int{0, 0, library.NoID, library.NoID}, []int{firstID, secondID, fullID, nilID})
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationAddBook, observable.StatusSuccess))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationAddBook, observable.StatusIdempotent))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationAddBook, observable.StatusCapacityExceeded))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationAddBook, observable.StatusRejected))
	assert.Len(t, f.metrics.DurationRecords(), 4)
}

func Test_RegisterPatron_Statuses(t *testing.T) {
	// arrange
	f := givenObservableLibrary(t, 1, 1, 1)
	ctx := context.Background()
	patron := library.NewPatron("Yoav", "Cohen", 9, 7, 6, 180)

	// act
	f.lib.RegisterPatron(ctx, patron)
	f.lib.RegisterPatron(ctx, patron)
	f.lib.RegisterPatron(ctx, library.NewPatron("Hadas", "Golan", 7, 9, 8, 164))

	// assert
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationRegisterPatron, observable.StatusSuccess))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationRegisterPatron, observable.StatusIdempotent))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationRegisterPatron, observable.StatusCapacityExceeded))
}

func Test_BorrowBook_RecordsOutcomeAndRejectionReasons(t *testing.T) {
	// arrange
	f := givenObservableLibrary(t, 2, 1, 1)
	ctx := context.Background()
	bookID := f.lib.AddBook(ctx, library.NewBook("A", "Some Author", 2000, 1, 1, 1))
	patronID := f.lib.RegisterPatron(ctx, library.NewPatron("Easy", "Reader", 1, 1, 1, 1))

	// act
	borrowed := f.lib.BorrowBook(ctx, bookID, patronID)
	again := f.lib.BorrowBook(ctx, bookID, patronID)
	invalid := f.lib.BorrowBook(ctx, 5, patronID)

	// assert
	assert.True(t, borrowed)
	assert.False(t, again)
	assert.False(t, invalid)
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationBorrowBook, observable.StatusSuccess))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationBorrowBook, observable.StatusRejected))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationBorrowBook, observable.StatusInvalidID))

	reasonCount := func(reason string) int {
		return f.metrics.CountCounter(observable.BorrowRejectionsMetric, map[string]string{observable.LogAttrReason: reason})
	}
	assert.Equal(t, 1, reasonCount(observable.ReasonBookNotAvailable))
	assert.Equal(t, 1, reasonCount(observable.ReasonBorrowLimitReached))
	assert.Equal(t, 0, reasonCount(observable.ReasonBookNotEnjoyed))

	attrs := f.logs.FindLog(slog.LevelInfo, observable.LogMsgOperationRejected)
	require.NotNil(t, attrs)
	assert.Equal(t, observable.OperationBorrowBook, attrs[observable.LogAttrOperation].String())
	assert.NotContains(t, attrs[observable.LogAttrError].String(), "\n")
}

func Test_ReturnBook_Statuses(t *testing.T) {
	// arrange
	f := givenObservableLibrary(t, 1, 1, 1)
	ctx := context.Background()
	bookID := f.lib.AddBook(ctx, library.NewBook("A", "Some Author", 2000, 1, 1, 1))
	patronID := f.lib.RegisterPatron(ctx, library.NewPatron("Easy", "Reader", 1, 1, 1, 1))
	require.True(t, f.lib.BorrowBook(ctx, bookID, patronID))
	f.logs.Reset()

	// act
	f.lib.ReturnBook(ctx, bookID)
	f.lib.ReturnBook(ctx, bookID)
	f.lib.ReturnBook(ctx, 7)

	// assert
	assert.True(t, f.lib.Core().IsBookAvailable(bookID))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationReturnBook, observable.StatusSuccess))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationReturnBook, observable.StatusIdempotent))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationReturnBook, observable.StatusInvalidID))
	assert.Equal(t, 4, f.logs.RecordCount(), "the invalid return is not logged")
}

func Test_SuggestBook_Statuses(t *testing.T) {
	// arrange
	f := givenObservableLibrary(t, 2, 1, 2)
	ctx := context.Background()
	best := library.NewBook("Best", "Some Author", 2000, 3, 3, 3)
	f.lib.AddBook(ctx, library.NewBook("Good", "Some Author", 2000, 1, 1, 1))
	f.lib.AddBook(ctx, best)
	easyID := f.lib.RegisterPatron(ctx, library.NewPatron("Easy", "Reader", 1, 1, 1, 1))
	pickyID := f.lib.RegisterPatron(ctx, library.NewPatron("Picky", "Reader", 1, 1, 1, 100))

	// act
	suggestion, found := f.lib.SuggestBook(ctx, easyID)
	_, pickyFound := f.lib.SuggestBook(ctx, pickyID)
	_, invalidFound := f.lib.SuggestBook(ctx, 9)

	// assert
	assert.True(t, found)
	assert.Same(t, best, suggestion)
	assert.False(t, pickyFound)
	assert.False(t, invalidFound)
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationSuggestBook, observable.StatusSuccess))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationSuggestBook, observable.StatusNoMatch))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationSuggestBook, observable.StatusInvalidID))

	values := f.metrics.ValueRecords()
	require.Len(t, values, 1)
	assert.Equal(t, observable.SuggestionScoreMetric, values[0].Metric)
	assert.Equal(t, float64(9), values[0].Value)
}

func Test_Operations_RecordSpans(t *testing.T) {
	// arrange
	f := givenObservableLibrary(t, 1, 1, 1)
	ctx := context.Background()
	bookID := f.lib.AddBook(ctx, library.NewBook("A", "Some Author", 2000, 1, 1, 1))
	patronID := f.lib.RegisterPatron(ctx, library.NewPatron("Easy", "Reader", 1, 1, 1, 1))

	// act
	f.lib.BorrowBook(ctx, bookID, patronID)

	// assert
	spans := f.tracing.SpanRecords()
	require.Len(t, spans, 3)

	borrowSpan := spans[2]
	assert.Equal(t, "library.borrow_book", borrowSpan.Name)
	assert.Equal(t, "0", borrowSpan.StartAttributes[observable.LogAttrBookID])
	assert.Equal(t, "0", borrowSpan.StartAttributes[observable.LogAttrPatronID])
	assert.True(t, borrowSpan.Finished)
	assert.Equal(t, observable.StatusSuccess, borrowSpan.Status)
	assert.Contains(t, borrowSpan.EndAttributes, observable.LogAttrDurationMS)

	for _, span := range spans {
		assert.True(t, span.Finished, span.Name)
	}
}

func Test_Operations_WithBasicLogging(t *testing.T) {
	// arrange
	core, err := library.NewLibrary(1, 1, 1)
	require.NoError(t, err)
	logs := NewLogHandlerSpy(false)
	lib, err := observable.NewLibrary(core, observable.WithLogging(slog.New(logs)))
	require.NoError(t, err)

	// act
	lib.AddBook(context.Background(), library.NewBook("A", "Some Author", 2000, 1, 1, 1))

	// assert
	assert.True(t, logs.HasLog(slog.LevelDebug, observable.LogMsgOperationStarted))

	attrs := logs.FindLog(slog.LevelInfo, observable.LogMsgOperationCompleted)
	require.NotNil(t, attrs)
	assert.Equal(t, observable.StatusSuccess, attrs[observable.LogAttrStatus].String())
	assert.Equal(t, int64(0), attrs[observable.LogAttrBookID].Int64())
}

func Test_AddBook_ConcurrentDuplicates_ExactlyOneSuccess(t *testing.T) {
	// arrange
	const callers = 32
	f := givenObservableLibrary(t, 1, 1, 1)
	book := library.NewBook("Momo", "Michael Ende", 1973, 6, 8, 10)
	patron := library.NewPatron("Mimi", "Huppert", 7, 6, 10, 143)

	var wg sync.WaitGroup

	// act
	for range callers {
		wg.Add(2)

		go func() {
			defer wg.Done()
			f.lib.AddBook(context.Background(), book)
		}()

		go func() {
			defer wg.Done()
			f.lib.RegisterPatron(context.Background(), patron)
		}()
	}

	wg.Wait()

	// assert
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationAddBook, observable.StatusSuccess))
	assert.Equal(t, callers-1, callsWithStatus(f, observable.OperationAddBook, observable.StatusIdempotent))
	assert.Equal(t, 1, callsWithStatus(f, observable.OperationRegisterPatron, observable.StatusSuccess))
	assert.Equal(t, callers-1, callsWithStatus(f, observable.OperationRegisterPatron, observable.StatusIdempotent))
}
