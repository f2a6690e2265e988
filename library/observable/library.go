package observable

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/AntonStoeckl/fixed-capacity-library-go/library"
)

// ErrNilLibrary is returned when NewLibrary is called without a core library.
var ErrNilLibrary = errors.New("nil library supplied")

// Library instruments the mutating and suggesting operations of a *library.Library.
// It adds no behavior: every call returns exactly what the core returns.
type Library struct {
	core             *library.Library
	metricsCollector library.MetricsCollector
	tracingCollector library.TracingCollector
	contextualLogger library.ContextualLogger
	logger           library.Logger
}

// NewLibrary wraps the core library with the configured observability.
func NewLibrary(core *library.Library, opts ...Option) (*Library, error) {
	if core == nil {
		return nil, ErrNilLibrary
	}

	w := &Library{core: core}

	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Core returns the wrapped library.
func (w *Library) Core() *library.Library {
	return w.core
}

// AddBook is library.Library.AddBook with status idempotent for a book that is already in the library.
func (w *Library) AddBook(ctx context.Context, book *library.Book) int {
	start := time.Now()
	ctx, span := w.startSpan(ctx, OperationAddBook, nil)
	w.logStart(ctx, OperationAddBook)

	id, added, err := w.core.InsertBook(book)

	status := statusFor(err)
	if err == nil && !added {
		status = StatusIdempotent
	}

	w.finish(ctx, span, OperationAddBook, status, start, err, LogAttrBookID, id)

	return id
}

// RegisterPatron is library.Library.RegisterPatron with status idempotent for a patron that is already registered.
func (w *Library) RegisterPatron(ctx context.Context, patron *library.Patron) int {
	start := time.Now()
	ctx, span := w.startSpan(ctx, OperationRegisterPatron, nil)
	w.logStart(ctx, OperationRegisterPatron)

	id, added, err := w.core.InsertPatron(patron)

	status := statusFor(err)
	if err == nil && !added {
		status = StatusIdempotent
	}

	w.finish(ctx, span, OperationRegisterPatron, status, start, err, LogAttrPatronID, id)

	return id
}

// BorrowBook is library.Library.BorrowBook. Each failing borrow rule increments BorrowRejectionsMetric.
func (w *Library) BorrowBook(ctx context.Context, bookID, patronID int) bool {
	start := time.Now()
	ctx, span := w.startSpan(ctx, OperationBorrowBook, idAttrs(bookID, patronID))
	w.logStart(ctx, OperationBorrowBook, LogAttrBookID, bookID, LogAttrPatronID, patronID)

	err := w.core.TryBorrowBook(bookID, patronID)
	if errors.Is(err, library.ErrIneligibleBorrow) {
		w.recordRejectionReasons(ctx, err)
	}

	w.finish(ctx, span, OperationBorrowBook, statusFor(err), start, err, LogAttrBookID, bookID, LogAttrPatronID, patronID)

	return err == nil
}

// ReturnBook is library.Library.ReturnBook.
// Returning an unborrowed book has status idempotent. An invalid id has status invalid_id and,
// like the core, is not logged.
func (w *Library) ReturnBook(ctx context.Context, bookID int) {
	start := time.Now()
	ctx, span := w.startSpan(ctx, OperationReturnBook, idAttrs(bookID, library.NoID))

	returned, err := w.core.TryReturnBook(bookID)
	if err != nil {
		duration := time.Since(start)
		w.recordMetrics(ctx, OperationReturnBook, StatusInvalidID, duration)
		w.finishSpan(span, StatusInvalidID, duration, err)

		return
	}

	w.logStart(ctx, OperationReturnBook, LogAttrBookID, bookID)

	status := StatusSuccess
	if !returned {
		status = StatusIdempotent
	}

	w.finish(ctx, span, OperationReturnBook, status, start, nil, LogAttrBookID, bookID)
}

// SuggestBook is library.Library.SuggestBook. The score of a suggested book is recorded as SuggestionScoreMetric.
func (w *Library) SuggestBook(ctx context.Context, patronID int) (*library.Book, bool) {
	start := time.Now()
	ctx, span := w.startSpan(ctx, OperationSuggestBook, idAttrs(library.NoID, patronID))
	w.logStart(ctx, OperationSuggestBook, LogAttrPatronID, patronID)

	book, err := w.core.TrySuggestBook(patronID)
	if err == nil {
		if patron, ok := w.core.Patron(patronID); ok {
			w.recordSuggestionScore(ctx, patron.BookScore(book))
		}
	}

	w.finish(ctx, span, OperationSuggestBook, statusFor(err), start, err, LogAttrPatronID, patronID)

	return book, err == nil
}

func idAttrs(bookID, patronID int) map[string]string {
	attrs := make(map[string]string, 2)

	if bookID != library.NoID {
		attrs[LogAttrBookID] = strconv.Itoa(bookID)
	}

	if patronID != library.NoID {
		attrs[LogAttrPatronID] = strconv.Itoa(patronID)
	}

	return attrs
}
