package observable

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AntonStoeckl/fixed-capacity-library-go/library"
)

const (
	// OperationDurationMetric tracks library operation duration (OpenTelemetry-compatible).
	OperationDurationMetric = "library_operation_duration_seconds"
	// OperationCallsMetric tracks total library operation calls.
	OperationCallsMetric = "library_operation_calls_total"
	// BorrowRejectionsMetric counts failing borrow rules, one increment per reason.
	BorrowRejectionsMetric = "library_borrow_rejections_total"
	// SuggestionScoreMetric records the patron's score of each suggested book.
	SuggestionScoreMetric = "library_suggestion_score"

	StatusSuccess          = "success"
	StatusIdempotent       = "idempotent"
	StatusRejected         = "rejected"
	StatusInvalidID        = "invalid_id"
	StatusCapacityExceeded = "capacity_exceeded"
	StatusNoMatch          = "no_match"

	OperationAddBook        = "add_book"
	OperationRegisterPatron = "register_patron"
	OperationBorrowBook     = "borrow_book"
	OperationReturnBook     = "return_book"
	OperationSuggestBook    = "suggest_book"

	ReasonBookNotAvailable   = "book_not_available"
	ReasonBorrowLimitReached = "borrow_limit_reached"
	ReasonBookNotEnjoyed     = "book_not_enjoyed"

	LogMsgOperationStarted   = "library operation started"
	LogMsgOperationCompleted = "library operation completed"
	LogMsgOperationRejected  = "library operation rejected"

	LogAttrOperation  = "operation"
	LogAttrStatus     = "status"
	LogAttrReason     = "reason"
	LogAttrBookID     = "book_id"
	LogAttrPatronID   = "patron_id"
	LogAttrDurationMS = "duration_ms"
	LogAttrError      = "error"

	spanNamePrefix = "library."
)

// statusFor classifies the outcome of an operation from the error the core library returned.
func statusFor(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, library.ErrCapacityExceeded):
		return StatusCapacityExceeded
	case errors.Is(err, library.ErrInvalidID):
		return StatusInvalidID
	case errors.Is(err, library.ErrNoMatch):
		return StatusNoMatch
	default:
		return StatusRejected
	}
}

// rejectionReasons maps an ErrIneligibleBorrow to the metric label of each failing rule.
func rejectionReasons(err error) []string {
	var reasons []string

	if errors.Is(err, library.ErrBookNotAvailable) {
		reasons = append(reasons, ReasonBookNotAvailable)
	}

	if errors.Is(err, library.ErrBorrowLimitReached) {
		reasons = append(reasons, ReasonBorrowLimitReached)
	}

	if errors.Is(err, library.ErrBookNotEnjoyed) {
		reasons = append(reasons, ReasonBookNotEnjoyed)
	}

	return reasons
}

// ToMilliseconds converts a time.Duration to float64 milliseconds.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

func buildLabels(operation, status string) map[string]string {
	return map[string]string{
		LogAttrOperation: operation,
		LogAttrStatus:    status,
	}
}

func (w *Library) recordMetrics(ctx context.Context, operation, status string, duration time.Duration) {
	if w.metricsCollector == nil {
		return
	}

	labels := buildLabels(operation, status)

	if contextualCollector, ok := w.metricsCollector.(library.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, OperationDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, OperationCallsMetric, labels)

		return
	}

	w.metricsCollector.RecordDuration(OperationDurationMetric, duration, labels)
	w.metricsCollector.IncrementCounter(OperationCallsMetric, labels)
}

func (w *Library) recordRejectionReasons(ctx context.Context, err error) {
	if w.metricsCollector == nil {
		return
	}

	for _, reason := range rejectionReasons(err) {
		labels := map[string]string{LogAttrReason: reason}

		if contextualCollector, ok := w.metricsCollector.(library.ContextualMetricsCollector); ok {
			contextualCollector.IncrementCounterContext(ctx, BorrowRejectionsMetric, labels)
		} else {
			w.metricsCollector.IncrementCounter(BorrowRejectionsMetric, labels)
		}
	}
}

func (w *Library) recordSuggestionScore(ctx context.Context, score int) {
	if w.metricsCollector == nil {
		return
	}

	labels := map[string]string{LogAttrOperation: OperationSuggestBook}

	if contextualCollector, ok := w.metricsCollector.(library.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, SuggestionScoreMetric, float64(score), labels)
		return
	}

	w.metricsCollector.RecordValue(SuggestionScoreMetric, float64(score), labels)
}

func (w *Library) startSpan(ctx context.Context, operation string, attrs map[string]string) (context.Context, library.SpanContext) {
	if w.tracingCollector == nil {
		return ctx, nil
	}

	spanAttrs := map[string]string{LogAttrOperation: operation}
	for key, value := range attrs {
		spanAttrs[key] = value
	}

	return w.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, spanAttrs)
}

func (w *Library) finishSpan(span library.SpanContext, status string, duration time.Duration, err error) {
	if w.tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: fmt.Sprintf("%.2f", ToMilliseconds(duration)),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	w.tracingCollector.FinishSpan(span, status, attrs)
}

func (w *Library) logStart(ctx context.Context, operation string, args ...any) {
	allArgs := append([]any{LogAttrOperation, operation}, args...)

	if w.contextualLogger != nil {
		w.contextualLogger.DebugContext(ctx, LogMsgOperationStarted, allArgs...)
	} else if w.logger != nil {
		w.logger.Debug(LogMsgOperationStarted, allArgs...)
	}
}

func (w *Library) logOutcome(ctx context.Context, operation, status string, duration time.Duration, err error, args ...any) {
	allArgs := []any{
		LogAttrOperation, operation,
		LogAttrStatus, status,
		LogAttrDurationMS, ToMilliseconds(duration),
	}
	allArgs = append(allArgs, args...)

	msg := LogMsgOperationCompleted
	if err != nil {
		msg = LogMsgOperationRejected
		allArgs = append(allArgs, LogAttrError, strings.ReplaceAll(err.Error(), "\n", "; "))
	}

	if w.contextualLogger != nil {
		w.contextualLogger.InfoContext(ctx, msg, allArgs...)
	} else if w.logger != nil {
		w.logger.Info(msg, allArgs...)
	}
}

// finish records metrics, the span outcome and the completion log of one operation.
func (w *Library) finish(
	ctx context.Context,
	span library.SpanContext,
	operation string,
	status string,
	start time.Time,
	err error,
	logArgs ...any,
) {
	duration := time.Since(start)

	w.recordMetrics(ctx, operation, status, duration)
	w.finishSpan(span, status, duration, err)
	w.logOutcome(ctx, operation, status, duration, err, logArgs...)
}
