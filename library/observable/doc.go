// Package observable wraps a *library.Library with metrics, tracing and logging.
//
// The wrapper is applied externally at wiring time and keeps the core library free of any
// observability concern beyond its optional operational Logger:
//
//	core, err := library.NewLibrary(20, 3, 10)
//	lib, err := observable.NewLibrary(
//		core,
//		observable.WithMetrics(metricsCollector),
//		observable.WithTracing(tracingCollector),
//		observable.WithContextualLogging(contextualLogger),
//	)
//
//	borrowed := lib.BorrowBook(ctx, bookID, patronID)
//
// Every operation records OperationDurationMetric and OperationCallsMetric labeled with the
// operation and its status, runs inside a span named after the operation, and logs its completion.
// The context only carries trace correlation; operations never block.
//
// Read-only queries (id validity, availability, counts) are not instrumented; use Core for them.
package observable
