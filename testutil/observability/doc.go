// Package observability provides test doubles for the library's observability interfaces:
// a slog.Handler spy, a MetricsCollector spy, a TracingCollector spy and an EventRecorder spy.
//
// All spies are safe for concurrent use.
package observability
