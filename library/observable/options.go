package observable

import (
	"github.com/AntonStoeckl/fixed-capacity-library-go/library"
)

// Option defines a functional option for configuring the observable Library.
type Option func(*Library) error

// WithMetrics sets the metrics collector.
// A collector that also implements library.ContextualMetricsCollector receives the operation's context.
func WithMetrics(collector library.MetricsCollector) Option {
	return func(w *Library) error {
		w.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector.
func WithTracing(collector library.TracingCollector) Option {
	return func(w *Library) error {
		w.tracingCollector = collector
		return nil
	}
}

// WithContextualLogging sets the contextual logger. It takes precedence over WithLogging.
func WithContextualLogging(logger library.ContextualLogger) Option {
	return func(w *Library) error {
		w.contextualLogger = logger
		return nil
	}
}

// WithLogging sets the basic logger.
func WithLogging(logger library.Logger) Option {
	return func(w *Library) error {
		w.logger = logger
		return nil
	}
}
