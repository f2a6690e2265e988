// Package oteladapters implements the library's observability interfaces with OpenTelemetry.
//
//   - MetricsCollector: library.MetricsCollector and library.ContextualMetricsCollector on a metric.Meter
//   - TracingCollector: library.TracingCollector on a trace.Tracer
//   - SlogBridgeLogger: library.ContextualLogger on the otelslog bridge, with trace correlation
//   - OTelLogger: library.ContextualLogger on the OpenTelemetry log API
//
// Wire them into observable.NewLibrary:
//
//	lib, err := observable.NewLibrary(
//		core,
//		observable.WithMetrics(oteladapters.NewMetricsCollector(meterProvider.Meter("librarysim"))),
//		observable.WithTracing(oteladapters.NewTracingCollector(tracerProvider.Tracer("librarysim"))),
//		observable.WithContextualLogging(oteladapters.NewSlogBridgeLogger("librarysim")),
//	)
package oteladapters
