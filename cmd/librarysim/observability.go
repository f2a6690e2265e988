package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const instrumentationName = "github.com/AntonStoeckl/fixed-capacity-library-go/cmd/librarysim"

// ObservabilityProviders holds in-process OpenTelemetry providers.
// Metrics are pulled with a manual reader, spans are kept in memory and log records are tallied,
// so a run needs no collector.
type ObservabilityProviders struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
	LoggerProvider *sdklog.LoggerProvider
	Resource       *resource.Resource

	metricReader *metric.ManualReader
	spans        *tracetest.InMemoryExporter
	logs         *logRecordTally
}

// NewObservabilityProviders creates the providers and registers them globally.
func NewObservabilityProviders(ctx context.Context) (*ObservabilityProviders, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String("librarysim"),
			semconv.ServiceVersionKey.String("dev"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	spans := tracetest.NewInMemoryExporter()
	tracerProvider := trace.NewTracerProvider(
		trace.WithSyncer(spans),
		trace.WithResource(res),
	)

	metricReader := metric.NewManualReader()
	meterProvider := metric.NewMeterProvider(
		metric.WithReader(metricReader),
		metric.WithResource(res),
	)

	logs := &logRecordTally{}
	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewSimpleProcessor(logs)),
		sdklog.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	global.SetLoggerProvider(loggerProvider)

	return &ObservabilityProviders{
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		LoggerProvider: loggerProvider,
		Resource:       res,
		metricReader:   metricReader,
		spans:          spans,
		logs:           logs,
	}, nil
}

// WriteSummary collects all metrics, finished spans and log record counts and writes a plain text summary.
func (p *ObservabilityProviders) WriteSummary(ctx context.Context, w io.Writer) error {
	var rm metricdata.ResourceMetrics
	if err := p.metricReader.Collect(ctx, &rm); err != nil {
		return fmt.Errorf("failed to collect metrics: %w", err)
	}

	_, _ = fmt.Fprintln(w, "::METRICS::")
	for _, line := range metricLines(rm) {
		_, _ = fmt.Fprintln(w, line)
	}

	_, _ = fmt.Fprintln(w, "::SPANS::")
	for _, line := range spanLines(p.spans.GetSpans()) {
		_, _ = fmt.Fprintln(w, line)
	}

	total, correlated := p.logs.counts()
	_, _ = fmt.Fprintf(w, "::LOGS:: %d records, %d with trace context\n", total, correlated)

	return nil
}

// Shutdown gracefully shuts down all providers.
func (p *ObservabilityProviders) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.TracerProvider.Shutdown(ctx),
		p.MeterProvider.Shutdown(ctx),
		p.LoggerProvider.Shutdown(ctx),
	)
}

// logRecordTally is an sdklog.Exporter that counts records, and those emitted inside a span.
type logRecordTally struct {
	mu         sync.Mutex
	total      int
	correlated int
}

func (t *logRecordTally) Export(_ context.Context, records []sdklog.Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, record := range records {
		t.total++
		if record.TraceID().IsValid() {
			t.correlated++
		}
	}

	return nil
}

func (t *logRecordTally) Shutdown(context.Context) error {
	return nil
}

func (t *logRecordTally) ForceFlush(context.Context) error {
	return nil
}

func (t *logRecordTally) counts() (total, correlated int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.total, t.correlated
}

func metricLines(rm metricdata.ResourceMetrics) []string {
	var lines []string

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					lines = append(lines, fmt.Sprintf("%s{%s} %d", m.Name, encode(dp.Attributes), dp.Value))
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					lines = append(lines, fmt.Sprintf("%s{%s} count=%d sum=%.3f", m.Name, encode(dp.Attributes), dp.Count, dp.Sum))
				}
			case metricdata.Gauge[float64]:
				for _, dp := range data.DataPoints {
					lines = append(lines, fmt.Sprintf("%s{%s} %g", m.Name, encode(dp.Attributes), dp.Value))
				}
			}
		}
	}

	slices.Sort(lines)

	return lines
}

func spanLines(spans tracetest.SpanStubs) []string {
	counts := make(map[string]int)
	for _, span := range spans {
		key := span.Name
		if span.Status.Code != codes.Unset {
			key += " " + strings.ToLower(span.Status.Code.String())
		}
		counts[key]++
	}

	lines := make([]string, 0, len(counts))
	for key, count := range counts {
		lines = append(lines, fmt.Sprintf("%s %d", key, count))
	}

	slices.Sort(lines)

	return lines
}

func encode(set attribute.Set) string {
	return set.Encoded(attribute.DefaultEncoder())
}
