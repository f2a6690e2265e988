// Command librarysim plays a circulation scenario against a fixed-capacity library.
//
// Without -scenario it runs the built-in sample data: ten books, ten patrons, one extra of each
// that no longer fits, a few borrows and returns, a patron running into the borrow limit, and suggestions.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/AntonStoeckl/fixed-capacity-library-go/journal"
	"github.com/AntonStoeckl/fixed-capacity-library-go/library"
	"github.com/AntonStoeckl/fixed-capacity-library-go/library/observable"
	"github.com/AntonStoeckl/fixed-capacity-library-go/library/oteladapters"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, os.Stdout, os.Stderr)
	stop()

	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
}

func run(ctx context.Context, cfg Config, out io.Writer, logOut io.Writer) error {
	scenario, err := loadScenario(cfg.ScenarioPath)
	if err != nil {
		return err
	}

	handler := newLogHandler(cfg, logOut)
	logger := slog.New(handler)

	j, err := journal.NewJournal(journal.WithLogger(logger))
	if err != nil {
		return err
	}

	capacities := scenario.Capacities()
	core, err := library.NewLibrary(
		capacities.MaxBooks,
		capacities.MaxBorrowedBooks,
		capacities.MaxPatrons,
		library.WithLogger(logger),
		library.WithEventRecorder(j),
	)
	if err != nil {
		return err
	}

	observableOptions := []observable.Option{observable.WithLogging(logger)}
	var stepLogger library.ContextualLogger = oteladapters.NewSlogBridgeLoggerWithHandler(handler)

	var providers *ObservabilityProviders
	if cfg.ObservabilityEnabled {
		providers, err = NewObservabilityProviders(ctx)
		if err != nil {
			return err
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if shutdownErr := providers.Shutdown(shutdownCtx); shutdownErr != nil {
				logger.Warn("observability shutdown failed", "error", shutdownErr)
			}
		}()

		observableOptions = append(observableOptions,
			observable.WithMetrics(oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(instrumentationName))),
			observable.WithTracing(oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(instrumentationName))),
			observable.WithContextualLogging(oteladapters.NewSlogBridgeLogger(
				instrumentationName,
				otelslog.WithLoggerProvider(providers.LoggerProvider),
			)),
		)
		stepLogger = oteladapters.NewOTelLogger(providers.LoggerProvider.Logger(instrumentationName))
	}

	lib, err := observable.NewLibrary(core, observableOptions...)
	if err != nil {
		return err
	}

	runner := NewRunner(lib, out, stepLogger)
	if err := runner.Run(ctx, scenario); err != nil {
		return err
	}

	if cfg.PrintJournal {
		if err := runner.PrintJournal(ctx, j); err != nil {
			return err
		}
	}

	if providers != nil {
		if err := providers.WriteSummary(ctx, out); err != nil {
			return err
		}
	}

	return nil
}

func loadScenario(path string) (*Scenario, error) {
	if path == "" {
		return DefaultScenario()
	}

	scenario, err := LoadScenario(path)
	if err != nil {
		return nil, fmt.Errorf("loading scenario %s: %w", path, err)
	}

	return scenario, nil
}

func newLogHandler(cfg Config, w io.Writer) slog.Handler {
	if cfg.LogFormat == logFormatJSON {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel})
	}

	return tint.NewHandler(w, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: "15:04:05",
	})
}
