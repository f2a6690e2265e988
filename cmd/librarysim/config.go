package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = logFormatText

	logFormatText = "text"
	logFormatJSON = "json"
)

// Config holds all simulation configuration parameters.
type Config struct {
	ScenarioPath         string // empty means the built-in scenario
	ObservabilityEnabled bool
	PrintJournal         bool
	LogLevel             slog.Level
	LogFormat            string
}

// parseFlags parses command line arguments (without the program name) and returns the configuration.
func parseFlags(args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet("librarysim", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		scenarioPath  = fs.String("scenario", "", "Path to a YAML scenario file (default: built-in sample scenario)")
		observability = fs.Bool("observability-enabled", false, "Enable in-process OpenTelemetry metrics, tracing and logs")
		printJournal  = fs.Bool("journal", false, "Print the circulation journal after the run")
		logLevel      = fs.String("log-level", defaultLogLevel, "Log level: debug, info, warn, error")
		logFormat     = fs.String("log-format", defaultLogFormat, "Log format: text or json")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return Config{}, fmt.Errorf("invalid log-level '%s': %w", *logLevel, err)
	}

	format := strings.ToLower(strings.TrimSpace(*logFormat))
	if format != logFormatText && format != logFormatJSON {
		return Config{}, fmt.Errorf("invalid log-format '%s': expected %s or %s", *logFormat, logFormatText, logFormatJSON)
	}

	return Config{
		ScenarioPath:         *scenarioPath,
		ObservabilityEnabled: *observability,
		PrintJournal:         *printJournal,
		LogLevel:             level,
		LogFormat:            format,
	}, nil
}
