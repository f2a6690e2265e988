package library

import (
	"time"

	"github.com/AntonStoeckl/fixed-capacity-library-go/circulation"
)

// EventRecorder receives the circulation events a Library emits after each state change.
type EventRecorder interface {
	Record(event circulation.DomainEvent) error
}

// Option defines a functional option for configuring a Library.
type Option func(*Library) error

// WithLogger sets the logger for the Library.
//
// Debug level: successful state changes (book added, patron registered, borrowed, returned)
// Info level: borrow rejections with their reasons, full registries
// Error level: failures of the configured EventRecorder.
func WithLogger(logger Logger) Option {
	return func(l *Library) error {
		l.logger = logger
		return nil
	}
}

// WithClock sets the time source used to stamp circulation events.
func WithClock(now func() time.Time) Option {
	return func(l *Library) error {
		if now == nil {
			return ErrNilClock
		}

		l.now = now

		return nil
	}
}

// WithEventRecorder makes the Library emit circulation events to the recorder.
// A failing recorder is logged and never changes the outcome of an operation.
func WithEventRecorder(recorder EventRecorder) Option {
	return func(l *Library) error {
		if recorder == nil {
			return ErrNilEventRecorder
		}

		l.recorder = recorder

		return nil
	}
}
