package observability

import (
	"sync"

	"github.com/AntonStoeckl/fixed-capacity-library-go/circulation"
	"github.com/AntonStoeckl/fixed-capacity-library-go/library"
)

// EventRecorderSpy captures recorded circulation events. A non-nil failWith makes every Record fail.
type EventRecorderSpy struct {
	events   circulation.DomainEvents
	failWith error
	mu       sync.Mutex
}

// NewEventRecorderSpy creates a recorder that accepts every event.
func NewEventRecorderSpy() *EventRecorderSpy {
	return &EventRecorderSpy{}
}

// NewFailingEventRecorderSpy creates a recorder that rejects every event with err.
func NewFailingEventRecorderSpy(err error) *EventRecorderSpy {
	return &EventRecorderSpy{failWith: err}
}

// Record implements library.EventRecorder.
func (s *EventRecorderSpy) Record(event circulation.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	s.events = append(s.events, event)

	return nil
}

// Events returns a copy of the recorded events.
func (s *EventRecorderSpy) Events() circulation.DomainEvents {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append(circulation.DomainEvents(nil), s.events...)
}

// EventTypes returns the types of the recorded events in order.
func (s *EventRecorderSpy) EventTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := make([]string, 0, len(s.events))
	for _, event := range s.events {
		types = append(types, event.IsEventType())
	}

	return types
}

var _ library.EventRecorder = (*EventRecorderSpy)(nil)
