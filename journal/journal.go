package journal

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/fixed-capacity-library-go/circulation"
)

var ErrNilIDGenerator = errors.New("nil id generator supplied")

// MaxSequenceNumberUint is the highest sequence number of the events matching a Filter, 0 if none match.
type MaxSequenceNumberUint = uint

const (
	logMsgEventAppended   = "journal: event appended"
	logAttrEventType      = "event_type"
	logAttrSequenceNumber = "sequence_number"
)

// Logger is the subset of *slog.Logger the Journal uses.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// Option defines a functional option for configuring a Journal.
type Option func(*Journal) error

// WithLogger sets the logger for the Journal.
// Debug level: appended events. Info level: concurrency conflicts.
func WithLogger(logger Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// WithIDGenerator replaces uuid.New for message ids, e.g. with a deterministic generator in tests.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(j *Journal) error {
		if newID == nil {
			return ErrNilIDGenerator
		}

		j.newID = newID

		return nil
	}
}

// WithCorrelationID sets the CorrelationID stamped on every recorded event. Defaults to a random UUID.
func WithCorrelationID(correlationID uuid.UUID) Option {
	return func(j *Journal) error {
		j.correlationID = correlationID
		return nil
	}
}

type entry struct {
	sequenceNumber MaxSequenceNumberUint
	event          StorableEvent
}

// Journal is an append-only, in-memory event journal. It is safe for concurrent use.
type Journal struct {
	mu            sync.RWMutex
	entries       []entry
	logger        Logger
	newID         func() uuid.UUID
	correlationID uuid.UUID
}

// NewJournal creates an empty Journal.
func NewJournal(options ...Option) (*Journal, error) {
	j := &Journal{
		newID: uuid.New,
	}

	j.correlationID = j.newID()

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	return j, nil
}

// Record converts the domain event with fresh metadata and appends it unconditionally.
// The message id doubles as causation id, since library operations have no causing message.
func (j *Journal) Record(event circulation.DomainEvent) error {
	messageID := j.newID()

	storableEvent, err := StorableEventFrom(event, rootEventMetadata(messageID, j.correlationID))
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.appendLocked(storableEvent)

	return nil
}

// Query returns all events matching the filter in sequence order, and the max sequence number among them.
func (j *Journal) Query(ctx context.Context, filter Filter) (StorableEvents, MaxSequenceNumberUint, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	events := make(StorableEvents, 0)
	maxSequenceNumber := MaxSequenceNumberUint(0)

	for _, e := range j.entries {
		if filter.Matches(e.event) {
			events = append(events, e.event)
			maxSequenceNumber = e.sequenceNumber
		}
	}

	return events, maxSequenceNumber, nil
}

// Len returns the number of journaled events.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.entries)
}

func (j *Journal) appendLocked(storableEvent StorableEvent) {
	sequenceNumber := MaxSequenceNumberUint(len(j.entries) + 1)
	j.entries = append(j.entries, entry{sequenceNumber: sequenceNumber, event: storableEvent})

	if j.logger != nil {
		j.logger.Debug(
			logMsgEventAppended,
			logAttrEventType, storableEvent.EventType,
			logAttrSequenceNumber, sequenceNumber,
		)
	}
}
