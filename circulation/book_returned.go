package circulation

import (
	"time"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents when a borrowed book was returned by its borrower.
type BookReturned struct {
	BookID     BookID
	PatronID   PatronID
	OccurredAt OccurredAt
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(bookID BookID, patronID PatronID, occurredAt time.Time) BookReturned {
	return BookReturned{
		BookID:     bookID,
		PatronID:   patronID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReturned) IsEventType() string {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturned) IsErrorEvent() bool {
	return false
}
