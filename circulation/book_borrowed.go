package circulation

import (
	"time"
)

// BookBorrowedEventType is the event type identifier.
const BookBorrowedEventType = "BookBorrowed"

// BookBorrowed represents when a patron borrowed a book. Score is the patron's score for the book.
type BookBorrowed struct {
	BookID     BookID
	PatronID   PatronID
	Score      int
	OccurredAt OccurredAt
}

// BuildBookBorrowed creates a new BookBorrowed event.
func BuildBookBorrowed(bookID BookID, patronID PatronID, score int, occurredAt time.Time) BookBorrowed {
	return BookBorrowed{
		BookID:     bookID,
		PatronID:   patronID,
		Score:      score,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookBorrowed) IsEventType() string {
	return BookBorrowedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookBorrowed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookBorrowed) IsErrorEvent() bool {
	return false
}
