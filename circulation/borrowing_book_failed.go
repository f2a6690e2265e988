package circulation

import (
	"time"
)

// BorrowingBookFailedEventType is the event type identifier.
const BorrowingBookFailedEventType = "BorrowingBookFailed"

// BorrowingBookFailed represents when a borrow of a known book by a known patron was rejected
// because at least one eligibility rule failed.
type BorrowingBookFailed struct {
	BookID      BookID
	PatronID    PatronID
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildBorrowingBookFailed creates a new BorrowingBookFailed event.
func BuildBorrowingBookFailed(
	bookID BookID,
	patronID PatronID,
	failureInfo string,
	occurredAt time.Time,
) BorrowingBookFailed {

	return BorrowingBookFailed{
		BookID:      bookID,
		PatronID:    patronID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BorrowingBookFailed) IsEventType() string {
	return BorrowingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BorrowingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e BorrowingBookFailed) IsErrorEvent() bool {
	return true
}
