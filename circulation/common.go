package circulation

import (
	"time"
)

// BookID is the slot id of a book inside its library.
type BookID = int

// PatronID is the slot id of a patron inside its library.
type PatronID = int

// OccurredAt represents when an event occurred.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}
