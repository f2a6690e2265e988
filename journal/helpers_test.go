package journal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/fixed-capacity-library-go/circulation"
	"github.com/AntonStoeckl/fixed-capacity-library-go/journal"
)

var fakeClock = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func givenJournal(t *testing.T, options ...journal.Option) *journal.Journal {
	t.Helper()

	j, err := journal.NewJournal(options...)
	require.NoError(t, err)

	return j
}

func givenRecorded(t *testing.T, j *journal.Journal, events ...circulation.DomainEvent) {
	t.Helper()

	for _, event := range events {
		require.NoError(t, j.Record(event))
	}
}

func toStorable(t *testing.T, event circulation.DomainEvent) journal.StorableEvent {
	t.Helper()

	storableEvent, err := journal.StorableEventFrom(event, journal.EventMetadata{})
	require.NoError(t, err)

	return storableEvent
}

func queryAll(t *testing.T, j *journal.Journal) journal.StorableEvents {
	t.Helper()

	events, _, err := j.Query(context.Background(), journal.BuildFilter().MatchingAnyEvent())
	require.NoError(t, err)

	return events
}

func fixtureBorrowed(bookID, patronID int) circulation.BookBorrowed {
	return circulation.BuildBookBorrowed(bookID, patronID, 200, fakeClock)
}

func fixtureReturned(bookID, patronID int) circulation.BookReturned {
	return circulation.BuildBookReturned(bookID, patronID, fakeClock)
}

func fixtureFailed(bookID, patronID int) circulation.BorrowingBookFailed {
	return circulation.BuildBorrowingBookFailed(bookID, patronID, "book is already borrowed", fakeClock)
}
