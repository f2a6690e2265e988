package journal_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/fixed-capacity-library-go/circulation"
	"github.com/AntonStoeckl/fixed-capacity-library-go/journal"
	. "github.com/AntonStoeckl/fixed-capacity-library-go/testutil/observability" //nolint:revive
)

func Test_Journal_Record_StampsMetadata(t *testing.T) {
	// arrange
	messageID := uuid.MustParse("0197e7a8-0000-7000-8000-000000000001")
	correlationID := uuid.MustParse("0197e7a8-0000-7000-8000-0000000000ff")
	j := givenJournal(t,
		journal.WithIDGenerator(func() uuid.UUID { return messageID }),
		journal.WithCorrelationID(correlationID),
	)

	// act
	err := j.Record(fixtureBorrowed(1, 2))

	// assert
	require.NoError(t, err)
	events := queryAll(t, j)
	require.Len(t, events, 1)
	assert.Equal(t, circulation.BookBorrowedEventType, events[0].EventType)
	assert.Equal(t, fakeClock, events[0].OccurredAt)

	metadata, err := journal.EventMetadataFrom(events[0])
	require.NoError(t, err)
	assert.Equal(t, journal.BuildEventMetadata(messageID, messageID, correlationID), metadata)
}

func Test_Journal_Record_UsesFreshMessageIDs(t *testing.T) {
	// arrange
	j := givenJournal(t)

	// act
	givenRecorded(t, j, fixtureBorrowed(1, 2), fixtureReturned(1, 2))

	// assert
	events := queryAll(t, j)
	require.Len(t, events, 2)

	first, err := journal.EventMetadataFrom(events[0])
	require.NoError(t, err)
	second, err := journal.EventMetadataFrom(events[1])
	require.NoError(t, err)

	assert.NotEqual(t, first.MessageID, second.MessageID)
	assert.Equal(t, first.CorrelationID, second.CorrelationID)
	_, err = uuid.Parse(first.MessageID)
	assert.NoError(t, err)
}

func Test_Journal_Query_ReturnsMatchingEventsWithMaxSequenceNumber(t *testing.T) {
	// arrange
	j := givenJournal(t)
	givenRecorded(t, j, fixtureBorrowed(1, 2), fixtureFailed(1, 3), fixtureReturned(1, 2), fixtureBorrowed(4, 3))
	filter := journal.BuildFilter().Matching().AndAnyPredicateOf(journal.P("PatronID", "2")).Finalize()

	// act
	events, maxSeq, err := j.Query(context.Background(), filter)

	// assert
	require.NoError(t, err)
	assert.Equal(t, journal.MaxSequenceNumberUint(3), maxSeq)
	require.Len(t, events, 2)
	assert.Equal(t, circulation.BookBorrowedEventType, events[0].EventType)
	assert.Equal(t, circulation.BookReturnedEventType, events[1].EventType)
	assert.Equal(t, 4, j.Len())
}

func Test_Journal_Query_NothingMatches(t *testing.T) {
	// arrange
	j := givenJournal(t)
	givenRecorded(t, j, fixtureBorrowed(1, 2))
	filter := journal.BuildFilter().Matching().AnyEventTypeOf(circulation.PatronRegisteredEventType).Finalize()

	// act
	events, maxSeq, err := j.Query(context.Background(), filter)

	// assert
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, journal.MaxSequenceNumberUint(0), maxSeq)
}

func Test_Journal_Query_CanceledContext(t *testing.T) {
	// arrange
	j := givenJournal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, _, err := j.Query(ctx, journal.BuildFilter().MatchingAnyEvent())

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Journal_WithLogger_LogsAppendedEvents(t *testing.T) {
	// arrange
	logSpy := NewLogHandlerSpy(false)
	j := givenJournal(t, journal.WithLogger(slog.New(logSpy)))

	// act
	givenRecorded(t, j, fixtureBorrowed(1, 2))

	// assert
	attrs := logSpy.FindLog(slog.LevelDebug, "journal: event appended")
	require.NotNil(t, attrs)
	assert.Equal(t, circulation.BookBorrowedEventType, attrs["event_type"].String())
	assert.Equal(t, uint64(1), attrs["sequence_number"].Uint64())
}

func Test_NewJournal_NilIDGenerator(t *testing.T) {
	// act
	_, err := journal.NewJournal(journal.WithIDGenerator(nil))

	// assert
	assert.ErrorIs(t, err, journal.ErrNilIDGenerator)
}
