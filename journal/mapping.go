package journal

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/fixed-capacity-library-go/circulation"
)

var (
	// ErrMappingToStorableEventFailed is returned when a domain event or its metadata can't be serialized.
	ErrMappingToStorableEventFailed = errors.New("mapping to storable event failed")

	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// StorableEventFrom converts a DomainEvent and EventMetadata to a StorableEvent.
func StorableEventFrom(event circulation.DomainEvent, metadata EventMetadata) (StorableEvent, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	storableEvent, err := BuildStorableEvent(event.IsEventType(), event.HasOccurredAt(), payloadJSON, metadataJSON)
	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	return storableEvent, nil
}

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents StorableEvents) (circulation.DomainEvents, error) {
	domainEvents := make(circulation.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent StorableEvent) (circulation.DomainEvent, error) {
	switch storableEvent.EventType {
	case circulation.BookAddedToLibraryEventType:
		return unmarshalPayload[circulation.BookAddedToLibrary](storableEvent)

	case circulation.PatronRegisteredEventType:
		return unmarshalPayload[circulation.PatronRegistered](storableEvent)

	case circulation.BookBorrowedEventType:
		return unmarshalPayload[circulation.BookBorrowed](storableEvent)

	case circulation.BorrowingBookFailedEventType:
		return unmarshalPayload[circulation.BorrowingBookFailed](storableEvent)

	case circulation.BookReturnedEventType:
		return unmarshalPayload[circulation.BookReturned](storableEvent)

	default:
		return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
	}
}

func unmarshalPayload[E circulation.DomainEvent](storableEvent StorableEvent) (circulation.DomainEvent, error) {
	var payload E

	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.PayloadJSON, &payload); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return payload, nil
}
