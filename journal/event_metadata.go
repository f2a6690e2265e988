package journal

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// ErrMappingToEventMetadataFailed is returned when stored metadata is not valid JSON or carries malformed ids.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// EventMetadata identifies a recorded event and links it to what caused it.
// Library operations are never caused by another message, so Record makes every event its own cause.
// CorrelationID is shared by all events of one Journal unless configured otherwise.
type EventMetadata struct {
	MessageID     string `json:"messageId"`
	CausationID   string `json:"causationId"`
	CorrelationID string `json:"correlationId"`
}

func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// rootEventMetadata is the metadata of an event that starts its own causation chain.
func rootEventMetadata(messageID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return BuildEventMetadata(messageID, messageID, correlationID)
}

// EventMetadataFrom reads the metadata of a stored event back. All three ids must be UUIDs.
func EventMetadataFrom(storableEvent StorableEvent) (EventMetadata, error) {
	var metadata EventMetadata

	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.MetadataJSON, &metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	for _, id := range []string{metadata.MessageID, metadata.CausationID, metadata.CorrelationID} {
		if _, err := uuid.Parse(id); err != nil {
			return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
		}
	}

	return metadata, nil
}
