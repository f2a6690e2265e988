package circulation

import (
	"time"
)

// PatronRegisteredEventType is the event type identifier.
const PatronRegisteredEventType = "PatronRegistered"

// PatronRegistered represents when a patron was placed into a free patron slot.
type PatronRegistered struct {
	PatronID            PatronID
	FirstName           string
	LastName            string
	ComicTendency       int
	DramaticTendency    int
	EducationalTendency int
	EnjoymentThreshold  int
	OccurredAt          OccurredAt
}

// BuildPatronRegistered creates a new PatronRegistered event.
func BuildPatronRegistered(
	patronID PatronID,
	firstName string,
	lastName string,
	comicTendency int,
	dramaticTendency int,
	educationalTendency int,
	enjoymentThreshold int,
	occurredAt time.Time,
) PatronRegistered {

	return PatronRegistered{
		PatronID:            patronID,
		FirstName:           firstName,
		LastName:            lastName,
		ComicTendency:       comicTendency,
		DramaticTendency:    dramaticTendency,
		EducationalTendency: educationalTendency,
		EnjoymentThreshold:  enjoymentThreshold,
		OccurredAt:          ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e PatronRegistered) IsEventType() string {
	return PatronRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e PatronRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e PatronRegistered) IsErrorEvent() bool {
	return false
}
