package circulation

import (
	"time"
)

// BookAddedToLibraryEventType is the event type identifier.
const BookAddedToLibraryEventType = "BookAddedToLibrary"

// BookAddedToLibrary represents when a book was placed into a free book slot.
type BookAddedToLibrary struct {
	BookID           BookID
	Title            string
	Author           string
	PublicationYear  int
	ComicValue       int
	DramaticValue    int
	EducationalValue int
	OccurredAt       OccurredAt
}

// BuildBookAddedToLibrary creates a new BookAddedToLibrary event.
func BuildBookAddedToLibrary(
	bookID BookID,
	title string,
	author string,
	publicationYear int,
	comicValue int,
	dramaticValue int,
	educationalValue int,
	occurredAt time.Time,
) BookAddedToLibrary {

	return BookAddedToLibrary{
		BookID:           bookID,
		Title:            title,
		Author:           author,
		PublicationYear:  publicationYear,
		ComicValue:       comicValue,
		DramaticValue:    dramaticValue,
		EducationalValue: educationalValue,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookAddedToLibrary) IsEventType() string {
	return BookAddedToLibraryEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAddedToLibrary) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookAddedToLibrary) IsErrorEvent() bool {
	return false
}
