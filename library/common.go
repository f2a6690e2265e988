package library

import (
	"errors"
	"fmt"
)

// NoID marks "unborrowed", "not found" and "operation failed".
const NoID = -1

var (
	// ErrCapacityExceeded is returned when an insert hits a full registry.
	ErrCapacityExceeded = errors.New("registry capacity exceeded")

	// ErrNilEntity is returned when a nil book or patron is handed to the library.
	ErrNilEntity = errors.New("nil entity supplied")

	// ErrBookInAnotherLibrary is returned when a book that already belongs to another library is added.
	ErrBookInAnotherLibrary = errors.New("book belongs to another library")

	// ErrInvalidID is the common cause of ErrInvalidBookID and ErrInvalidPatronID.
	ErrInvalidID = errors.New("id is out of range or its slot is empty")

	// ErrInvalidBookID is returned for a book id that does not denote an occupied book slot.
	ErrInvalidBookID = fmt.Errorf("book %w", ErrInvalidID)

	// ErrInvalidPatronID is returned for a patron id that does not denote an occupied patron slot.
	ErrInvalidPatronID = fmt.Errorf("patron %w", ErrInvalidID)

	// ErrIneligibleBorrow is returned when at least one borrow precondition fails.
	// It is always joined with the failing reasons below.
	ErrIneligibleBorrow = errors.New("borrow is not eligible")

	// ErrBookNotAvailable is a borrow rejection reason: the book is already borrowed.
	ErrBookNotAvailable = errors.New(failureReasonBookNotAvailable)

	// ErrBorrowLimitReached is a borrow rejection reason: the patron already holds the maximum number of books.
	ErrBorrowLimitReached = errors.New(failureReasonBorrowLimitReached)

	// ErrBookNotEnjoyed is a borrow rejection reason: the patron's score for the book is below the threshold.
	ErrBookNotEnjoyed = errors.New(failureReasonBookNotEnjoyed)

	// ErrNoMatch is returned when a suggestion finds no qualifying book.
	ErrNoMatch = errors.New("no qualifying book found")

	// ErrNilClock is returned when WithClock receives nil.
	ErrNilClock = errors.New("clock must not be nil")

	// ErrNilEventRecorder is returned when WithEventRecorder receives nil.
	ErrNilEventRecorder = errors.New("event recorder must not be nil")
)

const (
	failureReasonBookNotAvailable   = "book is already borrowed"
	failureReasonBorrowLimitReached = "patron has too many books"
	failureReasonBookNotEnjoyed     = "patron will not enjoy the book"
)
