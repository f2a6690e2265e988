package library

import (
	"errors"
	"sync"
	"time"

	"github.com/AntonStoeckl/fixed-capacity-library-go/circulation"
)

const (
	logMsgBookAdded         = "book added"
	logMsgPatronRegistered  = "patron registered"
	logMsgBookBorrowed      = "book borrowed"
	logMsgBookReturned      = "book returned"
	logMsgBorrowRejected    = "borrow rejected"
	logMsgRegistryFull      = "registry is full"
	logMsgInsertRejected    = "insert rejected"
	logMsgRecordEventFailed = "failed to record circulation event"
	logAttrBookID           = "book_id"
	logAttrPatronID         = "patron_id"
	logAttrRegistry         = "registry"
	logAttrCapacity         = "capacity"
	logAttrScore            = "score"
	logAttrEventType        = "event_type"
	logAttrError            = "error"
	registryBooks           = "books"
	registryPatrons         = "patrons"
)

// Library is a fixed-capacity registry of books and patrons and the workflow engine for borrowing,
// returning and suggesting books.
//
// All methods hold one mutex for their whole read-check-mutate sequence, so a Library may be shared
// between goroutines. It never grows, never removes entities and never panics.
type Library struct {
	mu               sync.Mutex
	maxBorrowedBooks int
	books            slotRegistry[Book]
	patrons          slotRegistry[Patron]
	logger           Logger
	recorder         EventRecorder
	now              func() time.Time
}

// NewLibrary creates a Library with the given capacities and optional configuration.
//
// A non-positive capacity yields a registry that is always full.
// Only invalid options produce an error.
func NewLibrary(maxBookCapacity, maxBorrowedBooks, maxPatronCapacity int, options ...Option) (*Library, error) {
	l := &Library{
		maxBorrowedBooks: maxBorrowedBooks,
		books:            newSlotRegistry[Book](maxBookCapacity),
		patrons:          newSlotRegistry[Patron](maxPatronCapacity),
		now:              time.Now,
	}

	for _, option := range options {
		if err := option(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// AddBook adds the book to the first free book slot and returns its id.
// Adding a book that is already in this library returns its existing id.
// Returns NoID if the book registry is full.
func (l *Library) AddBook(book *Book) int {
	id, _ := l.TryAddBook(book)
	return id
}

// TryAddBook is AddBook with the failure reason: ErrCapacityExceeded, ErrNilEntity or ErrBookInAnotherLibrary.
func (l *Library) TryAddBook(book *Book) (int, error) {
	id, _, err := l.InsertBook(book)
	return id, err
}

// InsertBook is TryAddBook that also reports whether this call added the book.
// added is false for a book that was already in the library.
func (l *Library) InsertBook(book *Book) (id int, added bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, added, err = l.books.insert(book, func(b *Book) error { return b.claimFor(l) })
	if err != nil {
		l.logInsertRejected(registryBooks, l.books.capacity(), err)
		return NoID, false, err
	}

	if added {
		l.logDebug(logMsgBookAdded, logAttrBookID, id)
		l.record(circulation.BuildBookAddedToLibrary(
			id,
			book.title,
			book.author,
			book.publicationYear,
			book.comicValue,
			book.dramaticValue,
			book.educationalValue,
			l.now(),
		))
	}

	return id, added, nil
}

// IsBookIDValid reports whether id denotes an occupied book slot.
func (l *Library) IsBookIDValid(bookID int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.books.idValid(bookID)
}

// GetBookID returns the id of this very book (by identity), or NoID.
func (l *Library) GetBookID(book *Book) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.books.lookup(book)
}

// RegisterPatron registers the patron in the first free patron slot and returns its id.
// Registering a patron that is already registered returns its existing id.
// Returns NoID if the patron registry is full.
func (l *Library) RegisterPatron(patron *Patron) int {
	id, _ := l.TryRegisterPatron(patron)
	return id
}

// TryRegisterPatron is RegisterPatron with the failure reason: ErrCapacityExceeded or ErrNilEntity.
func (l *Library) TryRegisterPatron(patron *Patron) (int, error) {
	id, _, err := l.InsertPatron(patron)
	return id, err
}

// InsertPatron is TryRegisterPatron that also reports whether this call registered the patron.
// A patron may be registered in several libraries.
func (l *Library) InsertPatron(patron *Patron) (id int, added bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, added, err = l.patrons.insert(patron, nil)
	if err != nil {
		l.logInsertRejected(registryPatrons, l.patrons.capacity(), err)
		return NoID, false, err
	}

	if added {
		l.logDebug(logMsgPatronRegistered, logAttrPatronID, id)
		l.record(circulation.BuildPatronRegistered(
			id,
			patron.firstName,
			patron.lastName,
			patron.comicTendency,
			patron.dramaticTendency,
			patron.educationalTendency,
			patron.enjoymentThreshold,
			l.now(),
		))
	}

	return id, added, nil
}

// IsPatronIDValid reports whether id denotes an occupied patron slot.
func (l *Library) IsPatronIDValid(patronID int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.patrons.idValid(patronID)
}

// GetPatronID returns the id of this very patron (by identity), or NoID.
func (l *Library) GetPatronID(patron *Patron) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.patrons.lookup(patron)
}

// Book returns the book in slot bookID.
func (l *Library) Book(bookID int) (*Book, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.books.idValid(bookID) {
		return nil, false
	}

	return l.books.at(bookID), true
}

// Patron returns the patron in slot patronID.
func (l *Library) Patron(patronID int) (*Patron, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.patrons.idValid(patronID) {
		return nil, false
	}

	return l.patrons.at(patronID), true
}

// Books returns the books in id order. The slice is a copy, the books are not.
func (l *Library) Books() []*Book {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]*Book(nil), l.books.occupied()...)
}

// Patrons returns the patrons in id order. The slice is a copy, the patrons are not.
func (l *Library) Patrons() []*Patron {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]*Patron(nil), l.patrons.occupied()...)
}

func (l *Library) BookCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.books.count()
}

func (l *Library) PatronCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.patrons.count()
}

func (l *Library) MaxBookCapacity() int {
	return l.books.capacity()
}

func (l *Library) MaxPatronCapacity() int {
	return l.patrons.capacity()
}

func (l *Library) MaxBorrowedBooks() int {
	return l.maxBorrowedBooks
}

func (l *Library) record(event circulation.DomainEvent) {
	if l.recorder == nil {
		return
	}

	if err := l.recorder.Record(event); err != nil {
		l.logError(logMsgRecordEventFailed, err, logAttrEventType, event.IsEventType())
	}
}

func (l *Library) logInsertRejected(registry string, capacity int, err error) {
	if l.logger == nil {
		return
	}

	if errors.Is(err, ErrCapacityExceeded) {
		l.logger.Info(logMsgRegistryFull, logAttrRegistry, registry, logAttrCapacity, capacity)
		return
	}

	l.logger.Info(logMsgInsertRejected, logAttrRegistry, registry, logAttrError, err.Error())
}

func (l *Library) logDebug(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}

func (l *Library) logInfo(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func (l *Library) logError(msg string, err error, args ...any) {
	if l.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		l.logger.Error(msg, allArgs...)
	}
}
