package library

import (
	"errors"
	"strings"

	"github.com/AntonStoeckl/fixed-capacity-library-go/circulation"
)

// IsBookAvailable reports whether bookID is valid and the book is not borrowed.
func (l *Library) IsBookAvailable(bookID int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.bookAvailable(bookID)
}

// ActiveBorrowCount returns how many books the patron currently holds.
// The count is derived from the books' borrower ids; there is no stored counter.
func (l *Library) ActiveBorrowCount(patronID int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.activeBorrowCount(patronID)
}

// BorrowBook marks the book as borrowed by the patron if
// the book is available, the patron holds fewer than the maximum number of books,
// and the patron will enjoy the book. Returns false without any change otherwise.
func (l *Library) BorrowBook(bookID, patronID int) bool {
	return l.TryBorrowBook(bookID, patronID) == nil
}

// TryBorrowBook is BorrowBook with the failure reason.
//
// Business Rules:
//
//	GIVEN: a valid bookID and a valid patronID
//	THEN: the book's borrower becomes patronID
//	ERROR: ErrInvalidBookID / ErrInvalidPatronID if an id is out of range or its slot is empty
//	ERROR: ErrIneligibleBorrow joined with every failing reason:
//	  ErrBookNotAvailable if the book is currently borrowed (by anyone, this patron included)
//	  ErrBorrowLimitReached if the patron already holds maxBorrowedBooks books
//	  ErrBookNotEnjoyed if the patron's score for the book is below its enjoyment threshold
func (l *Library) TryBorrowBook(bookID, patronID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkBorrowIDs(bookID, patronID); err != nil {
		l.logInfo(logMsgBorrowRejected, logAttrBookID, bookID, logAttrPatronID, patronID, logAttrError, err.Error())
		return err
	}

	book := l.books.at(bookID)
	patron := l.patrons.at(patronID)

	// The three rules are side-effect free, so all of them are evaluated to report every reason.
	var reasons []error

	if !l.bookAvailable(bookID) {
		reasons = append(reasons, ErrBookNotAvailable)
	}

	if !l.patronUnderLimit(patronID) {
		reasons = append(reasons, ErrBorrowLimitReached)
	}

	if !patron.WillEnjoy(book) {
		reasons = append(reasons, ErrBookNotEnjoyed)
	}

	if len(reasons) > 0 {
		err := errors.Join(append([]error{ErrIneligibleBorrow}, reasons...)...)
		l.logInfo(logMsgBorrowRejected, logAttrBookID, bookID, logAttrPatronID, patronID, logAttrError, err.Error())
		l.record(circulation.BuildBorrowingBookFailed(bookID, patronID, failureInfo(reasons), l.now()))

		return err
	}

	book.setBorrowerID(patronID)

	score := patron.BookScore(book)
	l.logDebug(logMsgBookBorrowed, logAttrBookID, bookID, logAttrPatronID, patronID, logAttrScore, score)
	l.record(circulation.BuildBookBorrowed(bookID, patronID, score, l.now()))

	return nil
}

// ReturnBook marks the book as not borrowed.
// An invalid bookID is silently ignored: nothing is changed, logged or recorded.
func (l *Library) ReturnBook(bookID int) {
	_, _ = l.TryReturnBook(bookID)
}

// TryReturnBook is ReturnBook that reports whether a borrowed book was returned,
// or ErrInvalidBookID for an invalid bookID. Returning an unborrowed book is not an error.
func (l *Library) TryReturnBook(bookID int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.books.idValid(bookID) {
		return false, ErrInvalidBookID
	}

	book := l.books.at(bookID)
	borrowerID := book.CurrentBorrowerID()
	book.markReturned()

	if borrowerID == NoID {
		return false, nil // it was not borrowed, so there is nothing to report
	}

	l.logDebug(logMsgBookReturned, logAttrBookID, bookID, logAttrPatronID, borrowerID)
	l.record(circulation.BuildBookReturned(bookID, borrowerID, l.now()))

	return true, nil
}

func (l *Library) checkBorrowIDs(bookID, patronID int) error {
	var errs []error

	if !l.books.idValid(bookID) {
		errs = append(errs, ErrInvalidBookID)
	}

	if !l.patrons.idValid(patronID) {
		errs = append(errs, ErrInvalidPatronID)
	}

	return errors.Join(errs...)
}

func (l *Library) bookAvailable(bookID int) bool {
	if !l.books.idValid(bookID) {
		return false
	}

	return !l.books.at(bookID).isBorrowed()
}

func (l *Library) patronUnderLimit(patronID int) bool {
	return l.activeBorrowCount(patronID) < l.maxBorrowedBooks
}

func (l *Library) activeBorrowCount(patronID int) int {
	if patronID < 0 {
		return 0 // NoID would otherwise count every unborrowed book
	}

	count := 0

	for _, book := range l.books.occupied() {
		if book.CurrentBorrowerID() == patronID {
			count++
		}
	}

	return count
}

func failureInfo(reasons []error) string {
	infos := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		infos = append(infos, reason.Error())
	}

	return strings.Join(infos, "; ")
}
