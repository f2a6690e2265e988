package journal

import (
	"maps"
	"slices"
	"strconv"

	"github.com/AntonStoeckl/fixed-capacity-library-go/circulation"
)

// PatronFilter matches the registration of one patron and every borrow, failed borrow and return by them.
func PatronFilter(patronID circulation.PatronID) Filter {
	id := strconv.Itoa(patronID)

	return BuildFilter().
		Matching().
		AnyEventTypeOf(
			circulation.BookBorrowedEventType,
			circulation.BorrowingBookFailedEventType,
			circulation.BookReturnedEventType,
		).
		AndAnyPredicateOf(P("PatronID", id)).
		OrMatching().
		AnyEventTypeOf(circulation.PatronRegisteredEventType).
		AndAllPredicatesOf(P("PatronID", id)).
		Finalize()
}

// PatronBorrowHistory is the borrowing history of one patron.
type PatronBorrowHistory struct {
	PatronID          circulation.PatronID
	CurrentlyBorrowed []circulation.BookID
	TotalBorrows      int
	FailedBorrows     int
}

// BorrowHistory is the projected borrowing history of all patrons that appear in the events.
type BorrowHistory struct {
	Patrons []PatronBorrowHistory
}

// ForPatron returns the history of one patron, or an empty history if the patron never borrowed anything.
func (h BorrowHistory) ForPatron(patronID circulation.PatronID) PatronBorrowHistory {
	for _, patron := range h.Patrons {
		if patron.PatronID == patronID {
			return patron
		}
	}

	return PatronBorrowHistory{PatronID: patronID}
}

// ProjectBorrowHistory folds the circulation events into each patron's borrowing history.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: the circulation events of one library in order of occurrence
//	THEN: one PatronBorrowHistory per patron that borrowed or failed to borrow, ordered by PatronID
//	INCLUDES: books currently borrowed (ordered by BookID), total successful borrows, failed borrows
//	EXCLUDES: books that have been returned from CurrentlyBorrowed
func ProjectBorrowHistory(history circulation.DomainEvents) BorrowHistory {
	patrons := make(map[circulation.PatronID]*PatronBorrowHistory)
	borrowed := make(map[circulation.PatronID]map[circulation.BookID]struct{})

	patronFor := func(patronID circulation.PatronID) *PatronBorrowHistory {
		if _, exists := patrons[patronID]; !exists {
			patrons[patronID] = &PatronBorrowHistory{PatronID: patronID}
			borrowed[patronID] = make(map[circulation.BookID]struct{})
		}

		return patrons[patronID]
	}

	for _, event := range history {
		switch e := event.(type) {
		case circulation.BookBorrowed:
			patronFor(e.PatronID).TotalBorrows++
			borrowed[e.PatronID][e.BookID] = struct{}{}

		case circulation.BorrowingBookFailed:
			patronFor(e.PatronID).FailedBorrows++

		case circulation.BookReturned:
			patronFor(e.PatronID)
			delete(borrowed[e.PatronID], e.BookID)
		}
	}

	result := BorrowHistory{Patrons: make([]PatronBorrowHistory, 0, len(patrons))}

	for _, patronID := range slices.Sorted(maps.Keys(patrons)) {
		patron := *patrons[patronID]
		patron.CurrentlyBorrowed = slices.Sorted(maps.Keys(borrowed[patronID]))
		result.Patrons = append(result.Patrons, patron)
	}

	return result
}
