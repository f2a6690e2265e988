// Package library provides a small, fixed-capacity library of books and patrons
// with a borrow/return workflow and a taste-based book recommendation.
//
// A Library owns two slot registries, one for books and one for patrons. Each registry
// has a capacity fixed at construction. Entities are handed to the Library once and
// are identified by the index of the slot they occupy (their "id"). Slots fill strictly
// left-to-right and are never vacated, so the occupied slots always form a contiguous
// prefix. The free-slot search relies on that.
//
// Lookups are identity based: two *Book values with identical fields are different books.
//
// Failures never panic. The plain methods return sentinel values (NoID, false, nil),
// the Try* companions return one of the package-level sentinel errors.
//
// Common usage pattern:
//
//	lib, err := library.NewLibrary(10, 3, 5, library.WithLogger(slog.Default()))
//	if err != nil {
//		// only invalid options fail
//	}
//
//	bookID := lib.AddBook(library.NewBook("Momo", "Michael Ende", 1973, 6, 8, 10))
//	patronID := lib.RegisterPatron(library.NewPatron("Mimi", "Huppert", 7, 6, 10, 143))
//
//	if err := lib.TryBorrowBook(bookID, patronID); err != nil {
//		// errors.Is(err, library.ErrIneligibleBorrow) etc.
//	}
//
//	book, found := lib.SuggestBook(patronID)
package library
