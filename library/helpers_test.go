package library_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/fixed-capacity-library-go/library"
)

func givenLibrary(t *testing.T, bookCapacity, maxBorrowed, patronCapacity int, options ...library.Option) *library.Library {
	t.Helper()

	lib, err := library.NewLibrary(bookCapacity, maxBorrowed, patronCapacity, options...)
	require.NoError(t, err)

	return lib
}

func givenBook(title string, comic, dramatic, educational int) *library.Book {
	return library.NewBook(title, "Some Author", 1990, comic, dramatic, educational)
}

// givenEasyPatron enjoys every book with at least one positive rating.
func givenEasyPatron(firstName string) *library.Patron {
	return library.NewPatron(firstName, "Reader", 1, 1, 1, 1)
}

func givenBookAdded(t *testing.T, lib *library.Library, book *library.Book) int {
	t.Helper()

	id := lib.AddBook(book)
	require.NotEqual(t, library.NoID, id, "book should be added")

	return id
}

func givenPatronRegistered(t *testing.T, lib *library.Library, patron *library.Patron) int {
	t.Helper()

	id := lib.RegisterPatron(patron)
	require.NotEqual(t, library.NoID, id, "patron should be registered")

	return id
}

func givenBookBorrowed(t *testing.T, lib *library.Library, bookID, patronID int) {
	t.Helper()

	require.NoError(t, lib.TryBorrowBook(bookID, patronID), "book should be borrowed")
}

type librarySnapshot struct {
	borrowers   []int
	bookCount   int
	patronCount int
}

func snapshotOf(lib *library.Library) librarySnapshot {
	snapshot := librarySnapshot{
		bookCount:   lib.BookCount(),
		patronCount: lib.PatronCount(),
	}

	for _, book := range lib.Books() {
		snapshot.borrowers = append(snapshot.borrowers, book.CurrentBorrowerID())
	}

	return snapshot
}
