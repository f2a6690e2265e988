package library

// SuggestBook returns the available book the patron will enjoy most.
// Returns nil, false for an invalid patronID or when no book qualifies.
func (l *Library) SuggestBook(patronID int) (*Book, bool) {
	book, err := l.TrySuggestBook(patronID)
	if err != nil {
		return nil, false
	}

	return book, true
}

// TrySuggestBook is SuggestBook with the failure reason: ErrInvalidPatronID or ErrNoMatch.
//
// Among the books that are available and enjoyed by the patron, the one with the greatest score wins.
// A later book only replaces the current best on a strictly greater score, so ties go to the lowest id.
func (l *Library) TrySuggestBook(patronID int) (*Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.patrons.idValid(patronID) {
		return nil, ErrInvalidPatronID
	}

	patron := l.patrons.at(patronID)

	var best *Book
	bestScore := 0

	for id, book := range l.books.occupied() {
		if !l.bookAvailable(id) || !patron.WillEnjoy(book) {
			continue
		}

		if score := patron.BookScore(book); best == nil || score > bestScore {
			best = book
			bestScore = score
		}
	}

	if best == nil {
		return nil, ErrNoMatch
	}

	return best, nil
}
