package main

import (
	"context"
	"fmt"
	"io"

	"github.com/AntonStoeckl/fixed-capacity-library-go/journal"
	"github.com/AntonStoeckl/fixed-capacity-library-go/library"
	"github.com/AntonStoeckl/fixed-capacity-library-go/library/observable"
)

const logMsgScenarioStep = "scenario step"

// Runner plays a Scenario against an observable library and writes a human-readable transcript.
// Each step is logged at debug level before it runs.
type Runner struct {
	lib    *observable.Library
	out    io.Writer
	logger library.ContextualLogger
}

func NewRunner(lib *observable.Library, out io.Writer, logger library.ContextualLogger) *Runner {
	return &Runner{lib: lib, out: out, logger: logger}
}

// Run adds the scenario's books and patrons, then executes its steps in order.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) error {
	r.printf("::BOOKS::")
	for _, entry := range scenario.Books() {
		if err := ctx.Err(); err != nil {
			return err
		}

		book := library.NewBook(entry.Title, entry.Author, entry.Year, entry.Comic, entry.Dramatic, entry.Educational)
		r.printf("%s -> id %d", book, r.lib.AddBook(ctx, book))
	}

	r.printf("::PATRONS::")
	for _, entry := range scenario.Patrons() {
		if err := ctx.Err(); err != nil {
			return err
		}

		patron := library.NewPatron(entry.FirstName, entry.LastName, entry.Comic, entry.Dramatic, entry.Educational, entry.Threshold)
		r.printf("%s -> id %d", patron, r.lib.RegisterPatron(ctx, patron))
	}

	r.printf("::STEPS::")
	for _, step := range scenario.Steps() {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.runStep(ctx, step)
	}

	return nil
}

func (r *Runner) runStep(ctx context.Context, step Step) {
	core := r.lib.Core()

	r.logger.DebugContext(ctx, logMsgScenarioStep,
		observable.LogAttrOperation, step.Action,
		observable.LogAttrBookID, step.BookID,
		observable.LogAttrPatronID, step.PatronID,
	)

	switch step.Action {
	case ActionBorrow:
		ok := r.lib.BorrowBook(ctx, step.BookID, step.PatronID)
		r.printf("borrow book %d by patron %d: %t", step.BookID, step.PatronID, ok)

	case ActionReturn:
		r.lib.ReturnBook(ctx, step.BookID)
		r.printf("return book %d: available %t", step.BookID, core.IsBookAvailable(step.BookID))

	case ActionSuggest:
		r.printSuggestionCandidates(step.PatronID)

		if book, ok := r.lib.SuggestBook(ctx, step.PatronID); ok {
			r.printf("suggest to patron %d: %s", step.PatronID, book)
		} else {
			r.printf("suggest to patron %d: no book found", step.PatronID)
		}

	case ActionReport:
		r.printReport()
	}
}

func (r *Runner) printSuggestionCandidates(patronID int) {
	core := r.lib.Core()

	patron, ok := core.Patron(patronID)
	if !ok {
		return
	}

	for id, book := range core.Books() {
		r.printf(
			"  candidate %d %s: score %d, will enjoy %t, available %t",
			id, book, patron.BookScore(book), patron.WillEnjoy(book), core.IsBookAvailable(id),
		)
	}
}

func (r *Runner) printReport() {
	core := r.lib.Core()

	r.printf("::ALL LIBRARY BOOKS:: %d/%d", core.BookCount(), core.MaxBookCapacity())
	for id, book := range core.Books() {
		r.printf("  %d %s, borrower %d", id, book, book.CurrentBorrowerID())
	}

	r.printf("::ALL LIBRARY PATRONS:: %d/%d", core.PatronCount(), core.MaxPatronCapacity())
	for id, patron := range core.Patrons() {
		r.printf("  %d %s, borrowed %d/%d", id, patron, core.ActiveBorrowCount(id), core.MaxBorrowedBooks())
	}
}

// PrintJournal writes every recorded circulation event and the borrow history projected from them.
func (r *Runner) PrintJournal(ctx context.Context, j *journal.Journal) error {
	storableEvents, maxSequenceNumber, err := j.Query(ctx, journal.BuildFilter().MatchingAnyEvent())
	if err != nil {
		return err
	}

	r.printf("::JOURNAL:: %d events, max sequence number %d", len(storableEvents), maxSequenceNumber)
	for _, event := range storableEvents {
		r.printf("  %s %s %s", event.OccurredAt.Format("15:04:05.000"), event.EventType, event.PayloadJSON)
	}

	r.printf("::BORROW HISTORY::")
	for patronID := range r.lib.Core().Patrons() {
		if err := r.printPatronHistory(ctx, j, patronID); err != nil {
			return err
		}
	}

	return nil
}

// printPatronHistory projects one patron's history from their events only. Patrons who never tried to borrow are skipped.
func (r *Runner) printPatronHistory(ctx context.Context, j *journal.Journal, patronID int) error {
	storableEvents, maxSequenceNumber, err := j.Query(ctx, journal.PatronFilter(patronID))
	if err != nil {
		return err
	}

	domainEvents, err := journal.DomainEventsFrom(storableEvents)
	if err != nil {
		return err
	}

	history := journal.ProjectBorrowHistory(domainEvents).ForPatron(patronID)
	if history.TotalBorrows == 0 && history.FailedBorrows == 0 {
		return nil
	}

	r.printf(
		"  patron %d: borrowed now %v, total %d, failed %d, events %d, max sequence number %d",
		patronID, history.CurrentlyBorrowed, history.TotalBorrows, history.FailedBorrows,
		len(storableEvents), maxSequenceNumber,
	)

	return nil
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}
