// Package circulation contains the domain events of a fixed-capacity library:
// books joining the collection, patrons registering, and books being borrowed or returned.
//
// Events describe meaningful business occurrences rather than generic create/update
// operations. A failed borrow is an event of its own (BorrowingBookFailed) and carries
// the failure info.
//
// All events implement DomainEvent.
package circulation
