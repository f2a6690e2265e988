package library

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// Book is a book with fixed literary ratings, a current borrower and an owning library.
//
// A Book belongs to the first Library it is added to; other libraries reject it with ErrBookInAnotherLibrary.
// Only that Library changes the borrower, and only while borrowing or returning it.
// The zero Book is an unborrowed book without title or ratings.
type Book struct {
	title            string
	author           string
	publicationYear  int
	comicValue       int
	dramaticValue    int
	educationalValue int
	borrower         int // patron id + 1, so the zero value means unborrowed
	owner            atomic.Pointer[Library]
}

// NewBook creates an unborrowed Book.
func NewBook(
	title string,
	author string,
	publicationYear int,
	comicValue int,
	dramaticValue int,
	educationalValue int,
) *Book {

	return &Book{
		title:            title,
		author:           author,
		publicationYear:  publicationYear,
		comicValue:       comicValue,
		dramaticValue:    dramaticValue,
		educationalValue: educationalValue,
	}
}

func (b *Book) Title() string {
	return b.title
}

func (b *Book) Author() string {
	return b.author
}

func (b *Book) PublicationYear() int {
	return b.publicationYear
}

func (b *Book) ComicValue() int {
	return b.comicValue
}

func (b *Book) DramaticValue() int {
	return b.dramaticValue
}

func (b *Book) EducationalValue() int {
	return b.educationalValue
}

// LiteraryValue is the sum of the comic, dramatic and educational value.
func (b *Book) LiteraryValue() int {
	return b.comicValue + b.dramaticValue + b.educationalValue
}

// CurrentBorrowerID returns the id of the patron currently borrowing this book, or NoID.
func (b *Book) CurrentBorrowerID() int {
	return b.borrower - 1
}

// String renders the book as [title,author,year,literaryValue].
func (b *Book) String() string {
	var sb strings.Builder

	sb.WriteString("[")
	sb.WriteString(b.title)
	sb.WriteString(",")
	sb.WriteString(b.author)
	sb.WriteString(",")
	sb.WriteString(strconv.Itoa(b.publicationYear))
	sb.WriteString(",")
	sb.WriteString(strconv.Itoa(b.LiteraryValue()))
	sb.WriteString("]")

	return sb.String()
}

func (b *Book) isBorrowed() bool {
	return b.borrower != 0
}

func (b *Book) setBorrowerID(patronID int) {
	b.borrower = patronID + 1
}

func (b *Book) markReturned() {
	b.borrower = 0
}

// claimFor makes l the owner of b unless another library already owns it.
func (b *Book) claimFor(l *Library) error {
	if b.owner.CompareAndSwap(nil, l) || b.owner.Load() == l {
		return nil
	}

	return ErrBookInAnotherLibrary
}
