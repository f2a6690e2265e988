package library

// Patron is a library user with fixed taste weights and an enjoyment threshold.
// A Patron does not know how many books it holds; the Library derives that from its books.
type Patron struct {
	firstName           string
	lastName            string
	comicTendency       int
	dramaticTendency    int
	educationalTendency int
	enjoymentThreshold  int
}

// NewPatron creates a Patron.
func NewPatron(
	firstName string,
	lastName string,
	comicTendency int,
	dramaticTendency int,
	educationalTendency int,
	enjoymentThreshold int,
) *Patron {

	return &Patron{
		firstName:           firstName,
		lastName:            lastName,
		comicTendency:       comicTendency,
		dramaticTendency:    dramaticTendency,
		educationalTendency: educationalTendency,
		enjoymentThreshold:  enjoymentThreshold,
	}
}

func (p *Patron) FirstName() string {
	return p.firstName
}

func (p *Patron) LastName() string {
	return p.lastName
}

func (p *Patron) ComicTendency() int {
	return p.comicTendency
}

func (p *Patron) DramaticTendency() int {
	return p.dramaticTendency
}

func (p *Patron) EducationalTendency() int {
	return p.educationalTendency
}

func (p *Patron) EnjoymentThreshold() int {
	return p.enjoymentThreshold
}

// BookScore weighs each rating of the book with the matching tendency of this patron.
// Plain integer arithmetic, no normalization.
func (p *Patron) BookScore(book *Book) int {
	totalComedy := p.comicTendency * book.comicValue
	totalDrama := p.dramaticTendency * book.dramaticValue
	totalEducation := p.educationalTendency * book.educationalValue

	return totalComedy + totalDrama + totalEducation
}

// WillEnjoy reports whether the book's score reaches this patron's threshold (inclusive).
func (p *Patron) WillEnjoy(book *Book) bool {
	return p.BookScore(book) >= p.enjoymentThreshold
}

// String renders the patron as "firstName lastName".
func (p *Patron) String() string {
	return p.firstName + " " + p.lastName
}
