package book

import (
	"errors"

	"bookstorage/internal/author"
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrConflict is returned when a book with the same ISBN already exists.
	ErrConflict = errors.New("book already exists")
	// ErrAuthorNotFound is returned when a referenced author id does not resolve.
	ErrAuthorNotFound = errors.New("referenced author not found")
	// ErrPublisherRequired is returned when the publishing company name is blank.
	ErrPublisherRequired = errors.New("publishing company name must not be blank")
	// ErrAuthorNameRequired is returned when an inline author carries
	// neither an id nor a fio.
	ErrAuthorNameRequired = errors.New("author fio must not be blank")
)

// Book is the aggregate served over the API: the stored record plus its
// resolved authors and genre names. Cost is a decimal string; floats never
// carry money.
type Book struct {
	ISBN              string          `json:"isbn"`
	Name              string          `json:"name"`
	PublicationYear   string          `json:"publicationYear,omitempty"`
	AgeLimit          float32         `json:"ageLimit"`
	PublishingCompany string          `json:"publishingCompany"`
	PageCount         int             `json:"pageCount"`
	Language          string          `json:"language,omitempty"`
	Cost              string          `json:"cost,omitempty"`
	CountOfBooks      int             `json:"countOfBooks"`
	Authors           []author.Author `json:"authors"`
	Genres            []string        `json:"genres"`
}

// AuthorRef references an existing author by id, or describes a new one to
// be created inline when ID is nil.
type AuthorRef struct {
	ID        *int   `json:"id"`
	Fio       string `json:"fio"`
	BirthDate string `json:"birthDate"`
	Country   string `json:"country"`
	Nickname  string `json:"nickname"`
}

// Input carries everything needed to create or fully replace a book,
// including nested author references and genre names.
type Input struct {
	ISBN              string
	Name              string
	PublicationYear   string
	AgeLimit          float32
	PublishingCompany string
	PageCount         int
	Language          string
	Cost              string
	CountOfBooks      int
	Authors           []AuthorRef
	Genres            []string
}

// Query defines filtering and ordering for listing books.
type Query struct {
	Search     string
	SortColumn string
	SortOrder  string
}
