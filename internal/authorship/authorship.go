package authorship

import "errors"

var (
	// ErrNotFound is returned when the link does not exist.
	ErrNotFound = errors.New("authorship not found")
	// ErrConflict is returned when the link already exists.
	ErrConflict = errors.New("authorship already exists")
	// ErrInvalidRef is returned when the book or author does not exist.
	ErrInvalidRef = errors.New("authorship references a missing book or author")
)

// Authorship links a book to one of its authors. The pair is the identity;
// there is no surrogate key.
type Authorship struct {
	BookISBN string `json:"bookIsbn"`
	AuthorID int    `json:"authorId"`
}
