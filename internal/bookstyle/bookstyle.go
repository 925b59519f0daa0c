package bookstyle

import "errors"

var (
	// ErrNotFound is returned when the link does not exist.
	ErrNotFound = errors.New("book style not found")
	// ErrConflict is returned when the link already exists.
	ErrConflict = errors.New("book style already exists")
	// ErrInvalidRef is returned when the book or style does not exist.
	ErrInvalidRef = errors.New("book style references a missing book or style")
)

// BookStyle links a book to one of its genres by style id.
type BookStyle struct {
	BookISBN string `json:"bookIsbn"`
	StyleID  int    `json:"styleId"`
}
