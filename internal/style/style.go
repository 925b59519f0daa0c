package style

import "errors"

var (
	// ErrNotFound is returned when a style is not found.
	ErrNotFound = errors.New("style not found")
	// ErrConflict is returned when a style with the same name already exists.
	ErrConflict = errors.New("style already exists")
)

// Style is a genre. Names are unique under case-insensitive comparison.
type Style struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
