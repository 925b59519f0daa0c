package author

import "errors"

// ErrNotFound is returned when an author is not found.
var ErrNotFound = errors.New("author not found")

// Author represents a person appearing in one or more authorship links.
// BirthDate is carried as an opaque string; the upstream data is not
// uniformly formatted.
type Author struct {
	ID        int    `json:"id"`
	Fio       string `json:"fio"`
	BirthDate string `json:"birthDate,omitempty"`
	Country   string `json:"country,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
}
