package publisher

import "errors"

var (
	// ErrNotFound is returned when a publishing company is not found.
	ErrNotFound = errors.New("publishing company not found")
	// ErrConflict is returned when the target name is already taken.
	ErrConflict = errors.New("publishing company already exists")
)

// PublishingCompany is keyed by its name. EstablishmentYear is an ISO date
// string (YYYY-MM-DD) or empty.
type PublishingCompany struct {
	Name              string `json:"name"`
	EstablishmentYear string `json:"establishmentYear,omitempty"`
	ContactInfo       string `json:"contactInfo,omitempty"`
	City              string `json:"city,omitempty"`
}
