package author

import "context"

// Repository defines the contract for author data storage.
type Repository interface {
	Create(ctx context.Context, a *Author) error
	GetByID(ctx context.Context, id int) (Author, error)
	GetMany(ctx context.Context, ids []int) ([]Author, error)
	List(ctx context.Context) ([]Author, error)
	Search(ctx context.Context, q string) ([]Author, error)
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id int) error

	// BooksByAuthors returns, for every book linked to at least one of the
	// given authors, the complete pre-deletion set of the book's author ids.
	BooksByAuthors(ctx context.Context, ids []int) (map[string][]int, error)

	// DeleteWithBooks removes the given authors and books in one transaction.
	// Authorship and book-style links go with them via the ownership cascade.
	DeleteWithBooks(ctx context.Context, authorIDs []int, isbns []string) error
}
