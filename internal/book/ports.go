package book

import "context"

// Repository is the storage contract for books. Create and Update run the
// whole unit of work in one transaction: publisher get-or-create, author
// resolution, genre resolution, and link rows.
type Repository interface {
	Create(ctx context.Context, in Input) (Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	List(ctx context.Context, q Query) ([]Book, error)
	Update(ctx context.Context, isbn string, in Input) (Book, error)
	Delete(ctx context.Context, isbn string) error
	DeleteMany(ctx context.Context, isbns []string) error
}
