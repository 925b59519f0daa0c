package authorship

import "context"

// Repository is the storage contract for book-author links.
type Repository interface {
	Create(ctx context.Context, a Authorship) error
	Get(ctx context.Context, isbn string, authorID int) (Authorship, error)
	List(ctx context.Context) ([]Authorship, error)
	Update(ctx context.Context, isbn string, authorID int, a Authorship) error
	Delete(ctx context.Context, isbn string, authorID int) error
}
