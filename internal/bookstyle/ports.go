package bookstyle

import "context"

// Repository is the storage contract for book-style links.
type Repository interface {
	Create(ctx context.Context, bs BookStyle) error
	Get(ctx context.Context, isbn string, styleID int) (BookStyle, error)
	List(ctx context.Context) ([]BookStyle, error)
	Update(ctx context.Context, isbn string, styleID int, bs BookStyle) error
	Delete(ctx context.Context, isbn string, styleID int) error
}
