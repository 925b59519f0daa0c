package style

import "context"

// Repository defines the contract for style storage.
type Repository interface {
	Create(ctx context.Context, s *Style) error
	GetByID(ctx context.Context, id int) (Style, error)
	List(ctx context.Context) ([]Style, error)
	Search(ctx context.Context, q string) ([]Style, error)
	Update(ctx context.Context, s *Style) error
	Delete(ctx context.Context, id int) error
	Resolve(ctx context.Context, name string) (Style, error)
}
