package style

import "context"

// Service provides style (genre) business logic.
type Service struct {
	repo Repository
}

// NewService creates a new style service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, st *Style) error {
	return s.repo.Create(ctx, st)
}

func (s *Service) GetByID(ctx context.Context, id int) (Style, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Style, error) {
	return s.repo.List(ctx)
}

func (s *Service) Search(ctx context.Context, q string) ([]Style, error) {
	return s.repo.Search(ctx, q)
}

func (s *Service) Update(ctx context.Context, st *Style) error {
	return s.repo.Update(ctx, st)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Resolve is the get-or-create path genres take when books are written.
func (s *Service) Resolve(ctx context.Context, name string) (Style, error) {
	return s.repo.Resolve(ctx, name)
}
