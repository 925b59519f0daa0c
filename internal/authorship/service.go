package authorship

import "context"

// Service is a thin passthrough; the interesting rules live in the
// database constraints and the repository's error mapping.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, a Authorship) error {
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, isbn string, authorID int) (Authorship, error) {
	return s.repo.Get(ctx, isbn, authorID)
}

func (s *Service) List(ctx context.Context) ([]Authorship, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, isbn string, authorID int, a Authorship) error {
	return s.repo.Update(ctx, isbn, authorID, a)
}

func (s *Service) Delete(ctx context.Context, isbn string, authorID int) error {
	return s.repo.Delete(ctx, isbn, authorID)
}
