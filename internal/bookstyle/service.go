package bookstyle

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, bs BookStyle) error {
	return s.repo.Create(ctx, bs)
}

func (s *Service) Get(ctx context.Context, isbn string, styleID int) (BookStyle, error) {
	return s.repo.Get(ctx, isbn, styleID)
}

func (s *Service) List(ctx context.Context) ([]BookStyle, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, isbn string, styleID int, bs BookStyle) error {
	return s.repo.Update(ctx, isbn, styleID, bs)
}

func (s *Service) Delete(ctx context.Context, isbn string, styleID int) error {
	return s.repo.Delete(ctx, isbn, styleID)
}
