package publisher

import "context"

// Service provides publishing company business logic.
type Service struct {
	repo Repository
}

// NewService creates a new publishing company service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, pc *PublishingCompany) error {
	return s.repo.Create(ctx, pc)
}

func (s *Service) GetByName(ctx context.Context, name string) (PublishingCompany, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *Service) List(ctx context.Context) ([]PublishingCompany, error) {
	return s.repo.List(ctx)
}

func (s *Service) Search(ctx context.Context, q string) ([]PublishingCompany, error) {
	return s.repo.Search(ctx, q)
}

// Update replaces the mutable fields of the company named originalName. When
// the payload carries a different name the company is renamed: its books
// follow to the new record and the old record is removed.
func (s *Service) Update(ctx context.Context, originalName string, pc *PublishingCompany) (PublishingCompany, error) {
	existing, err := s.repo.GetByName(ctx, originalName)
	if err != nil {
		return PublishingCompany{}, err
	}

	if pc.Name == existing.Name {
		if err := s.repo.Update(ctx, pc); err != nil {
			return PublishingCompany{}, err
		}
		return *pc, nil
	}

	if err := s.repo.Rename(ctx, originalName, pc); err != nil {
		return PublishingCompany{}, err
	}
	return *pc, nil
}

func (s *Service) Delete(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, name)
}

func (s *Service) DeleteMany(ctx context.Context, names []string) error {
	return s.repo.DeleteMany(ctx, uniqueStrings(names))
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
