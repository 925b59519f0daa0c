package book

import (
	"context"
	"sort"
	"strings"
)

// Service applies catalog policy on top of the repository: input hygiene,
// and the in-memory "author" ordering that SQL cannot express because the
// sort key lives on a joined aggregate.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in Input) (Book, error) {
	if err := normalizeInput(&in); err != nil {
		return Book{}, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

func (s *Service) List(ctx context.Context, q Query) ([]Book, error) {
	books, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if q.SortColumn == "author" {
		sortByFirstAuthor(books, q.SortOrder == "desc")
	}
	return books, nil
}

func (s *Service) Update(ctx context.Context, isbn string, in Input) (Book, error) {
	if err := normalizeInput(&in); err != nil {
		return Book{}, err
	}
	return s.repo.Update(ctx, isbn, in)
}

func (s *Service) Delete(ctx context.Context, isbn string) error {
	return s.repo.Delete(ctx, isbn)
}

func (s *Service) BulkDelete(ctx context.Context, isbns []string) error {
	seen := make(map[string]struct{}, len(isbns))
	unique := make([]string, 0, len(isbns))
	for _, isbn := range isbns {
		if _, ok := seen[isbn]; ok {
			continue
		}
		seen[isbn] = struct{}{}
		unique = append(unique, isbn)
	}
	if len(unique) == 0 {
		return nil
	}
	return s.repo.DeleteMany(ctx, unique)
}

// normalizeInput trims the publisher name and drops blank genre entries.
// A blank publisher is rejected here so the repository never has to, and
// an inline author without an id must carry a non-blank fio.
func normalizeInput(in *Input) error {
	in.PublishingCompany = strings.TrimSpace(in.PublishingCompany)
	if in.PublishingCompany == "" {
		return ErrPublisherRequired
	}
	for i := range in.Authors {
		in.Authors[i].Fio = strings.TrimSpace(in.Authors[i].Fio)
		if in.Authors[i].ID == nil && in.Authors[i].Fio == "" {
			return ErrAuthorNameRequired
		}
	}
	genres := in.Genres[:0]
	for _, g := range in.Genres {
		if strings.TrimSpace(g) != "" {
			genres = append(genres, g)
		}
	}
	in.Genres = genres
	return nil
}

// sortByFirstAuthor orders books case-insensitively by the fio of each
// book's first author (authors are loaded in ascending id order). Books
// without authors key as the empty string and sort first ascending.
func sortByFirstAuthor(books []Book, desc bool) {
	key := func(b Book) string {
		if len(b.Authors) == 0 {
			return ""
		}
		return strings.ToLower(b.Authors[0].Fio)
	}
	sort.SliceStable(books, func(i, j int) bool {
		if desc {
			return key(books[j]) < key(books[i])
		}
		return key(books[i]) < key(books[j])
	})
}
