package author

import (
	"context"
	"sort"
	"strings"
)

// Service provides author-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new author service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, a *Author) error {
	return s.repo.Create(ctx, a)
}

func (s *Service) GetByID(ctx context.Context, id int) (Author, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all authors, sorted in memory when a sort column is given.
func (s *Service) List(ctx context.Context, sortColumn, sortOrder string) ([]Author, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortAuthors(authors, sortColumn, sortOrder)
	return authors, nil
}

// Search returns authors whose fio or nickname contains q, case-insensitive.
func (s *Service) Search(ctx context.Context, q, sortColumn, sortOrder string) ([]Author, error) {
	authors, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	sortAuthors(authors, sortColumn, sortOrder)
	return authors, nil
}

func (s *Service) Update(ctx context.Context, a *Author) error {
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// BulkDelete removes the given authors, and any book whose entire author set
// falls inside the deletion set. With removeEverything false the call is a
// no-op: intent has not been confirmed, storage stays untouched.
//
// The orphan check runs against the pre-deletion author set of each affected
// book, so it must happen before anything is removed.
func (s *Service) BulkDelete(ctx context.Context, ids []int, removeEverything bool) error {
	if !removeEverything {
		return nil
	}

	ids = uniqueInts(ids)
	existing, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	if len(existing) != len(ids) {
		return ErrNotFound
	}

	bookAuthors, err := s.repo.BooksByAuthors(ctx, ids)
	if err != nil {
		return err
	}

	orphaned := OrphanedBooks(bookAuthors, ids)
	return s.repo.DeleteWithBooks(ctx, ids, orphaned)
}

// OrphanedBooks returns the ISBNs of every book whose author set is fully
// contained in the deletion set.
func OrphanedBooks(bookAuthors map[string][]int, deleting []int) []string {
	del := make(map[int]bool, len(deleting))
	for _, id := range deleting {
		del[id] = true
	}

	var isbns []string
	for isbn, authorIDs := range bookAuthors {
		all := true
		for _, id := range authorIDs {
			if !del[id] {
				all = false
				break
			}
		}
		if all {
			isbns = append(isbns, isbn)
		}
	}
	sort.Strings(isbns)
	return isbns
}

func uniqueInts(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	var out []int
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// sortAuthors orders authors by the given column, case-insensitive, empty
// values last. Unknown columns fall back to fio.
func sortAuthors(authors []Author, sortColumn, sortOrder string) {
	if sortColumn == "" {
		return
	}

	key := func(a Author) string {
		switch strings.ToLower(sortColumn) {
		case "birthdate":
			return a.BirthDate
		case "country":
			return a.Country
		case "nickname":
			return a.Nickname
		default:
			return a.Fio
		}
	}

	desc := strings.EqualFold(sortOrder, "desc")
	sort.SliceStable(authors, func(i, j int) bool {
		a, b := key(authors[i]), key(authors[j])
		less := lessEmptyLast(a, b)
		if desc {
			return lessEmptyLast(b, a)
		}
		return less
	})
}

func lessEmptyLast(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	return strings.ToLower(a) < strings.ToLower(b)
}
