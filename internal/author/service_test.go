package author

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	authors     map[int]Author
	bookAuthors map[string][]int

	deletedAuthors []int
	deletedBooks   []string
}

func newFakeRepo(authors ...Author) *fakeRepo {
	m := make(map[int]Author, len(authors))
	for _, a := range authors {
		m[a.ID] = a
	}
	return &fakeRepo{authors: m, bookAuthors: map[string][]int{}}
}

func (f *fakeRepo) Create(ctx context.Context, a *Author) error {
	a.ID = len(f.authors) + 1
	f.authors[a.ID] = *a
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int) (Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return Author{}, ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) GetMany(ctx context.Context, ids []int) ([]Author, error) {
	var out []Author
	for _, id := range ids {
		if a, ok := f.authors[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]Author, error) {
	var out []Author
	for _, a := range f.authors {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) Search(ctx context.Context, q string) ([]Author, error) {
	return f.List(ctx)
}

func (f *fakeRepo) Update(ctx context.Context, a *Author) error {
	if _, ok := f.authors[a.ID]; !ok {
		return ErrNotFound
	}
	f.authors[a.ID] = *a
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.authors[id]; !ok {
		return ErrNotFound
	}
	delete(f.authors, id)
	return nil
}

func (f *fakeRepo) BooksByAuthors(ctx context.Context, ids []int) (map[string][]int, error) {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := map[string][]int{}
	for isbn, authorIDs := range f.bookAuthors {
		for _, id := range authorIDs {
			if want[id] {
				out[isbn] = authorIDs
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteWithBooks(ctx context.Context, authorIDs []int, isbns []string) error {
	f.deletedAuthors = append(f.deletedAuthors, authorIDs...)
	f.deletedBooks = append(f.deletedBooks, isbns...)
	for _, id := range authorIDs {
		delete(f.authors, id)
	}
	return nil
}

func TestOrphanedBooks(t *testing.T) {
	bookAuthors := map[string][]int{
		"1111111111": {1},    // solo book of author 1
		"2222222222": {1, 2}, // co-authored inside the deletion set
		"3333333333": {2, 3}, // survivor: author 3 stays
		"4444444444": {3},    // untouched
	}

	orphaned := OrphanedBooks(bookAuthors, []int{1, 2})

	assert.Equal(t, []string{"1111111111", "2222222222"}, orphaned)
}

func TestOrphanedBooks_Empty(t *testing.T) {
	assert.Empty(t, OrphanedBooks(map[string][]int{}, []int{1}))
}

func TestService_BulkDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes authors and fully orphaned books", func(t *testing.T) {
		repo := newFakeRepo(
			Author{ID: 1, Fio: "Arkady Strugatsky"},
			Author{ID: 2, Fio: "Boris Strugatsky"},
			Author{ID: 3, Fio: "Stanislaw Lem"},
		)
		repo.bookAuthors = map[string][]int{
			"1111111111": {1, 2},
			"2222222222": {2, 3},
		}
		svc := NewService(repo)

		err := svc.BulkDelete(ctx, []int{1, 2}, true)

		require.NoError(t, err)
		assert.ElementsMatch(t, []int{1, 2}, repo.deletedAuthors)
		assert.Equal(t, []string{"1111111111"}, repo.deletedBooks)
	})

	t.Run("no-op without confirmation", func(t *testing.T) {
		repo := newFakeRepo(Author{ID: 1, Fio: "Arkady Strugatsky"})
		svc := NewService(repo)

		err := svc.BulkDelete(ctx, []int{1}, false)

		require.NoError(t, err)
		assert.Empty(t, repo.deletedAuthors)
		assert.Contains(t, repo.authors, 1)
	})

	t.Run("missing author fails the whole batch", func(t *testing.T) {
		repo := newFakeRepo(Author{ID: 1, Fio: "Arkady Strugatsky"})
		svc := NewService(repo)

		err := svc.BulkDelete(ctx, []int{1, 99}, true)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, repo.deletedAuthors)
	})

	t.Run("duplicate ids count once", func(t *testing.T) {
		repo := newFakeRepo(Author{ID: 1, Fio: "Arkady Strugatsky"})
		svc := NewService(repo)

		err := svc.BulkDelete(ctx, []int{1, 1, 1}, true)

		require.NoError(t, err)
		assert.Equal(t, []int{1}, repo.deletedAuthors)
	})
}

func TestSortAuthors(t *testing.T) {
	authors := func() []Author {
		return []Author{
			{ID: 1, Fio: "zola", Country: "France"},
			{ID: 2, Fio: "Abe", Country: ""},
			{ID: 3, Fio: "lem", Country: "Poland"},
		}
	}

	t.Run("fio ascending case-insensitive", func(t *testing.T) {
		got := authors()
		sortAuthors(got, "fio", "asc")
		assert.Equal(t, []int{2, 3, 1}, idsOf(got))
	})

	t.Run("fio descending", func(t *testing.T) {
		got := authors()
		sortAuthors(got, "fio", "desc")
		assert.Equal(t, []int{1, 3, 2}, idsOf(got))
	})

	t.Run("empty values sort last", func(t *testing.T) {
		got := authors()
		sortAuthors(got, "country", "asc")
		assert.Equal(t, []int{1, 3, 2}, idsOf(got))
	})

	t.Run("no sort column keeps order", func(t *testing.T) {
		got := authors()
		sortAuthors(got, "", "asc")
		assert.Equal(t, []int{1, 2, 3}, idsOf(got))
	})
}

func idsOf(authors []Author) []int {
	ids := make([]int, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}
	return ids
}
