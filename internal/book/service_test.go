package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstorage/internal/author"
)

type fakeRepo struct {
	books map[string]Book

	lastQuery    Query
	deletedISBNs []string
}

func newFakeRepo(books ...Book) *fakeRepo {
	m := make(map[string]Book, len(books))
	for _, b := range books {
		m[b.ISBN] = b
	}
	return &fakeRepo{books: m}
}

func (f *fakeRepo) Create(ctx context.Context, in Input) (Book, error) {
	if _, ok := f.books[in.ISBN]; ok {
		return Book{}, ErrConflict
	}
	b := fromInput(in)
	f.books[in.ISBN] = b
	return b, nil
}

func (f *fakeRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	b, ok := f.books[isbn]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (f *fakeRepo) List(ctx context.Context, q Query) ([]Book, error) {
	f.lastQuery = q
	var out []Book
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, isbn string, in Input) (Book, error) {
	if _, ok := f.books[isbn]; !ok {
		return Book{}, ErrNotFound
	}
	b := fromInput(in)
	b.ISBN = isbn
	f.books[isbn] = b
	return b, nil
}

func (f *fakeRepo) Delete(ctx context.Context, isbn string) error {
	if _, ok := f.books[isbn]; !ok {
		return ErrNotFound
	}
	delete(f.books, isbn)
	f.deletedISBNs = append(f.deletedISBNs, isbn)
	return nil
}

func (f *fakeRepo) DeleteMany(ctx context.Context, isbns []string) error {
	for _, isbn := range isbns {
		if _, ok := f.books[isbn]; !ok {
			return ErrNotFound
		}
	}
	for _, isbn := range isbns {
		delete(f.books, isbn)
		f.deletedISBNs = append(f.deletedISBNs, isbn)
	}
	return nil
}

func TestSortByFirstAuthor(t *testing.T) {
	books := func() []Book {
		return []Book{
			{ISBN: "1", Authors: []author.Author{{ID: 3, Fio: "zamyatin"}}},
			{ISBN: "2", Authors: []author.Author{{ID: 1, Fio: "Bulgakov"}, {ID: 2, Fio: "Anonymous"}}},
			{ISBN: "3", Authors: nil},
			{ISBN: "4", Authors: []author.Author{{ID: 5, Fio: "lem"}}},
		}
	}

	t.Run("ascending, authorless first", func(t *testing.T) {
		got := books()
		sortByFirstAuthor(got, false)
		assert.Equal(t, []string{"3", "2", "4", "1"}, isbnsOf(got))
	})

	t.Run("descending", func(t *testing.T) {
		got := books()
		sortByFirstAuthor(got, true)
		assert.Equal(t, []string{"1", "4", "2", "3"}, isbnsOf(got))
	})
}

func TestService_List_AuthorSort(t *testing.T) {
	repo := newFakeRepo(
		Book{ISBN: "1", Authors: []author.Author{{ID: 1, Fio: "Zamyatin"}}},
		Book{ISBN: "2", Authors: []author.Author{{ID: 2, Fio: "Bulgakov"}}},
	)
	svc := NewService(repo)

	got, err := svc.List(context.Background(), Query{SortColumn: "author"})

	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, isbnsOf(got))
	// The repository still saw the original query.
	assert.Equal(t, "author", repo.lastQuery.SortColumn)
}

func TestNormalizeInput(t *testing.T) {
	t.Run("trims publisher", func(t *testing.T) {
		in := Input{PublishingCompany: "  AST  "}
		require.NoError(t, normalizeInput(&in))
		assert.Equal(t, "AST", in.PublishingCompany)
	})

	t.Run("blank publisher rejected", func(t *testing.T) {
		in := Input{PublishingCompany: "   "}
		assert.ErrorIs(t, normalizeInput(&in), ErrPublisherRequired)
	})

	t.Run("inline author without fio rejected", func(t *testing.T) {
		in := Input{PublishingCompany: "AST", Authors: []AuthorRef{{Fio: "   "}}}
		assert.ErrorIs(t, normalizeInput(&in), ErrAuthorNameRequired)
	})

	t.Run("author by id needs no fio", func(t *testing.T) {
		id := 7
		in := Input{PublishingCompany: "AST", Authors: []AuthorRef{{ID: &id}}}
		require.NoError(t, normalizeInput(&in))
	})

	t.Run("author fio trimmed", func(t *testing.T) {
		in := Input{PublishingCompany: "AST", Authors: []AuthorRef{{Fio: "  Lem  "}}}
		require.NoError(t, normalizeInput(&in))
		assert.Equal(t, "Lem", in.Authors[0].Fio)
	})

	t.Run("blank genres dropped", func(t *testing.T) {
		in := Input{PublishingCompany: "AST", Genres: []string{"Fantasy", "  ", "", "Horror"}}
		require.NoError(t, normalizeInput(&in))
		assert.Equal(t, []string{"Fantasy", "Horror"}, in.Genres)
	})
}

func TestService_BulkDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicates count once", func(t *testing.T) {
		repo := newFakeRepo(Book{ISBN: "1111111111"})
		svc := NewService(repo)

		err := svc.BulkDelete(ctx, []string{"1111111111", "1111111111"})

		require.NoError(t, err)
		assert.Equal(t, []string{"1111111111"}, repo.deletedISBNs)
	})

	t.Run("missing isbn fails the batch", func(t *testing.T) {
		repo := newFakeRepo(Book{ISBN: "1111111111"})
		svc := NewService(repo)

		err := svc.BulkDelete(ctx, []string{"1111111111", "9999999999"})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, repo.books, "1111111111")
	})

	t.Run("empty list is a no-op", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)

		assert.NoError(t, svc.BulkDelete(ctx, nil))
	})
}

func isbnsOf(books []Book) []string {
	isbns := make([]string, len(books))
	for i, b := range books {
		isbns[i] = b.ISBN
	}
	return isbns
}
