package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstorage/internal/author"
	"bookstorage/internal/style"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const bookColumns = `b.isbn, b.name,
	COALESCE(to_char(b.publication_year, 'YYYY-MM-DD'), ''),
	b.age_limit, b.publishing_company, b.page_count,
	COALESCE(b.language, ''), COALESCE(b.cost::text, ''), b.count_of_books`

// sortColumns whitelists the ORDER BY targets the API accepts. The
// "author" column is absent on purpose: it is sorted in memory by the
// service after the aggregate is loaded.
var sortColumns = map[string]string{
	"name":               "lower(b.name)",
	"publication_year":   "b.publication_year",
	"publishing_company": "lower(b.publishing_company)",
	"count_of_books":     "b.count_of_books",
	"isbn":               "b.isbn",
}

func (r *PostgresRepo) Create(ctx context.Context, in Input) (Book, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Book{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)`, in.ISBN).Scan(&exists)
	if err != nil {
		return Book{}, fmt.Errorf("check isbn: %w", err)
	}
	if exists {
		return Book{}, ErrConflict
	}

	if err := ensureCompany(ctx, tx, in.PublishingCompany); err != nil {
		return Book{}, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO books (isbn, name, publication_year, age_limit, publishing_company, page_count, language, cost, count_of_books)
		VALUES ($1, $2, NULLIF($3, '')::date, $4, $5, $6, NULLIF($7, ''), NULLIF($8, '')::numeric, $9)`,
		in.ISBN, in.Name, in.PublicationYear, in.AgeLimit, in.PublishingCompany,
		in.PageCount, in.Language, in.Cost, in.CountOfBooks)
	if err != nil {
		return Book{}, fmt.Errorf("insert book: %w", err)
	}

	authors, err := linkAuthors(ctx, tx, in.ISBN, in.Authors)
	if err != nil {
		return Book{}, err
	}
	genres, err := linkGenres(ctx, tx, in.ISBN, in.Genres)
	if err != nil {
		return Book{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Book{}, fmt.Errorf("commit tx: %w", err)
	}

	b := fromInput(in)
	b.Authors = authors
	b.Genres = genres
	return b, nil
}

func (r *PostgresRepo) Update(ctx context.Context, isbn string, in Input) (Book, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Book{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var current string
	err = tx.QueryRow(ctx, `SELECT isbn FROM books WHERE isbn = $1 FOR UPDATE`, isbn).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, fmt.Errorf("lock book: %w", err)
	}

	if err := ensureCompany(ctx, tx, in.PublishingCompany); err != nil {
		return Book{}, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE books
		SET name = $2, publication_year = NULLIF($3, '')::date, age_limit = $4,
		    publishing_company = $5, page_count = $6, language = NULLIF($7, ''),
		    cost = NULLIF($8, '')::numeric, count_of_books = $9
		WHERE isbn = $1`,
		isbn, in.Name, in.PublicationYear, in.AgeLimit, in.PublishingCompany,
		in.PageCount, in.Language, in.Cost, in.CountOfBooks)
	if err != nil {
		return Book{}, fmt.Errorf("update book: %w", err)
	}

	// Replace the link sets wholesale; the request carries the full
	// desired state, not a delta.
	if _, err := tx.Exec(ctx, `DELETE FROM authorships WHERE book_isbn = $1`, isbn); err != nil {
		return Book{}, fmt.Errorf("clear authorships: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM book_styles WHERE book_isbn = $1`, isbn); err != nil {
		return Book{}, fmt.Errorf("clear book styles: %w", err)
	}

	authors, err := linkAuthors(ctx, tx, isbn, in.Authors)
	if err != nil {
		return Book{}, err
	}
	genres, err := linkGenres(ctx, tx, isbn, in.Genres)
	if err != nil {
		return Book{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Book{}, fmt.Errorf("commit tx: %w", err)
	}

	b := fromInput(in)
	b.ISBN = isbn
	b.Authors = authors
	b.Genres = genres
	return b, nil
}

func (r *PostgresRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookColumns+` FROM books b WHERE b.isbn = $1`, isbn)
	b, err := scanBook(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, fmt.Errorf("get book: %w", err)
	}
	books := []Book{b}
	if err := r.loadLinks(ctx, books); err != nil {
		return Book{}, err
	}
	return books[0], nil
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books b`
	args := []any{}
	if q.Search != "" {
		query += ` WHERE b.name ILIKE $1`
		args = append(args, "%"+q.Search+"%")
	}
	orderBy, ok := sortColumns[q.SortColumn]
	if !ok {
		orderBy = "lower(b.name)"
	}
	query += ` ORDER BY ` + orderBy
	if q.SortOrder == "desc" {
		query += ` DESC`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	if err := r.loadLinks(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, isbn string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE isbn = $1`, isbn)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes the given books in one transaction. If any ISBN does
// not exist the whole batch is rolled back.
func (r *PostgresRepo) DeleteMany(ctx context.Context, isbns []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM books WHERE isbn = ANY($1)`, isbns)
	if err != nil {
		return fmt.Errorf("delete books: %w", err)
	}
	if tag.RowsAffected() != int64(len(isbns)) {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

// loadLinks fills Authors and Genres for the given books with two batched
// queries instead of one pair per book.
func (r *PostgresRepo) loadLinks(ctx context.Context, books []Book) error {
	if len(books) == 0 {
		return nil
	}
	isbns := make([]string, len(books))
	for i, b := range books {
		isbns[i] = b.ISBN
	}

	authorsByISBN := make(map[string][]author.Author)
	rows, err := r.db.Query(ctx, `
		SELECT ap.book_isbn, a.id, a.fio, COALESCE(a.birth_date, ''),
		       COALESCE(a.country, ''), COALESCE(a.nickname, '')
		FROM authorships ap
		JOIN authors a ON a.id = ap.author_id
		WHERE ap.book_isbn = ANY($1)
		ORDER BY ap.book_isbn, a.id`, isbns)
	if err != nil {
		return fmt.Errorf("load authors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var isbn string
		var a author.Author
		if err := rows.Scan(&isbn, &a.ID, &a.Fio, &a.BirthDate, &a.Country, &a.Nickname); err != nil {
			return fmt.Errorf("scan book author: %w", err)
		}
		authorsByISBN[isbn] = append(authorsByISBN[isbn], a)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate book authors: %w", err)
	}

	genresByISBN := make(map[string][]string)
	rows, err = r.db.Query(ctx, `
		SELECT bs.book_isbn, s.name
		FROM book_styles bs
		JOIN styles s ON s.id = bs.style_id
		WHERE bs.book_isbn = ANY($1)
		ORDER BY bs.book_isbn, s.id`, isbns)
	if err != nil {
		return fmt.Errorf("load genres: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var isbn, name string
		if err := rows.Scan(&isbn, &name); err != nil {
			return fmt.Errorf("scan book genre: %w", err)
		}
		genresByISBN[isbn] = append(genresByISBN[isbn], name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate book genres: %w", err)
	}

	for i := range books {
		books[i].Authors = authorsByISBN[books[i].ISBN]
		if books[i].Authors == nil {
			books[i].Authors = []author.Author{}
		}
		books[i].Genres = genresByISBN[books[i].ISBN]
		if books[i].Genres == nil {
			books[i].Genres = []string{}
		}
	}
	return nil
}

// ensureCompany creates the publishing company on first reference. Names
// are matched exactly; the service has already trimmed whitespace.
func ensureCompany(ctx context.Context, tx pgx.Tx, name string) error {
	_, err := tx.Exec(ctx, `INSERT INTO publishing_companies (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return fmt.Errorf("ensure publishing company: %w", err)
	}
	return nil
}

// linkAuthors resolves each author reference inside the transaction: an id
// must point at an existing author, a reference without an id creates one.
// Resolved authors are linked to the book in input order.
func linkAuthors(ctx context.Context, tx pgx.Tx, isbn string, refs []AuthorRef) ([]author.Author, error) {
	authors := make([]author.Author, 0, len(refs))
	for _, ref := range refs {
		var a author.Author
		if ref.ID != nil {
			err := tx.QueryRow(ctx, `
				SELECT id, fio, COALESCE(birth_date, ''),
				       COALESCE(country, ''), COALESCE(nickname, '')
				FROM authors WHERE id = $1`, *ref.ID).
				Scan(&a.ID, &a.Fio, &a.BirthDate, &a.Country, &a.Nickname)
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrAuthorNotFound
			}
			if err != nil {
				return nil, fmt.Errorf("resolve author %d: %w", *ref.ID, err)
			}
		} else {
			a = author.Author{
				Fio:       ref.Fio,
				BirthDate: ref.BirthDate,
				Country:   ref.Country,
				Nickname:  ref.Nickname,
			}
			err := tx.QueryRow(ctx, `
				INSERT INTO authors (fio, birth_date, country, nickname)
				VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''))
				RETURNING id`,
				a.Fio, a.BirthDate, a.Country, a.Nickname).Scan(&a.ID)
			if err != nil {
				return nil, fmt.Errorf("create author: %w", err)
			}
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO authorships (book_isbn, author_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, isbn, a.ID)
		if err != nil {
			return nil, fmt.Errorf("link author %d: %w", a.ID, err)
		}
		authors = append(authors, a)
	}
	return authors, nil
}

// linkGenres resolves each genre name through the shared style lookup and
// links the book to the resolved styles.
func linkGenres(ctx context.Context, tx pgx.Tx, isbn string, names []string) ([]string, error) {
	genres := make([]string, 0, len(names))
	for _, name := range names {
		st, err := style.ResolveName(ctx, tx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve genre %q: %w", name, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO book_styles (book_isbn, style_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, isbn, st.ID)
		if err != nil {
			return nil, fmt.Errorf("link genre %q: %w", name, err)
		}
		genres = append(genres, st.Name)
	}
	return genres, nil
}

func fromInput(in Input) Book {
	return Book{
		ISBN:              in.ISBN,
		Name:              in.Name,
		PublicationYear:   in.PublicationYear,
		AgeLimit:          in.AgeLimit,
		PublishingCompany: in.PublishingCompany,
		PageCount:         in.PageCount,
		Language:          in.Language,
		Cost:              in.Cost,
		CountOfBooks:      in.CountOfBooks,
	}
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(&b.ISBN, &b.Name, &b.PublicationYear, &b.AgeLimit,
		&b.PublishingCompany, &b.PageCount, &b.Language, &b.Cost, &b.CountOfBooks)
	return b, err
}
