package author

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const authorColumns = `id, fio, COALESCE(birth_date, ''), COALESCE(country, ''), COALESCE(nickname, '')`

func (r *PostgresRepo) Create(ctx context.Context, a *Author) error {
	const q = `
		INSERT INTO authors (fio, birth_date, country, nickname)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''))
		RETURNING id`

	if err := r.db.QueryRow(ctx, q, a.Fio, a.BirthDate, a.Country, a.Nickname).Scan(&a.ID); err != nil {
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int) (Author, error) {
	const q = `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	var a Author
	err := r.db.QueryRow(ctx, q, id).Scan(&a.ID, &a.Fio, &a.BirthDate, &a.Country, &a.Nickname)
	if errors.Is(err, pgx.ErrNoRows) {
		return Author{}, ErrNotFound
	}
	if err != nil {
		return Author{}, fmt.Errorf("select author: %w", err)
	}
	return a, nil
}

func (r *PostgresRepo) GetMany(ctx context.Context, ids []int) ([]Author, error) {
	const q = `SELECT ` + authorColumns + ` FROM authors WHERE id = ANY($1) ORDER BY id`

	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("select authors: %w", err)
	}
	defer rows.Close()
	return scanAuthors(rows)
}

func (r *PostgresRepo) List(ctx context.Context) ([]Author, error) {
	const q = `SELECT ` + authorColumns + ` FROM authors ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select authors: %w", err)
	}
	defer rows.Close()
	return scanAuthors(rows)
}

func (r *PostgresRepo) Search(ctx context.Context, q string) ([]Author, error) {
	const sql = `
		SELECT ` + authorColumns + `
		FROM authors
		WHERE fio ILIKE $1 OR nickname ILIKE $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, sql, "%"+q+"%")
	if err != nil {
		return nil, fmt.Errorf("search authors: %w", err)
	}
	defer rows.Close()
	return scanAuthors(rows)
}

func (r *PostgresRepo) Update(ctx context.Context, a *Author) error {
	const q = `
		UPDATE authors
		SET fio = $2, birth_date = NULLIF($3, ''), country = NULLIF($4, ''), nickname = NULLIF($5, '')
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, a.ID, a.Fio, a.BirthDate, a.Country, a.Nickname)
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) BooksByAuthors(ctx context.Context, ids []int) (map[string][]int, error) {
	// All authorship rows of every book that references at least one of the
	// given authors, not just the rows pointing at them.
	const q = `
		SELECT a.book_isbn, a.author_id
		FROM authorships a
		WHERE a.book_isbn IN (
			SELECT DISTINCT book_isbn FROM authorships WHERE author_id = ANY($1)
		)
		ORDER BY a.book_isbn, a.author_id`

	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("select authorships by authors: %w", err)
	}
	defer rows.Close()

	books := make(map[string][]int)
	for rows.Next() {
		var isbn string
		var authorID int
		if err := rows.Scan(&isbn, &authorID); err != nil {
			return nil, fmt.Errorf("scan authorship: %w", err)
		}
		books[isbn] = append(books[isbn], authorID)
	}
	return books, rows.Err()
}

func (r *PostgresRepo) DeleteWithBooks(ctx context.Context, authorIDs []int, isbns []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if len(isbns) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM books WHERE isbn = ANY($1)`, isbns); err != nil {
			return fmt.Errorf("delete orphaned books: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM authors WHERE id = ANY($1)`, authorIDs)
	if err != nil {
		return fmt.Errorf("delete authors: %w", err)
	}
	if int(tag.RowsAffected()) != len(authorIDs) {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func scanAuthors(rows pgx.Rows) ([]Author, error) {
	var authors []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Fio, &a.BirthDate, &a.Country, &a.Nickname); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}
