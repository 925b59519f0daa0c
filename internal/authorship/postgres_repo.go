package authorship

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, a Authorship) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO authorships (book_isbn, author_id) VALUES ($1, $2)`,
		a.BookISBN, a.AuthorID)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *PostgresRepo) Get(ctx context.Context, isbn string, authorID int) (Authorship, error) {
	var a Authorship
	err := r.db.QueryRow(ctx,
		`SELECT book_isbn, author_id FROM authorships WHERE book_isbn = $1 AND author_id = $2`,
		isbn, authorID).Scan(&a.BookISBN, &a.AuthorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Authorship{}, ErrNotFound
	}
	if err != nil {
		return Authorship{}, fmt.Errorf("get authorship: %w", err)
	}
	return a, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Authorship, error) {
	rows, err := r.db.Query(ctx,
		`SELECT book_isbn, author_id FROM authorships ORDER BY book_isbn, author_id`)
	if err != nil {
		return nil, fmt.Errorf("list authorships: %w", err)
	}
	defer rows.Close()

	links := make([]Authorship, 0)
	for rows.Next() {
		var a Authorship
		if err := rows.Scan(&a.BookISBN, &a.AuthorID); err != nil {
			return nil, fmt.Errorf("scan authorship: %w", err)
		}
		links = append(links, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authorships: %w", err)
	}
	return links, nil
}

func (r *PostgresRepo) Update(ctx context.Context, isbn string, authorID int, a Authorship) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE authorships SET book_isbn = $3, author_id = $4 WHERE book_isbn = $1 AND author_id = $2`,
		isbn, authorID, a.BookISBN, a.AuthorID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, isbn string, authorID int) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM authorships WHERE book_isbn = $1 AND author_id = $2`,
		isbn, authorID)
	if err != nil {
		return fmt.Errorf("delete authorship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// mapPgError turns constraint violations into domain errors: a duplicate
// pair is a conflict, a missing book or author is an invalid reference.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrConflict
		case "23503":
			return ErrInvalidRef
		}
	}
	return fmt.Errorf("write authorship: %w", err)
}
