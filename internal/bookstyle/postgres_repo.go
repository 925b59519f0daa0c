package bookstyle

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

func (r *PostgresRepo) Create(ctx context.Context, bs BookStyle) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO book_styles (book_isbn, style_id) VALUES ($1, $2)`,
		bs.BookISBN, bs.StyleID)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *PostgresRepo) Get(ctx context.Context, isbn string, styleID int) (BookStyle, error) {
	var bs BookStyle
	err := r.db.QueryRow(ctx,
		`SELECT book_isbn, style_id FROM book_styles WHERE book_isbn = $1 AND style_id = $2`,
		isbn, styleID).Scan(&bs.BookISBN, &bs.StyleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return BookStyle{}, ErrNotFound
	}
	if err != nil {
		return BookStyle{}, fmt.Errorf("get book style: %w", err)
	}
	return bs, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]BookStyle, error) {
	rows, err := r.db.Query(ctx,
		`SELECT book_isbn, style_id FROM book_styles ORDER BY book_isbn, style_id`)
	if err != nil {
		return nil, fmt.Errorf("list book styles: %w", err)
	}
	defer rows.Close()

	links := make([]BookStyle, 0)
	for rows.Next() {
		var bs BookStyle
		if err := rows.Scan(&bs.BookISBN, &bs.StyleID); err != nil {
			return nil, fmt.Errorf("scan book style: %w", err)
		}
		links = append(links, bs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book styles: %w", err)
	}
	return links, nil
}

func (r *PostgresRepo) Update(ctx context.Context, isbn string, styleID int, bs BookStyle) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE book_styles SET book_isbn = $3, style_id = $4 WHERE book_isbn = $1 AND style_id = $2`,
		isbn, styleID, bs.BookISBN, bs.StyleID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, isbn string, styleID int) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM book_styles WHERE book_isbn = $1 AND style_id = $2`,
		isbn, styleID)
	if err != nil {
		return fmt.Errorf("delete book style: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

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
	return fmt.Errorf("write book style: %w", err)
}
