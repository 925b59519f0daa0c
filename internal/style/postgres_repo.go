package style

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx satisfied by both a pool and a transaction.
// ResolveName runs against it so the book repository can resolve genres
// inside its own transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ResolveName finds a style for a genre name: case-insensitive exact match
// first, then the first case-insensitive substring match, otherwise a new
// style is created with the given name.
func ResolveName(ctx context.Context, q Querier, name string) (Style, error) {
	var s Style

	err := q.QueryRow(ctx, `SELECT id, name FROM styles WHERE lower(name) = lower($1)`, name).Scan(&s.ID, &s.Name)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Style{}, fmt.Errorf("select style by name: %w", err)
	}

	err = q.QueryRow(ctx, `SELECT id, name FROM styles WHERE name ILIKE $1 ORDER BY id LIMIT 1`, "%"+name+"%").Scan(&s.ID, &s.Name)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Style{}, fmt.Errorf("select style by substring: %w", err)
	}

	if err := q.QueryRow(ctx, `INSERT INTO styles (name) VALUES ($1) RETURNING id`, name).Scan(&s.ID); err != nil {
		return Style{}, fmt.Errorf("insert style: %w", err)
	}
	s.Name = name
	return s, nil
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, s *Style) error {
	const q = `
		INSERT INTO styles (name)
		VALUES ($1)
		ON CONFLICT (lower(name)) DO NOTHING
		RETURNING id`

	err := r.db.QueryRow(ctx, q, s.Name).Scan(&s.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert style: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int) (Style, error) {
	var s Style
	err := r.db.QueryRow(ctx, `SELECT id, name FROM styles WHERE id = $1`, id).Scan(&s.ID, &s.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Style{}, ErrNotFound
	}
	if err != nil {
		return Style{}, fmt.Errorf("select style: %w", err)
	}
	return s, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Style, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM styles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select styles: %w", err)
	}
	defer rows.Close()
	return scanStyles(rows)
}

func (r *PostgresRepo) Search(ctx context.Context, q string) ([]Style, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM styles WHERE name ILIKE $1 ORDER BY id`, "%"+q+"%")
	if err != nil {
		return nil, fmt.Errorf("search styles: %w", err)
	}
	defer rows.Close()
	return scanStyles(rows)
}

func (r *PostgresRepo) Update(ctx context.Context, s *Style) error {
	tag, err := r.db.Exec(ctx, `UPDATE styles SET name = $2 WHERE id = $1`, s.ID, s.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("update style: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM styles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete style: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Resolve(ctx context.Context, name string) (Style, error) {
	return ResolveName(ctx, r.db, name)
}

func scanStyles(rows pgx.Rows) ([]Style, error) {
	var styles []Style
	for rows.Next() {
		var s Style
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan style: %w", err)
		}
		styles = append(styles, s)
	}
	return styles, rows.Err()
}
