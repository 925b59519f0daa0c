package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyColumns = `name, COALESCE(to_char(establishment_year, 'YYYY-MM-DD'), ''), COALESCE(contact_info, ''), COALESCE(city, '')`

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, pc *PublishingCompany) error {
	const q = `
		INSERT INTO publishing_companies (name, establishment_year, contact_info, city)
		VALUES ($1, NULLIF($2, '')::date, NULLIF($3, ''), NULLIF($4, ''))
		ON CONFLICT (name) DO NOTHING`

	tag, err := r.db.Exec(ctx, q, pc.Name, pc.EstablishmentYear, pc.ContactInfo, pc.City)
	if err != nil {
		return fmt.Errorf("insert publishing company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

func (r *PostgresRepo) GetByName(ctx context.Context, name string) (PublishingCompany, error) {
	q := `SELECT ` + companyColumns + ` FROM publishing_companies WHERE name = $1`

	var pc PublishingCompany
	err := r.db.QueryRow(ctx, q, name).Scan(&pc.Name, &pc.EstablishmentYear, &pc.ContactInfo, &pc.City)
	if errors.Is(err, pgx.ErrNoRows) {
		return PublishingCompany{}, ErrNotFound
	}
	if err != nil {
		return PublishingCompany{}, fmt.Errorf("select publishing company: %w", err)
	}
	return pc, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]PublishingCompany, error) {
	q := `SELECT ` + companyColumns + ` FROM publishing_companies ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select publishing companies: %w", err)
	}
	defer rows.Close()
	return scanCompanies(rows)
}

func (r *PostgresRepo) Search(ctx context.Context, q string) ([]PublishingCompany, error) {
	sql := `SELECT ` + companyColumns + ` FROM publishing_companies WHERE name ILIKE $1 ORDER BY name`

	rows, err := r.db.Query(ctx, sql, "%"+q+"%")
	if err != nil {
		return nil, fmt.Errorf("search publishing companies: %w", err)
	}
	defer rows.Close()
	return scanCompanies(rows)
}

func (r *PostgresRepo) Update(ctx context.Context, pc *PublishingCompany) error {
	const q = `
		UPDATE publishing_companies
		SET establishment_year = NULLIF($2, '')::date, contact_info = NULLIF($3, ''), city = NULLIF($4, '')
		WHERE name = $1`

	tag, err := r.db.Exec(ctx, q, pc.Name, pc.EstablishmentYear, pc.ContactInfo, pc.City)
	if err != nil {
		return fmt.Errorf("update publishing company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Rename(ctx context.Context, oldName string, pc *PublishingCompany) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertSQL = `
		INSERT INTO publishing_companies (name, establishment_year, contact_info, city)
		VALUES ($1, NULLIF($2, '')::date, NULLIF($3, ''), NULLIF($4, ''))
		ON CONFLICT (name) DO NOTHING`

	tag, err := tx.Exec(ctx, insertSQL, pc.Name, pc.EstablishmentYear, pc.ContactInfo, pc.City)
	if err != nil {
		return fmt.Errorf("insert renamed publishing company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}

	if _, err := tx.Exec(ctx, `UPDATE books SET publishing_company = $1 WHERE publishing_company = $2`, pc.Name, oldName); err != nil {
		return fmt.Errorf("re-point books: %w", err)
	}

	tag, err = tx.Exec(ctx, `DELETE FROM publishing_companies WHERE name = $1`, oldName)
	if err != nil {
		return fmt.Errorf("delete old publishing company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepo) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM publishing_companies WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete publishing company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) DeleteMany(ctx context.Context, names []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM publishing_companies WHERE name = ANY($1)`, names)
	if err != nil {
		return fmt.Errorf("delete publishing companies: %w", err)
	}
	if int(tag.RowsAffected()) != len(names) {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func scanCompanies(rows pgx.Rows) ([]PublishingCompany, error) {
	var companies []PublishingCompany
	for rows.Next() {
		var pc PublishingCompany
		if err := rows.Scan(&pc.Name, &pc.EstablishmentYear, &pc.ContactInfo, &pc.City); err != nil {
			return nil, fmt.Errorf("scan publishing company: %w", err)
		}
		companies = append(companies, pc)
	}
	return companies, rows.Err()
}
