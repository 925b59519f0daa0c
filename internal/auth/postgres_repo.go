package auth

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

func (r *PostgresRepo) GetByLogin(ctx context.Context, login string) (Administrator, error) {
	var admin Administrator
	err := r.db.QueryRow(ctx,
		`SELECT login, password_hash FROM administrators WHERE login = $1`, login).
		Scan(&admin.Login, &admin.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Administrator{}, ErrUnauthorized
	}
	if err != nil {
		return Administrator{}, fmt.Errorf("get administrator: %w", err)
	}
	return admin, nil
}
