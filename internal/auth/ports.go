package auth

import "context"

// Repository looks up administrator accounts.
type Repository interface {
	GetByLogin(ctx context.Context, login string) (Administrator, error)
}
