package auth

import (
	"context"
	"errors"
	"time"

	"bookstorage/internal/platform/crypto"
)

const tokenTTL = time.Hour

// Service verifies administrator credentials and issues JWTs.
type Service struct {
	repo   Repository
	secret string
}

func NewService(repo Repository, secret string) *Service {
	return &Service{repo: repo, secret: secret}
}

// Login returns a signed token for valid credentials and ErrUnauthorized
// for anything else.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.repo.GetByLogin(ctx, username)
	if errors.Is(err, ErrUnauthorized) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	if !crypto.VerifyPassword(admin.PasswordHash, password) {
		return "", ErrUnauthorized
	}
	return crypto.GenerateToken(s.secret, admin.Login, tokenTTL)
}
