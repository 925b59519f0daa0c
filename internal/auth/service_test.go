package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstorage/internal/platform/crypto"
	"bookstorage/internal/testutil"
)

type fakeRepo struct {
	admins map[string]Administrator
	err    error
}

func (f *fakeRepo) GetByLogin(ctx context.Context, login string) (Administrator, error) {
	if f.err != nil {
		return Administrator{}, f.err
	}
	admin, ok := f.admins[login]
	if !ok {
		return Administrator{}, ErrUnauthorized
	}
	return admin, nil
}

func repoWithAdmin(t *testing.T, login, password string) *fakeRepo {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	return &fakeRepo{admins: map[string]Administrator{
		login: {Login: login, PasswordHash: hash},
	}}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a verifiable token", func(t *testing.T) {
		svc := NewService(repoWithAdmin(t, "admin", "s3cret"), testutil.TestSecret)

		token, err := svc.Login(ctx, "admin", "s3cret")

		require.NoError(t, err)
		claims, err := crypto.ParseToken(testutil.TestSecret, token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Sub)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := NewService(repoWithAdmin(t, "admin", "s3cret"), testutil.TestSecret)

		_, err := svc.Login(ctx, "admin", "wrong")

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown login", func(t *testing.T) {
		svc := NewService(repoWithAdmin(t, "admin", "s3cret"), testutil.TestSecret)

		_, err := svc.Login(ctx, "nobody", "s3cret")

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("repository failure is not unauthorized", func(t *testing.T) {
		svc := NewService(&fakeRepo{err: errors.New("db down")}, testutil.TestSecret)

		_, err := svc.Login(ctx, "admin", "s3cret")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnauthorized)
	})
}

func TestHTTPHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(repoWithAdmin(t, "admin", "s3cret"), testutil.TestSecret))

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/auth/login", map[string]string{
			"username": "admin", "password": "s3cret",
		})

		handler.Login(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		data := resp.Body["data"].(map[string]any)
		assert.NotEmpty(t, data["token"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(repoWithAdmin(t, "admin", "s3cret"), testutil.TestSecret))

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/auth/login", map[string]string{
			"username": "admin", "password": "wrong",
		})

		handler.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(repoWithAdmin(t, "admin", "s3cret"), testutil.TestSecret))

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin"})

		handler.Login(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
