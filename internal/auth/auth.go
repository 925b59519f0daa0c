package auth

import "errors"

// ErrUnauthorized covers both an unknown login and a wrong password; the
// API never reveals which one failed.
var ErrUnauthorized = errors.New("invalid credentials")

// Administrator is a backoffice account allowed to log in. PasswordHash
// is a bcrypt hash and never leaves the server.
type Administrator struct {
	Login        string `json:"login"`
	PasswordHash string `json:"-"`
}
