// Package transfer moves the whole catalog between Postgres and a
// directory of CSV files, one file per entity.
package transfer

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Execer is the slice of pgx the row inserters need; a pool satisfies
// it, and importing does not require anything more.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	authorsFile     = "authors.csv"
	companiesFile   = "publishing_companies.csv"
	stylesFile      = "styles.csv"
	booksFile       = "books.csv"
	authorshipsFile = "authorships.csv"
	bookStylesFile  = "book_styles.csv"
)

// utf8BOM is prepended to every exported file so spreadsheet tools pick
// the right encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Service runs catalog export and import against the database directly;
// bulk transfer bypasses the per-entity repositories on purpose.
type Service struct {
	db  *pgxpool.Pool
	dir string
}

func NewService(db *pgxpool.Pool, dir string) *Service {
	return &Service{db: db, dir: dir}
}

// Report summarizes one transfer run, keyed by file name.
type Report struct {
	Rows    map[string]int `json:"rows"`
	Skipped map[string]int `json:"skipped,omitempty"`
}
