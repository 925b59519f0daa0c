package transfer

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
)

type exportSpec struct {
	file   string
	header []string
	query  string
}

// Column expressions mirror the read side of the repositories: dates as
// YYYY-MM-DD, money as numeric text, NULLs as empty strings.
var exportSpecs = []exportSpec{
	{
		file:   companiesFile,
		header: []string{"name", "establishment_year", "contact_info", "city"},
		query: `SELECT name,
			COALESCE(to_char(establishment_year, 'YYYY-MM-DD'), ''),
			COALESCE(contact_info, ''), COALESCE(city, '')
			FROM publishing_companies ORDER BY name`,
	},
	{
		file:   authorsFile,
		header: []string{"id", "fio", "birth_date", "country", "nickname"},
		query: `SELECT id::text, fio, COALESCE(birth_date, ''),
			COALESCE(country, ''), COALESCE(nickname, '')
			FROM authors ORDER BY id`,
	},
	{
		file:   stylesFile,
		header: []string{"id", "name"},
		query:  `SELECT id::text, name FROM styles ORDER BY id`,
	},
	{
		file:   booksFile,
		header: []string{"isbn", "name", "publication_year", "age_limit", "publishing_company", "page_count", "language", "cost", "count_of_books"},
		query: `SELECT isbn, name,
			COALESCE(to_char(publication_year, 'YYYY-MM-DD'), ''),
			age_limit::text, publishing_company, page_count::text,
			COALESCE(language, ''), COALESCE(cost::text, ''), count_of_books::text
			FROM books ORDER BY isbn`,
	},
	{
		file:   authorshipsFile,
		header: []string{"book_isbn", "author_id"},
		query:  `SELECT book_isbn, author_id::text FROM authorships ORDER BY book_isbn, author_id`,
	},
	{
		file:   bookStylesFile,
		header: []string{"book_isbn", "style_id"},
		query:  `SELECT book_isbn, style_id::text FROM book_styles ORDER BY book_isbn, style_id`,
	},
}

// Export writes every entity table to its CSV file, replacing existing
// files. The export directory is created if missing.
func (s *Service) Export(ctx context.Context) (Report, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Report{}, fmt.Errorf("create export dir: %w", err)
	}

	report := Report{Rows: make(map[string]int, len(exportSpecs))}
	for _, spec := range exportSpecs {
		n, err := exportTable(ctx, s.db, filepath.Join(s.dir, spec.file), spec)
		if err != nil {
			return Report{}, fmt.Errorf("export %s: %w", spec.file, err)
		}
		report.Rows[spec.file] = n
	}
	return report, nil
}

func exportTable(ctx context.Context, db *pgxpool.Pool, path string, spec exportSpec) (int, error) {
	rows, err := db.Query(ctx, spec.query)
	if err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var records [][]string
	for rows.Next() {
		record := make([]string, len(spec.header))
		dest := make([]any, len(spec.header))
		for i := range record {
			dest[i] = &record[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return 0, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate rows: %w", err)
	}

	if err := writeCSV(path, spec.header, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// writeCSV replaces path with a BOM-prefixed CSV file holding the
// header and records.
func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return f.Close()
}
