package transfer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

type importSpec struct {
	file   string
	fields int
	insert func(ctx context.Context, db Execer, rec []string) error
}

// Import order follows the reference graph so parents land before the
// rows that point at them.
var importSpecs = []importSpec{
	{companiesFile, 4, insertCompany},
	{authorsFile, 5, insertAuthor},
	{stylesFile, 2, insertStyle},
	{booksFile, 9, insertBook},
	{authorshipsFile, 2, insertAuthorship},
	{bookStylesFile, 2, insertBookStyle},
}

// Import replaces the whole catalog with the contents of the CSV
// directory. Existing data is cleared first; bad rows and missing files
// are logged and skipped rather than failing the batch.
func (s *Service) Import(ctx context.Context) (Report, error) {
	if err := s.clear(ctx); err != nil {
		return Report{}, err
	}

	report := Report{
		Rows:    make(map[string]int, len(importSpecs)),
		Skipped: make(map[string]int, len(importSpecs)),
	}
	for _, spec := range importSpecs {
		loaded, skipped, err := importFile(ctx, s.db, filepath.Join(s.dir, spec.file), spec)
		if err != nil {
			return Report{}, fmt.Errorf("import %s: %w", spec.file, err)
		}
		report.Rows[spec.file] = loaded
		if skipped > 0 {
			report.Skipped[spec.file] = skipped
		}
	}

	if err := s.resetSequences(ctx); err != nil {
		return Report{}, err
	}
	return report, nil
}

func (s *Service) clear(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		TRUNCATE book_styles, authorships, books, authors, styles, publishing_companies
		RESTART IDENTITY`)
	if err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	return nil
}

// resetSequences moves the serial sequences past the imported ids so
// later creates do not collide.
func (s *Service) resetSequences(ctx context.Context) error {
	for _, table := range []string{"authors", "styles"} {
		query := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST(COALESCE(MAX(id), 0), 1)) FROM %s`,
			table, table)
		if _, err := s.db.Exec(ctx, query); err != nil {
			return fmt.Errorf("reset %s sequence: %w", table, err)
		}
	}
	return nil
}

func importFile(ctx context.Context, db Execer, path string, spec importSpec) (loaded, skipped int, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("csv import file=%s missing, skipping", spec.file)
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("read file: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return 0, 0, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return 0, 0, nil
	}

	// First record is the header.
	for i, rec := range records[1:] {
		if len(rec) < spec.fields {
			log.Printf("csv import file=%s row=%d skipped: want %d fields, got %d", spec.file, i+2, spec.fields, len(rec))
			skipped++
			continue
		}
		if err := spec.insert(ctx, db, rec); err != nil {
			log.Printf("csv import file=%s row=%d skipped: %v", spec.file, i+2, err)
			skipped++
			continue
		}
		loaded++
	}
	return loaded, skipped, nil
}

func insertCompany(ctx context.Context, db Execer, rec []string) error {
	if rec[0] == "" {
		return errors.New("blank company name")
	}
	_, err := db.Exec(ctx, `
		INSERT INTO publishing_companies (name, establishment_year, contact_info, city)
		VALUES ($1, NULLIF($2, '')::date, NULLIF($3, ''), NULLIF($4, ''))
		ON CONFLICT (name) DO UPDATE SET
			establishment_year = EXCLUDED.establishment_year,
			contact_info = EXCLUDED.contact_info,
			city = EXCLUDED.city`,
		rec[0], rec[1], rec[2], rec[3])
	return err
}

func insertAuthor(ctx context.Context, db Execer, rec []string) error {
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return fmt.Errorf("bad author id %q", rec[0])
	}
	if rec[1] == "" {
		return errors.New("blank author fio")
	}
	_, err = db.Exec(ctx, `
		INSERT INTO authors (id, fio, birth_date, country, nickname)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		ON CONFLICT (id) DO UPDATE SET
			fio = EXCLUDED.fio,
			birth_date = EXCLUDED.birth_date,
			country = EXCLUDED.country,
			nickname = EXCLUDED.nickname`,
		id, rec[1], rec[2], rec[3], rec[4])
	return err
}

func insertStyle(ctx context.Context, db Execer, rec []string) error {
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return fmt.Errorf("bad style id %q", rec[0])
	}
	if rec[1] == "" {
		return errors.New("blank style name")
	}
	_, err = db.Exec(ctx, `
		INSERT INTO styles (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		id, rec[1])
	return err
}

func insertBook(ctx context.Context, db Execer, rec []string) error {
	if rec[0] == "" {
		return errors.New("blank isbn")
	}
	ageLimit, err := strconv.ParseFloat(rec[3], 32)
	if err != nil {
		return fmt.Errorf("bad age_limit %q", rec[3])
	}
	pageCount, err := strconv.Atoi(rec[5])
	if err != nil {
		return fmt.Errorf("bad page_count %q", rec[5])
	}
	countOfBooks, err := strconv.Atoi(rec[8])
	if err != nil {
		return fmt.Errorf("bad count_of_books %q", rec[8])
	}
	_, err = db.Exec(ctx, `
		INSERT INTO books (isbn, name, publication_year, age_limit, publishing_company, page_count, language, cost, count_of_books)
		VALUES ($1, $2, NULLIF($3, '')::date, $4, $5, $6, NULLIF($7, ''), NULLIF($8, '')::numeric, $9)
		ON CONFLICT (isbn) DO UPDATE SET
			name = EXCLUDED.name,
			publication_year = EXCLUDED.publication_year,
			age_limit = EXCLUDED.age_limit,
			publishing_company = EXCLUDED.publishing_company,
			page_count = EXCLUDED.page_count,
			language = EXCLUDED.language,
			cost = EXCLUDED.cost,
			count_of_books = EXCLUDED.count_of_books`,
		rec[0], rec[1], rec[2], float32(ageLimit), rec[4], pageCount, rec[6], rec[7], countOfBooks)
	return err
}

func insertAuthorship(ctx context.Context, db Execer, rec []string) error {
	authorID, err := strconv.Atoi(rec[1])
	if err != nil {
		return fmt.Errorf("bad author id %q", rec[1])
	}
	_, err = db.Exec(ctx, `
		INSERT INTO authorships (book_isbn, author_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, rec[0], authorID)
	return err
}

func insertBookStyle(ctx context.Context, db Execer, rec []string) error {
	styleID, err := strconv.Atoi(rec[1])
	if err != nil {
		return fmt.Errorf("bad style id %q", rec[1])
	}
	_, err = db.Exec(ctx, `
		INSERT INTO book_styles (book_isbn, style_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, rec[0], styleID)
	return err
}
