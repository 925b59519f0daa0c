package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func readMigration(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", ".."))
	b, err := os.ReadFile(filepath.Join(repoRoot, "db", "migrations", name))
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", name, err)
	}
	return string(b)
}

// Author birth dates are free-form text ("c. 1920"), not DATE. The
// catalog migration and every query touching the column must agree,
// or inserts with non-ISO values fail with SQLSTATE 22007.
func TestCatalogSchema_AuthorBirthDateIsText(t *testing.T) {
	sql := readMigration(t, "00001_create_catalog.sql")
	if !strings.Contains(sql, "birth_date TEXT") {
		t.Fatal("authors.birth_date must be TEXT, not DATE")
	}

	_, thisFile, _, _ := runtime.Caller(0)
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", ".."))

	// The author repo touches no real date column at all.
	b, err := os.ReadFile(filepath.Join(repoRoot, "internal", "author", "postgres_repo.go"))
	if err != nil {
		t.Fatalf("ReadFile(author repo): %v", err)
	}
	if strings.Contains(string(b), "::date") || strings.Contains(string(b), "to_char(") {
		t.Error("author repo must not treat birth_date as a date column")
	}

	for _, rel := range []string{
		"internal/author/postgres_repo.go",
		"internal/book/postgres_repo.go",
		"internal/transfer/csv_import.go",
		"internal/transfer/csv_export.go",
	} {
		b, err := os.ReadFile(filepath.Join(repoRoot, rel))
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", rel, err)
		}
		src := string(b)
		for _, line := range strings.Split(src, "\n") {
			if strings.Contains(line, "birth_date") && strings.Contains(line, "::date") {
				t.Errorf("%s casts birth_date to date: %s", rel, strings.TrimSpace(line))
			}
			if strings.Contains(line, "to_char(birth_date") || strings.Contains(line, "to_char(a.birth_date") {
				t.Errorf("%s formats birth_date as a date: %s", rel, strings.TrimSpace(line))
			}
		}
	}
}
