package transfer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	sql  string
	args []any
}

// fakeDB satisfies Execer and records every statement it is handed.
type fakeDB struct {
	calls []execCall
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return pgconn.CommandTag{}, nil
}

func specByFile(t *testing.T, file string) importSpec {
	t.Helper()
	for _, spec := range importSpecs {
		if spec.file == file {
			return spec
		}
	}
	t.Fatalf("no import spec for %s", file)
	return importSpec{}
}

// The export and import sides share the file formats; these checks keep
// the two spec tables from drifting apart.
func TestSpecsAgree(t *testing.T) {
	exports := make(map[string]exportSpec, len(exportSpecs))
	for _, spec := range exportSpecs {
		exports[spec.file] = spec
	}

	require.Len(t, importSpecs, len(exportSpecs))
	for _, spec := range importSpecs {
		exp, ok := exports[spec.file]
		require.True(t, ok, "no export spec for %s", spec.file)
		assert.Equal(t, len(exp.header), spec.fields, "field count mismatch for %s", spec.file)
	}
}

func TestImportOrder(t *testing.T) {
	pos := make(map[string]int, len(importSpecs))
	for i, spec := range importSpecs {
		pos[spec.file] = i
	}

	assert.Less(t, pos[companiesFile], pos[booksFile], "companies must load before books")
	assert.Less(t, pos[authorsFile], pos[authorshipsFile], "authors must load before authorships")
	assert.Less(t, pos[stylesFile], pos[bookStylesFile], "styles must load before book styles")
	assert.Less(t, pos[booksFile], pos[authorshipsFile], "books must load before authorships")
	assert.Less(t, pos[booksFile], pos[bookStylesFile], "books must load before book styles")
}

func TestWriteCSV_PrefixesBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), stylesFile)
	require.NoError(t, writeCSV(path, []string{"id", "name"}, [][]string{{"1", "Horror"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, utf8BOM))
	assert.Equal(t, "id,name\n1,Horror\n", string(data[len(utf8BOM):]))
}

func TestImportFile(t *testing.T) {
	ctx := context.Background()

	t.Run("strips the bom", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), stylesFile)
		require.NoError(t, writeCSV(path, []string{"id", "name"}, [][]string{{"1", "Horror"}}))

		db := &fakeDB{}
		loaded, skipped, err := importFile(ctx, db, path, specByFile(t, stylesFile))

		require.NoError(t, err)
		assert.Equal(t, 1, loaded)
		assert.Equal(t, 0, skipped)
		require.Len(t, db.calls, 1)
		assert.Equal(t, []any{1, "Horror"}, db.calls[0].args)
	})

	t.Run("skips short rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), stylesFile)
		require.NoError(t, writeCSV(path, []string{"id", "name"}, [][]string{
			{"1", "Horror"},
			{"2"},
			{"3", "Gothic"},
		}))

		db := &fakeDB{}
		loaded, skipped, err := importFile(ctx, db, path, specByFile(t, stylesFile))

		require.NoError(t, err)
		assert.Equal(t, 2, loaded)
		assert.Equal(t, 1, skipped)
		assert.Len(t, db.calls, 2)
	})

	t.Run("skips rows with bad numbers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), authorshipsFile)
		require.NoError(t, writeCSV(path, []string{"book_isbn", "author_id"}, [][]string{
			{"9781234567890", "one"},
			{"9781234567890", "1"},
		}))

		db := &fakeDB{}
		loaded, skipped, err := importFile(ctx, db, path, specByFile(t, authorshipsFile))

		require.NoError(t, err)
		assert.Equal(t, 1, loaded)
		assert.Equal(t, 1, skipped)
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		db := &fakeDB{}
		loaded, skipped, err := importFile(ctx, db, filepath.Join(t.TempDir(), stylesFile), specByFile(t, stylesFile))

		require.NoError(t, err)
		assert.Equal(t, 0, loaded)
		assert.Equal(t, 0, skipped)
		assert.Empty(t, db.calls)
	})

	t.Run("empty file is not an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), stylesFile)
		require.NoError(t, os.WriteFile(path, utf8BOM, 0o644))

		db := &fakeDB{}
		loaded, skipped, err := importFile(ctx, db, path, specByFile(t, stylesFile))

		require.NoError(t, err)
		assert.Equal(t, 0, loaded)
		assert.Equal(t, 0, skipped)
	})
}

// Exported files must load back unchanged; this drives a small catalog
// through writeCSV and importFile end to end.
func TestCSVRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	graph := map[string][][]string{
		companiesFile:   {{"AST", "1993-01-01", "", "Moscow"}},
		authorsFile:     {{"1", "Zamyatin", "c. 1884", "Russia", ""}},
		stylesFile:      {{"1", "Dystopia"}},
		booksFile:       {{"9781234567890", "We", "1924-01-01", "16", "AST", "256", "Russian", "12.50", "3"}},
		authorshipsFile: {{"9781234567890", "1"}},
		bookStylesFile:  {{"9781234567890", "1"}},
	}
	for _, exp := range exportSpecs {
		path := filepath.Join(dir, exp.file)
		require.NoError(t, writeCSV(path, exp.header, graph[exp.file]))
	}

	db := &fakeDB{}
	for _, spec := range importSpecs {
		loaded, skipped, err := importFile(ctx, db, filepath.Join(dir, spec.file), spec)
		require.NoError(t, err, spec.file)
		assert.Equal(t, 1, loaded, spec.file)
		assert.Equal(t, 0, skipped, spec.file)
	}
	require.Len(t, db.calls, len(importSpecs))

	// Free-form author birth dates survive the trip untouched.
	assert.Equal(t, []any{1, "Zamyatin", "c. 1884", "Russia", ""}, db.calls[1].args)
	// Numeric book columns are parsed, not passed through as text.
	assert.Equal(t, []any{"9781234567890", "We", "1924-01-01", float32(16), "AST", 256, "Russian", "12.50", 3}, db.calls[3].args)
}
