package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/jobreport/internal/dataset"
	"github.com/nao1215/jobreport/internal/model"
)

// postingsTable is the name of the table holding the imported dataset.
const postingsTable = "postings"

var (
	// ErrUnknownColumn is returned when a query names a column that was not imported.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrEmptyTokenSet is returned when a token set name is blank.
	ErrEmptyTokenSet = errors.New("token set name must not be empty")
)

// JobDB is an in-memory SQLite database used to compute grouped counts over
// the loaded dataset. Nothing is written to disk.
type JobDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// columns records the imported dataset columns, keyed by header name.
	columns map[string]bool
}

// Open creates an empty in-memory JobDB.
//
// Every connection to ":memory:" gets its own database, so the pool is
// pinned to a single connection that is never recycled.
func Open(ctx context.Context) (*JobDB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	jdb := &JobDB{
		db:      db,
		columns: make(map[string]bool),
	}

	if err := jdb.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return jdb, nil
}

// Close closes the database connection and discards its contents.
func (j *JobDB) Close() error {
	return j.db.Close()
}

// createTables creates the token schema. The postings table is created by
// ImportTable because its columns follow the dataset header.
func (j *JobDB) createTables(ctx context.Context) error {
	schema := `
	-- Tokens derived from list-valued cells, e.g. required skills
	CREATE TABLE IF NOT EXISTS tokens (
		set_name TEXT NOT NULL,
		token TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tokens_set ON tokens(set_name);
	`
	_, err := j.db.ExecContext(ctx, schema)
	return err
}

// ImportTable copies every row of t into the postings table, replacing any
// previous import. Numeric columns become REAL, text columns TEXT, and null
// cells stay NULL.
func (j *JobDB) ImportTable(ctx context.Context, t *dataset.Table) error {
	cols := t.Columns()
	if len(cols) == 0 {
		return errors.New("table has no columns")
	}

	defs := make([]string, len(cols))
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		affinity := "TEXT"
		if c.Kind() == dataset.KindFloat {
			affinity = "REAL"
		}
		names[i] = quoteIdent(c.Name())
		defs[i] = names[i] + " " + affinity
		marks[i] = "?"
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // Rollback after Commit is a no-op
	}()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+postingsTable); err != nil {
		return fmt.Errorf("failed to drop previous import: %w", err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", postingsTable, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create postings table: %w", err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		postingsTable, strings.Join(names, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for row := 0; row < t.NumRows(); row++ {
		for i, c := range cols {
			args[i] = cellValue(c, row)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", row+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	j.columns = make(map[string]bool, len(cols))
	for _, c := range cols {
		j.columns[c.Name()] = true
	}
	return nil
}

// cellValue converts a table cell into a driver value. Nulls map to nil.
func cellValue(c *dataset.Column, row int) any {
	if c.IsNull(row) {
		return nil
	}
	if v, ok := c.Float(row); ok {
		return v
	}
	s, _ := c.Text(row)
	return s
}

// CountRows returns the number of imported rows.
func (j *JobDB) CountRows(ctx context.Context) (int, error) {
	var n int
	err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+postingsTable).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

// CountByColumn groups the imported rows by the given column and counts
// each group. Rows where the column is NULL are excluded. Results are
// ordered by count descending, then by key ascending.
func (j *JobDB) CountByColumn(ctx context.Context, column string) ([]model.CategoryCount, error) {
	if !j.columns[column] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	q := fmt.Sprintf(
		"SELECT %[1]s, COUNT(*) AS n FROM %[2]s WHERE %[1]s IS NOT NULL GROUP BY %[1]s ORDER BY n DESC, %[1]s ASC",
		quoteIdent(column), postingsTable,
	)
	return j.queryCounts(ctx, q)
}

// ImportTokens replaces the tokens stored under set with the given tokens.
// Each element counts once, so repeated tokens are counted repeatedly.
func (j *JobDB) ImportTokens(ctx context.Context, set string, tokens []string) error {
	if strings.TrimSpace(set) == "" {
		return ErrEmptyTokenSet
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // Rollback after Commit is a no-op
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tokens WHERE set_name = ?", set); err != nil {
		return fmt.Errorf("failed to clear token set %q: %w", set, err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO tokens (set_name, token) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tok := range tokens {
		if _, err := stmt.ExecContext(ctx, set, tok); err != nil {
			return fmt.Errorf("failed to insert token %q: %w", tok, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tokens: %w", err)
	}
	return nil
}

// CountTokens counts the tokens stored under set, ordered by count
// descending, then by token ascending.
func (j *JobDB) CountTokens(ctx context.Context, set string) ([]model.CategoryCount, error) {
	if strings.TrimSpace(set) == "" {
		return nil, ErrEmptyTokenSet
	}
	q := "SELECT token, COUNT(*) AS n FROM tokens WHERE set_name = ? GROUP BY token ORDER BY n DESC, token ASC"
	return j.queryCounts(ctx, q, set)
}

func (j *JobDB) queryCounts(ctx context.Context, query string, args ...any) ([]model.CategoryCount, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts: %w", err)
	}
	defer rows.Close()

	counts := make([]model.CategoryCount, 0)
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counts: %w", err)
	}
	return counts, nil
}

// quoteIdent quotes a column name for use as an SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
