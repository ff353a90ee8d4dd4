// Package database provides the in-memory SQLite engine jobreport uses to
// compute aggregate views.
//
// JobDB holds:
//   - the postings table, one SQL column per dataset column
//   - a tokens table for values derived from list-valued cells (skills)
//
// Grouped counts are plain GROUP BY queries with a per-column IS NOT NULL
// filter, so null handling follows SQL semantics column by column.
//
// The database lives in memory (via modernc.org/sqlite, CGO-free) and is
// discarded on Close; jobreport persists nothing besides its output files.
package database
