// Package dataset loads the job-postings CSV into an immutable, columnar Table.
//
// Columns are stored as Apache Arrow arrays. Every column is first read as a
// nullable string column; a column whose non-null values all parse as numbers
// is then rebuilt as a Float64 array. The validity bitmap of each array marks
// the null cells, which lets downstream aggregates exclude nulls per column
// instead of dropping whole rows.
package dataset
