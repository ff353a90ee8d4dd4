package dataset

import (
	"bytes"
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/csv"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// DefaultNullValues are the cell values treated as null.
var DefaultNullValues = []string{"", "null", "NULL"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type options struct {
	nullValues []string
	mem        memory.Allocator
}

// Option configures Load and Read.
type Option func(*options)

// WithNullValues replaces the set of cell values treated as null.
func WithNullValues(values ...string) Option {
	return func(o *options) {
		o.nullValues = values
	}
}

// WithAllocator sets the Arrow allocator used for column buffers.
func WithAllocator(mem memory.Allocator) Option {
	return func(o *options) {
		if mem != nil {
			o.mem = mem
		}
	}
}

// Load reads the comma-delimited file at path into a Table.
// Every failure is reported as a *DataLoadError.
func Load(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // dataset path is chosen by the operator
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	defer f.Close()

	t, err := read(f, newOptions(opts))
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	return t, nil
}

// Read parses comma-delimited text with a header row from r into a Table.
// Every failure is reported as a *DataLoadError with an empty Path.
func Read(r io.Reader, opts ...Option) (*Table, error) {
	t, err := read(r, newOptions(opts))
	if err != nil {
		return nil, &DataLoadError{Err: err}
	}
	return t, nil
}

func newOptions(opts []Option) *options {
	o := &options{
		nullValues: DefaultNullValues,
		mem:        memory.DefaultAllocator,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// rawColumn collects the string cells of one column across record batches.
type rawColumn struct {
	values []string
	valid  []bool
}

func read(r io.Reader, o *options) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	header, err := readHeader(data)
	if err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, len(header))
	for i, name := range header {
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	rdr := csv.NewReader(
		bytes.NewReader(data),
		schema,
		csv.WithHeader(true),
		csv.WithChunk(-1),
		csv.WithNullReader(true, o.nullValues...),
		csv.WithAllocator(o.mem),
	)
	defer rdr.Release()

	raw := make([]rawColumn, len(header))
	for rdr.Next() {
		rec := rdr.Record()
		for i := range raw {
			col, ok := rec.Column(i).(*array.String)
			if !ok {
				return nil, fmt.Errorf("column %q: unexpected array type %s", header[i], rec.Column(i).DataType())
			}
			for j := 0; j < col.Len(); j++ {
				valid := col.IsValid(j)
				raw[i].valid = append(raw[i].valid, valid)
				if valid {
					raw[i].values = append(raw[i].values, col.Value(j))
				} else {
					raw[i].values = append(raw[i].values, "")
				}
			}
		}
	}
	if err := rdr.Err(); err != nil {
		return nil, err
	}

	t := &Table{
		columns: make([]*Column, len(header)),
		index:   make(map[string]int, len(header)),
	}
	if len(raw) > 0 {
		t.rows = len(raw[0].valid)
	}
	for i, name := range header {
		t.columns[i] = buildColumn(name, raw[i], o.mem)
		t.index[name] = i
	}
	return t, nil
}

// readHeader parses the first record of data and validates the names.
func readHeader(data []byte) ([]string, error) {
	cr := stdcsv.NewReader(bytes.NewReader(data))
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyInput
		}
		return nil, err
	}

	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrInvalidHeader, i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidHeader, name)
		}
		seen[name] = true
	}
	return header, nil
}

// buildColumn infers the kind of a raw column and materializes it as an
// Arrow array. A column is numeric when it has at least one non-null cell
// and every non-null cell parses as a float64.
func buildColumn(name string, raw rawColumn, mem memory.Allocator) *Column {
	parsed, numeric := parseFloats(raw)
	if numeric {
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.Reserve(len(raw.valid))
		for i, valid := range raw.valid {
			if valid {
				b.Append(parsed[i])
			} else {
				b.AppendNull()
			}
		}
		return &Column{name: name, kind: KindFloat, floats: b.NewFloat64Array()}
	}

	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.Reserve(len(raw.valid))
	for i, valid := range raw.valid {
		if valid {
			b.Append(raw.values[i])
		} else {
			b.AppendNull()
		}
	}
	return &Column{name: name, kind: KindString, strings: b.NewStringArray()}
}

func parseFloats(raw rawColumn) ([]float64, bool) {
	out := make([]float64, len(raw.values))
	seen := false
	for i, valid := range raw.valid {
		if !valid {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw.values[i]), 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
		seen = true
	}
	return out, seen
}
