package fromrow

import (
	"database/sql"
	"errors"
)

var errNoCurrentRow = errors.New("no current row, call Next first")

// Row is one result row. Lookups by name are exact and case-sensitive.
type Row interface {
	Columns() []string
	ByName(name string) (Value, bool)
	ByIndex(i int) (Value, bool)
}

// Rows is the cursor consumed by the query helpers.
type Rows interface {
	Next() bool
	NextResultSet() bool
	Columns() ([]string, error)
	Scan(dest ...any) error
	Err() error
	Close() error
}

var _ Rows = (*sql.Rows)(nil)

// shape is the column layout shared by every row of one result set.
type shape struct {
	columns []string
	index   map[string]int
}

func newShape(columns []string) *shape {
	s := &shape{columns: columns, index: make(map[string]int, len(columns))}
	for i, name := range columns {
		// first occurrence wins for duplicated names, e.g. joins without aliases
		if _, ok := s.index[name]; !ok {
			s.index[name] = i
		}
	}

	return s
}

type memRow struct {
	shape  *shape
	values []any
}

// NewRow builds a Row from parallel column and value slices. Values follow
// database/sql driver conventions: nil is NULL.
func NewRow(columns []string, values []any) Row {
	return &memRow{shape: newShape(columns), values: values}
}

func (r *memRow) Columns() []string { return r.shape.columns }

func (r *memRow) ByName(name string) (Value, bool) {
	i, ok := r.shape.index[name]
	if !ok {
		return Value{}, false
	}

	return r.ByIndex(i)
}

func (r *memRow) ByIndex(i int) (Value, bool) {
	if i < 0 || i >= len(r.shape.columns) || i >= len(r.values) {
		return Value{}, false
	}

	return Value{column: r.shape.columns[i], raw: r.values[i]}, true
}

// RowSource reads rows from a cursor across all of its result sets.
type RowSource struct {
	rows  Rows
	shape *shape
	err   error
}

// NewRowSource wraps rows. The caller stays responsible for closing them.
func NewRowSource(rows Rows) *RowSource {
	return &RowSource{rows: rows}
}

// Next advances to the next row of the current result set.
func (s *RowSource) Next() bool {
	if s.err != nil {
		return false
	}

	if s.shape == nil {
		columns, err := s.rows.Columns()
		if err != nil {
			s.err = err
			return false
		}

		s.shape = newShape(columns)
	}

	return s.rows.Next()
}

// NextResultSet moves to the next result set, reporting whether there is one.
func (s *RowSource) NextResultSet() bool {
	if s.err != nil {
		return false
	}

	s.shape = nil

	return s.rows.NextResultSet()
}

// Row scans the current row. Each Row owns its values.
func (s *RowSource) Row() (Row, error) {
	if s.shape == nil {
		return nil, errNoCurrentRow
	}

	values := make([]any, len(s.shape.columns))
	ptrs := make([]any, len(values))

	for i := range values {
		ptrs[i] = &values[i]
	}

	if err := s.rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	return &memRow{shape: s.shape, values: values}, nil
}

// Err returns the first error seen by the source or the cursor.
func (s *RowSource) Err() error {
	if s.err != nil {
		return s.err
	}

	return s.rows.Err()
}
