package fromrow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCellAbsent is matched by every error about a cell that has no value:
	// the column is missing from the result set or holds NULL.
	ErrCellAbsent = errors.New("cell has no value")
	// ErrNarrow is matched by every error about a cell whose value does not
	// fit the requested Go type.
	ErrNarrow = errors.New("cell cannot be narrowed")
	// ErrColumns is matched by result-shape validation failures.
	ErrColumns = errors.New("result columns do not match")
)

// CellError reports a required cell without a value.
type CellError struct {
	Column  string
	Index   int
	Missing bool // column is not in the result set, as opposed to NULL
}

func (e *CellError) Error() string {
	col := fmt.Sprintf("column %q", e.Column)
	if e.Column == "" {
		col = fmt.Sprintf("column #%d", e.Index)
	}

	if e.Missing {
		return col + ": not in result set"
	}

	return col + ": is NULL"
}

func (e *CellError) Unwrap() error { return ErrCellAbsent }

// NarrowError reports a cell value that cannot be converted to the requested type.
type NarrowError struct {
	Column string
	Want   string
	Got    Kind
	Err    error
}

func (e *NarrowError) Error() string {
	msg := fmt.Sprintf("column %q: cannot narrow %s value to %s", e.Column, e.Got, e.Want)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *NarrowError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNarrow}
	}

	return []error{ErrNarrow, e.Err}
}

// FieldError attributes a cell failure to the record field being populated.
type FieldError struct {
	Type  string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("failed to map %s.%s: %v", e.Type, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// WrapField is used by generated code to annotate a field failure.
func WrapField(typeName, field string, err error) error {
	return &FieldError{Type: typeName, Field: field, Err: err}
}

// ColumnsError lists required columns absent from a result set.
type ColumnsError struct {
	Missing []string
	// Hints maps a missing column to a present column with a similar name.
	Hints map[string]string
}

func (e *ColumnsError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, name := range e.Missing {
		if hint, ok := e.Hints[name]; ok {
			parts = append(parts, fmt.Sprintf("%q (did you mean %q?)", name, hint))
			continue
		}

		parts = append(parts, fmt.Sprintf("%q", name))
	}

	return "missing required columns: " + strings.Join(parts, ", ")
}

func (e *ColumnsError) Unwrap() error { return ErrColumns }
