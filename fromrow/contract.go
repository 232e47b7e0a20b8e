package fromrow

import (
	"database/sql"

	"fromrow-generator/internal/match"
)

// Mappable is implemented by records that populate themselves from a row.
// Generated FromRow methods leave the receiver untouched on error.
type Mappable interface {
	FromRow(row Row) error
}

// MapFunc converts one row into a value.
type MapFunc[T any] func(row Row) (T, error)

// Map is the MapFunc of a Mappable record type.
//
//	points, err := fromrow.QueryManyFunc(ctx, db, q, fromrow.Map[points.Point])
func Map[T any, PT interface {
	*T
	Mappable
}](row Row) (T, error) {
	var out T
	if err := PT(&out).FromRow(row); err != nil {
		var zero T
		return zero, err
	}

	return out, nil
}

// Column describes how a record field is read.
type Column struct {
	Name     string
	Field    string
	Required bool
}

// Describer is implemented by generated records to expose their columns.
type Describer interface {
	RowColumns() []Column
}

// CheckColumns verifies that every required column of want is present in have.
// Optional columns may be absent.
func CheckColumns(have []string, want []Column) error {
	present := make(map[string]struct{}, len(have))
	for _, name := range have {
		present[name] = struct{}{}
	}

	var missing []string

	for _, col := range want {
		if !col.Required {
			continue
		}

		if _, ok := present[col.Name]; !ok {
			missing = append(missing, col.Name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	hints := make(map[string]string)
	for _, name := range missing {
		if hint, ok := match.Suggest(name, have); ok {
			hints[name] = hint
		}
	}

	return &ColumnsError{Missing: missing, Hints: hints}
}

// CheckColumnsOf is CheckColumns for a Describer record type.
func CheckColumnsOf[T Describer](have []string) error {
	var zero T
	return CheckColumns(have, zero.RowColumns())
}

// Required reads a column that must hold a value.
func Required[T any](row Row, column string, narrow func(Value) (T, error)) (T, error) {
	var zero T

	v, ok := row.ByName(column)
	if !ok {
		return zero, &CellError{Column: column, Missing: true}
	}

	if v.IsNull() {
		return zero, &CellError{Column: column}
	}

	return narrow(v)
}

// Optional reads a column into a pointer. Missing and NULL cells yield nil.
func Optional[T any](row Row, column string, narrow func(Value) (T, error)) (*T, error) {
	v, ok := row.ByName(column)
	if !ok || v.IsNull() {
		return nil, nil
	}

	out, err := narrow(v)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// OptionalNull reads a column into sql.Null. Missing and NULL cells yield an invalid Null.
func OptionalNull[T any](row Row, column string, narrow func(Value) (T, error)) (sql.Null[T], error) {
	v, ok := row.ByName(column)
	if !ok || v.IsNull() {
		return sql.Null[T]{}, nil
	}

	out, err := narrow(v)
	if err != nil {
		return sql.Null[T]{}, err
	}

	return sql.Null[T]{V: out, Valid: true}, nil
}
