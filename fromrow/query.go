package fromrow

import (
	"context"
	"database/sql"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Conn)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Query is a statement with its positional parameters. Placeholders are
// passed to the driver as written.
type Query struct {
	Text string
	Args []any
}

// NewQuery creates a Query.
func NewQuery(text string, args ...any) Query {
	return Query{Text: text, Args: args}
}

// Bind appends a parameter and returns the query for chaining.
//
//	q := fromrow.NewQuery("SELECT x FROM p WHERE x > ? AND y < ?")
//	q.Bind(1).Bind(10)
func (q *Query) Bind(arg any) *Query {
	q.Args = append(q.Args, arg)
	return q
}

// QueryManyFunc runs query and maps the rows of every result set, in order,
// with fn. The first failure aborts and no partial results are returned.
// An empty result is a non-nil empty slice.
func QueryManyFunc[T any](ctx context.Context, q Querier, query Query, fn MapFunc[T]) (out []T, err error) {
	rows, err := q.QueryContext(ctx, query.Text, query.Args...)
	if err != nil {
		return nil, err
	}
	// Propagate rows.Close() error if nothing else failed.
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			out, err = nil, cerr
		}
	}()

	return CollectFunc(rows, fn)
}

// QueryMany is QueryManyFunc for a generated record type.
//
//	pts, err := fromrow.QueryMany[points.Point](ctx, db, fromrow.NewQuery("SELECT * FROM p"))
func QueryMany[T any, PT interface {
	*T
	Mappable
}](ctx context.Context, q Querier, query Query) ([]T, error) {
	return QueryManyFunc[T](ctx, q, query, Map[T, PT])
}

// QueryFirstOrNoneFunc maps the first row of the first result set. The
// boolean is false when that result set is empty. Remaining rows and result
// sets are discarded.
func QueryFirstOrNoneFunc[T any](ctx context.Context, q Querier, query Query, fn MapFunc[T]) (out T, found bool, err error) {
	rows, err := q.QueryContext(ctx, query.Text, query.Args...)
	if err != nil {
		return out, false, err
	}

	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			var zero T
			out, found, err = zero, false, cerr
		}
	}()

	src := NewRowSource(rows)
	if !src.Next() {
		return out, false, src.Err()
	}

	row, err := src.Row()
	if err != nil {
		return out, false, err
	}

	v, err := fn(row)
	if err != nil {
		return out, false, err
	}

	return v, true, nil
}

// QueryFirstOrNone is QueryFirstOrNoneFunc for a generated record type.
func QueryFirstOrNone[T any, PT interface {
	*T
	Mappable
}](ctx context.Context, q Querier, query Query) (T, bool, error) {
	return QueryFirstOrNoneFunc[T](ctx, q, query, Map[T, PT])
}

// CollectFunc maps every row of every remaining result set of rows.
// It does not close rows.
func CollectFunc[T any](rows Rows, fn MapFunc[T]) ([]T, error) {
	out := make([]T, 0)
	src := NewRowSource(rows)

	for {
		for src.Next() {
			row, err := src.Row()
			if err != nil {
				return nil, err
			}

			v, err := fn(row)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		if err := src.Err(); err != nil {
			return nil, err
		}

		if !src.NextResultSet() {
			break
		}
	}

	if err := src.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
