// Package fromrow is the runtime of fromrow-generator: the row abstraction
// generated FromRow methods read from, the scalar narrowing rules, and
// query helpers over database/sql.
//
// A record type opts in with a directive and gets a generated method:
//
//	//fromrow:generate naming=pascal
//	type Point struct {
//	    X           int32
//	    Y           *int32
//	    Description sql.Null[string]
//	}
//
//	pts, err := fromrow.QueryMany[Point](ctx, db, fromrow.NewQuery("SELECT X, Y, Description FROM p"))
//
// Non-pointer, non-Null fields are required: a missing column or a NULL
// cell fails the row with an error matching ErrCellAbsent. Optional fields
// become nil or invalid instead. Values that do not fit the field type fail
// with ErrNarrow, and every field failure is wrapped in a *FieldError.
//
// Lookups are exact and case-sensitive. Helpers are not safe for concurrent
// use of the same Row; distinct rows and queries are independent.
package fromrow
