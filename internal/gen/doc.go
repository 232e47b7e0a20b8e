// Package gen provides deterministic Go code generation for FromRow methods.
//
// Generation approach uses text/template + go/format for readable,
// allocation-light Go code. Every record gets one file next to its
// declaration:
//
//	point_fromrow.go
//	  func (p *Point) FromRow(row fromrow.Row) error
//	  func (Point) RowColumns() []fromrow.Column
//
// Codegen patterns:
//   - Required fields: fromrow.Required
//   - Pointer fields: fromrow.Optional
//   - sql.Null fields: fromrow.OptionalNull
//   - Decode into a local value, assign the receiver last
package gen
