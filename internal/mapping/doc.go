// Package mapping provides the YAML schema file of the generator.
//
// The schema file selects record types without touching their source and
// overrides what the in-source directives say. It is optional: types marked
// with //fromrow:generate need no entry.
//
// # Schema Overview
//
//	version: "1"
//	runtime: fromrow-generator/fromrow   # import path of the runtime package
//	types:
//	  - points.Sample                    # shorthand: select with defaults
//	  - type: points.Point
//	    naming: pascal                   # same | pascal | snake | lower
//	    columns:                         # field -> column overrides
//	      Label: point_label
//	    ignore: [cache]                  # fields left at their zero value
//
// # Priority Order
//
// For one field the column is resolved as:
//  1. "columns" entry of the schema file (highest)
//  2. `sql:"name"` struct tag
//  3. naming convention: schema "naming", else the directive's naming=
//  4. the field name verbatim (lowest)
//
// An "ignore" entry or `sql:"-"` skips the field.
package mapping
