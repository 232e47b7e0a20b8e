// Package analyze loads Go packages and extracts the record types the
// generator works on.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build a
// canonical in-memory model of named types, their struct fields and the
// //fromrow:generate directives in their doc comments.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/...), type
//     parameters and the directive of a named type
//   - FieldInfo: describes field name, type, tags and embedding
//   - Directive: the parsed //fromrow:generate marker
package analyze
