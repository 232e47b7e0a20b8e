// Package plan resolves record types into field descriptors consumed by
// code generation.
//
// Resolution pipeline:
//  1. Analyze packages → type graph
//  2. Load YAML (optional) → validate
//  3. For each selected record (directive or schema entry):
//     - Reject non-struct, generic and unsupported shapes
//     - Compute every field's column: override > convention > verbatim
//     - Classify the field as required, pointer-optional or Null-optional
//  4. Emit diagnostics (unsupported fields, duplicate columns, suggestions)
package plan
