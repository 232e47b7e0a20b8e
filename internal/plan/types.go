package plan

import (
	"fromrow-generator/internal/analyze"
	"fromrow-generator/internal/common"
	"fromrow-generator/internal/diagnostic"
	"fromrow-generator/internal/naming"
	"fromrow-generator/primitive"
)

// Plan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type Plan struct {
	// Records is the list of resolved record types, in package then name order.
	Records []RecordPlan
	// Graph holds all analyzed types and packages.
	Graph *analyze.TypeGraph
	// Runtime is the import path of the runtime package named by the schema
	// file, empty for the generator default.
	Runtime string
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// RecordPlan is a fully resolved record type.
type RecordPlan struct {
	// Type is the record struct.
	Type *analyze.TypeInfo
	// Package is the package declaring the record; generated code goes there.
	Package *analyze.PackageInfo
	// Naming is the convention applied to fields without an override.
	Naming naming.Convention
	// Fields lists the fields read from the row, in declaration order.
	Fields []FieldPlan
	// Skipped lists fields left at their zero value.
	Skipped []SkippedField
}

// Name returns the record's Go type name.
func (r *RecordPlan) Name() string {
	return r.Type.ID.Name
}

// Columns returns the resolved column names in field order.
func (r *RecordPlan) Columns() []string {
	out := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		out = append(out, f.Column)
	}

	return out
}

// FieldPlan describes how one struct field is read from a row.
type FieldPlan struct {
	// FieldName is the Go identifier.
	FieldName string
	// TypeString is the declared field type as spelled in the record's package.
	TypeString string
	// Kind is the scalar kind after unwrapping *T or sql.Null[T].
	Kind primitive.KindEnum
	// Wrapper is the optional wrapper around Kind, if any.
	Wrapper Wrapper
	// Required is false for wrapped fields.
	Required bool
	// Column is the result column the field is read from.
	Column string
	// ColumnSource names the rule that produced Column.
	ColumnSource ColumnSource
	// NeedsOwnedText selects the copying text narrowing.
	NeedsOwnedText bool
	// Explanation describes why this column was chosen.
	Explanation string
}

// NarrowMethod returns the fromrow.Value method used for the field.
func (f *FieldPlan) NarrowMethod() string {
	return f.Kind.Narrow(f.NeedsOwnedText)
}

// SkippedField is a field that is not read.
type SkippedField struct {
	FieldName string
	Reason    string
}

// Wrapper is the optional wrapper of a field type.
type Wrapper int

const (
	// WrapperNone - the field holds the scalar itself and is required.
	WrapperNone Wrapper = iota
	// WrapperPointer - *T, nil when the cell is missing or NULL.
	WrapperPointer
	// WrapperNull - sql.Null[T], invalid when the cell is missing or NULL.
	WrapperNull
)

// String returns a human-readable wrapper name.
func (w Wrapper) String() string {
	switch w {
	case WrapperNone:
		return "none"
	case WrapperPointer:
		return "pointer"
	case WrapperNull:
		return "null"
	default:
		return common.UnknownStr
	}
}

// ColumnSource indicates which rule produced a column name.
type ColumnSource int

const (
	// ColumnSourceVerbatim - the field name itself.
	ColumnSourceVerbatim ColumnSource = iota
	// ColumnSourceConvention - the record's naming convention.
	ColumnSourceConvention
	// ColumnSourceTag - the sql struct tag.
	ColumnSourceTag
	// ColumnSourceYAML - a columns entry of the schema file (highest priority).
	ColumnSourceYAML
)

// String returns a human-readable source name.
func (s ColumnSource) String() string {
	switch s {
	case ColumnSourceVerbatim:
		return "verbatim"
	case ColumnSourceConvention:
		return "convention"
	case ColumnSourceTag:
		return "tag"
	case ColumnSourceYAML:
		return "yaml:columns"
	default:
		return common.UnknownStr
	}
}

// IsOverride reports whether the column was named explicitly.
func (s ColumnSource) IsOverride() bool {
	return s == ColumnSourceTag || s == ColumnSourceYAML
}
