package mapping

import (
	"fmt"

	"fromrow-generator/internal/analyze"
	"fromrow-generator/internal/common"
	"fromrow-generator/internal/diagnostic"
	"fromrow-generator/internal/match"
	"fromrow-generator/internal/naming"
)

// Validate checks a schema file against the loaded type graph: every
// entry must name a loaded type, use a known convention and refer to
// existing fields. Whether the type is a supported record is checked when
// planning.
func Validate(sf *SchemaFile, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if sf == nil {
		return res
	}

	if graph == nil {
		res.AddError(diagnostic.CodeUnknownType, "type graph is nil", "", "")
		return res
	}

	seen := make(map[analyze.TypeID]string)

	for i := range sf.Types {
		ts := &sf.Types[i]

		t := ResolveTypeID(ts.Type, graph)
		if t == nil {
			diag := diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticError,
				Code:     diagnostic.CodeUnknownType,
				Message:  fmt.Sprintf("type %q not found in the loaded packages", ts.Type),
				Type:     ts.Type,
			}

			if s, ok := match.Suggest(ts.Type, TypeNames(graph)); ok {
				diag.Suggestions = []string{s}
			}

			res.Add(diag)

			continue
		}

		if prev, dup := seen[t.ID]; dup {
			res.AddError(diagnostic.CodeDuplicateEntry,
				fmt.Sprintf("%q and %q select the same type %s", prev, ts.Type, t.ID), ts.Type, "")

			continue
		}

		seen[t.ID] = ts.Type

		if _, err := naming.Parse(ts.Naming); err != nil {
			res.AddError(diagnostic.CodeUnknownNaming, err.Error(), ts.Type, "")
		}

		fields := fieldNames(t)

		for _, field := range common.SortedKeys(ts.Columns) {
			if col := ts.Columns[field]; col == "" {
				res.AddError(diagnostic.CodeBadTag, "empty column override", ts.Type, field)
			}

			checkField(res, ts.Type, field, "columns", fields)
		}

		for _, field := range ts.Ignore {
			checkField(res, ts.Type, field, "ignore", fields)
		}
	}

	return res
}

func checkField(res *diagnostic.Diagnostics, typeName, field, section string, fields []string) {
	for _, f := range fields {
		if f == field {
			return
		}
	}

	diag := diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     diagnostic.CodeUnknownField,
		Message:  fmt.Sprintf("%s refers to unknown field %q", section, field),
		Type:     typeName,
		Field:    field,
	}

	if s, ok := match.Suggest(field, fields); ok {
		diag.Suggestions = []string{s}
	}

	res.Add(diag)
}

func fieldNames(t *analyze.TypeInfo) []string {
	names := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		names = append(names, f.Name)
	}

	return names
}
