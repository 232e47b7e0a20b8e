package plan

import (
	"errors"
	"fmt"
	"go/types"
	"slices"
	"strings"

	"fromrow-generator/internal/analyze"
	"fromrow-generator/internal/diagnostic"
	"fromrow-generator/internal/mapping"
	"fromrow-generator/internal/match"
	"fromrow-generator/internal/naming"
	"fromrow-generator/primitive"
)

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// Types restricts resolution to the named types ("Name", "pkg.Name" or
	// "import/path.Name"). Named types are resolved even without a directive.
	// Empty means every type selected by a directive or the schema file.
	Types []string
	// Explain adds an info diagnostic for every column that differs from
	// its field name.
	Explain bool
	// StrictMode reports duplicate columns as errors instead of warnings.
	StrictMode bool
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{}
}

// Resolver performs the resolution pipeline.
type Resolver struct {
	graph  *analyze.TypeGraph
	schema *mapping.SchemaFile
	config ResolutionConfig
}

// NewResolver creates a new Resolver. schema may be nil.
func NewResolver(
	graph *analyze.TypeGraph,
	schema *mapping.SchemaFile,
	config ResolutionConfig,
) *Resolver {
	return &Resolver{
		graph:  graph,
		schema: schema,
		config: config,
	}
}

// Resolve resolves graph with the default configuration.
func Resolve(graph *analyze.TypeGraph, schema *mapping.SchemaFile) (*Plan, error) {
	return NewResolver(graph, schema, DefaultConfig()).Resolve()
}

// Resolve executes the resolution pipeline. Shape problems are reported in
// Plan.Diagnostics; records with errors are left out of Plan.Records.
func (r *Resolver) Resolve() (*Plan, error) {
	if r.graph == nil {
		return nil, errors.New("type graph is nil")
	}

	result := &Plan{Graph: r.graph}
	if r.schema != nil {
		result.Runtime = r.schema.Runtime
	}

	result.Diagnostics.Merge(*mapping.Validate(r.schema, r.graph))

	for _, tgt := range r.selectTargets(&result.Diagnostics) {
		rec, ok := r.resolveRecord(tgt.typ, tgt.schema, &result.Diagnostics)
		if ok {
			result.Records = append(result.Records, *rec)
		}
	}

	return result, nil
}

type target struct {
	typ    *analyze.TypeInfo
	schema *mapping.TypeSchema
}

// selectTargets collects the records to plan, sorted by type ID.
func (r *Resolver) selectTargets(diags *diagnostic.Diagnostics) []target {
	byID := make(map[analyze.TypeID]*target)

	add := func(t *analyze.TypeInfo) *target {
		tgt, ok := byID[t.ID]
		if !ok {
			tgt = &target{typ: t}
			byID[t.ID] = tgt
		}

		return tgt
	}

	for _, t := range r.graph.Marked() {
		add(t)
	}

	if r.schema != nil {
		for i := range r.schema.Types {
			ts := &r.schema.Types[i]

			t := mapping.ResolveTypeID(ts.Type, r.graph)
			if t == nil {
				// reported by mapping.Validate
				continue
			}

			// the first entry wins for duplicated types
			if tgt := add(t); tgt.schema == nil {
				tgt.schema = ts
			}
		}
	}

	if len(r.config.Types) > 0 {
		selected := make(map[analyze.TypeID]*target, len(r.config.Types))

		for _, name := range r.config.Types {
			t := mapping.ResolveTypeID(name, r.graph)
			if t == nil {
				diag := diagnostic.Diagnostic{
					Severity: diagnostic.DiagnosticError,
					Code:     diagnostic.CodeUnknownType,
					Message:  fmt.Sprintf("type %q not found in the loaded packages", name),
					Type:     name,
				}

				if s, ok := match.Suggest(name, mapping.TypeNames(r.graph)); ok {
					diag.Suggestions = []string{s}
				}

				diags.Add(diag)

				continue
			}

			selected[t.ID] = add(t)
		}

		byID = selected
	}

	out := make([]target, 0, len(byID))
	for _, tgt := range byID {
		out = append(out, *tgt)
	}

	slices.SortFunc(out, func(a, b target) int {
		return strings.Compare(a.typ.ID.String(), b.typ.ID.String())
	})

	return out
}

// resolveRecord plans one record. ok is false when an error was reported.
func (r *Resolver) resolveRecord(
	t *analyze.TypeInfo,
	ts *mapping.TypeSchema,
	diags *diagnostic.Diagnostics,
) (rec *RecordPlan, ok bool) {
	name := t.ID.Name

	if t.Kind != analyze.TypeKindStruct {
		addDiag(diags, diagnostic.DiagnosticError, diagnostic.CodeNotStruct, t, nil,
			fmt.Sprintf("%s is %s, only struct types can be read from rows", t.ID, describeKind(t)))

		return nil, false
	}

	if t.IsGeneric() {
		addDiag(diags, diagnostic.DiagnosticError, diagnostic.CodeGeneric, t, nil,
			fmt.Sprintf("%s declares %d type parameter(s), generic records are not supported", t.ID, t.TypeParams))

		return nil, false
	}

	conv, ok := r.convention(t, ts, diags)
	if !ok {
		return nil, false
	}

	rec = &RecordPlan{
		Type:    t,
		Package: r.graph.Packages[t.ID.PkgPath],
		Naming:  conv,
	}

	stringer := analyze.NewTypeStringer(t.ID.PkgPath)
	failed := false

	for i := range t.Fields {
		f := &t.Fields[i]

		tagColumn, tagSkip, err := f.ColumnTag()
		if err != nil {
			addDiag(diags, diagnostic.DiagnosticError, diagnostic.CodeBadTag, t, f,
				fmt.Sprintf("invalid sql tag %q: %v", f.Tag, err))

			failed = true

			continue
		}

		if reason, skip := skipReason(f, ts, tagSkip); skip {
			rec.Skipped = append(rec.Skipped, SkippedField{FieldName: f.Name, Reason: reason})
			continue
		}

		if f.Embedded {
			addDiag(diags, diagnostic.DiagnosticError, diagnostic.CodeEmbeddedField, t, f,
				fmt.Sprintf(`embedded field %s is not flattened, name the field or skip it with sql:"-"`,
					stringer.TypeString(f.Type)))

			failed = true

			continue
		}

		kind, wrapper := classify(f.Type.GoType)
		if !kind.IsValid() {
			addDiag(diags, diagnostic.DiagnosticError, diagnostic.CodeUnsupportedField, t, f,
				unsupportedMessage(stringer.TypeString(f.Type), f.Type.GoType))

			failed = true

			continue
		}

		fp := FieldPlan{
			FieldName:      f.Name,
			TypeString:     stringer.TypeString(f.Type),
			Kind:           kind,
			Wrapper:        wrapper,
			Required:       wrapper == WrapperNone,
			NeedsOwnedText: kind.IsText(),
		}
		fp.Column, fp.ColumnSource, fp.Explanation = resolveColumn(f.Name, conv, tagColumn, ts)

		if r.config.Explain && fp.Column != fp.FieldName {
			addDiag(diags, diagnostic.DiagnosticInfo, diagnostic.CodeColumnResolved, t, f,
				fmt.Sprintf("reads column %q (%s)", fp.Column, fp.Explanation))
		}

		rec.Fields = append(rec.Fields, fp)
	}

	if failed {
		return nil, false
	}

	r.checkDuplicateColumns(rec, diags)

	if len(rec.Fields) == 0 {
		addDiag(diags, diagnostic.DiagnosticWarning, diagnostic.CodeNoFields, t, nil,
			fmt.Sprintf("%s reads no column, FromRow only resets the record", name))
	}

	return rec, true
}

// convention picks the naming convention: the schema entry wins over the
// directive. Unknown schema values are already reported by mapping.Validate.
func (r *Resolver) convention(
	t *analyze.TypeInfo,
	ts *mapping.TypeSchema,
	diags *diagnostic.Diagnostics,
) (naming.Convention, bool) {
	raw, fromSchema := "", false
	if t.Directive != nil {
		raw = t.Directive.Naming
	}

	if ts != nil && ts.Naming != "" {
		raw, fromSchema = ts.Naming, true
	}

	conv, err := naming.Parse(raw)
	if err == nil {
		return conv, true
	}

	if !fromSchema {
		diag := diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeUnknownNaming,
			Message:  err.Error(),
			Type:     t.ID.Name,
			Pos:      t.Pos,
		}

		known := make([]string, 0, len(naming.Conventions))
		for _, c := range naming.Conventions {
			known = append(known, string(c))
		}

		if s, ok := match.Suggest(raw, known); ok {
			diag.Suggestions = []string{s}
		}

		diags.Add(diag)
	}

	return "", false
}

func (r *Resolver) checkDuplicateColumns(rec *RecordPlan, diags *diagnostic.Diagnostics) {
	severity := diagnostic.DiagnosticWarning
	if r.config.StrictMode {
		severity = diagnostic.DiagnosticError
	}

	first := make(map[string]string, len(rec.Fields))

	for i := range rec.Fields {
		fp := &rec.Fields[i]

		prev, dup := first[fp.Column]
		if !dup {
			first[fp.Column] = fp.FieldName
			continue
		}

		var field *analyze.FieldInfo

		for j := range rec.Type.Fields {
			if rec.Type.Fields[j].Name == fp.FieldName {
				field = &rec.Type.Fields[j]
			}
		}

		addDiag(diags, severity, diagnostic.CodeDuplicateColumn, rec.Type, field,
			fmt.Sprintf("column %q is also read by field %s", fp.Column, prev))
	}
}

// resolveColumn applies override > convention > verbatim.
func resolveColumn(
	field string,
	conv naming.Convention,
	tagColumn string,
	ts *mapping.TypeSchema,
) (column string, source ColumnSource, explanation string) {
	if col, ok := ts.Column(field); ok && col != "" {
		return col, ColumnSourceYAML, "schema file columns entry"
	}

	if tagColumn != "" {
		return tagColumn, ColumnSourceTag, "sql tag"
	}

	if conv != naming.Same {
		if col := conv.Convert(field); col != "" {
			return col, ColumnSourceConvention, "naming=" + conv.String()
		}
	}

	return field, ColumnSourceVerbatim, "field name"
}

func skipReason(f *analyze.FieldInfo, ts *mapping.TypeSchema, tagSkip bool) (string, bool) {
	switch {
	case f.Name == "_":
		return "blank field", true
	case ts.IsIgnored(f.Name):
		return "schema file ignore", true
	case tagSkip:
		return `sql:"-"`, true
	default:
		return "", false
	}
}

// classify unwraps *T and sql.Null[T] and returns the scalar kind of T.
// The zero kind means the field cannot be read.
func classify(t types.Type) (primitive.KindEnum, Wrapper) {
	if k := primitive.KindOf(t); k.IsValid() {
		return k, WrapperNone
	}

	switch tt := types.Unalias(t).(type) {
	case *types.Pointer:
		return primitive.KindOf(tt.Elem()), WrapperPointer

	case *types.Named:
		if isSQLNull(tt) {
			return primitive.KindOf(tt.TypeArgs().At(0)), WrapperNull
		}
	}

	return 0, WrapperNone
}

func isSQLNull(t *types.Named) bool {
	obj := t.Obj()

	return obj.Pkg() != nil &&
		obj.Pkg().Path() == "database/sql" &&
		obj.Name() == "Null" &&
		t.TypeArgs().Len() == 1
}

func unsupportedMessage(typeString string, t types.Type) string {
	msg := fmt.Sprintf("unsupported field type %s, use a scalar, *T or sql.Null[T]", typeString)

	if named, ok := types.Unalias(t).(*types.Named); ok {
		if k := primitive.KindOf(named.Underlying()); k.IsValid() {
			msg += fmt.Sprintf(" (named types are not narrowed, declare it as %s)", k.GoType())
		}
	}

	return msg
}

func describeKind(t *analyze.TypeInfo) string {
	switch t.Kind {
	case analyze.TypeKindAlias:
		if t.Underlying != nil && t.Underlying.GoType != nil {
			return "a named " + t.Underlying.GoType.String() + " type"
		}

		return "a named non-struct type"
	case analyze.TypeKindInterface:
		return "an interface"
	default:
		return "a " + t.Kind.String() + " type"
	}
}

func addDiag(
	diags *diagnostic.Diagnostics,
	severity diagnostic.DiagnosticSeverity,
	code string,
	t *analyze.TypeInfo,
	f *analyze.FieldInfo,
	msg string,
) {
	d := diagnostic.Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  msg,
		Type:     t.ID.Name,
		Pos:      t.Pos,
	}

	if f != nil {
		d.Field = f.Name
		if f.Pos.IsValid() {
			d.Pos = f.Pos
		}
	}

	diags.Add(d)
}
