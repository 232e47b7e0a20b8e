package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"path/filepath"
	"slices"
	"text/template"

	"fromrow-generator/internal/common"
	"fromrow-generator/internal/naming"
	"fromrow-generator/internal/plan"
	"fromrow-generator/primitive"
)

// DefaultRuntimeImport is the runtime package imported by generated code.
const DefaultRuntimeImport = "fromrow-generator/fromrow"

// runtimeName is the identifier generated code uses for the runtime package.
const runtimeName = "fromrow"

// fileSuffix is appended to the snake-cased type name.
const fileSuffix = "_fromrow.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// RuntimeImport is the import path of the runtime package. Empty means
	// the schema file's runtime entry, then DefaultRuntimeImport.
	RuntimeImport string
	// OutputDir overrides the directory of every generated file. Empty
	// writes each file next to its record.
	OutputDir string
	// GenerateComments enables doc comments on generated methods.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		GenerateComments: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "point_fromrow.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the file's destination.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Filename returns the generated file name for a record type:
// "Point" -> "point_fromrow.go".
func Filename(typeName string) string {
	return naming.Snake.Convert(typeName) + fileSuffix
}

// Generate generates one file per record of p. A plan carrying error
// diagnostics produces no files.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	if p == nil {
		return nil, errors.New("plan is nil")
	}

	if err := p.Diagnostics.Error(); err != nil {
		return nil, err
	}

	if g.config.OutputDir != "" {
		if err := singlePackage(p); err != nil {
			return nil, err
		}
	}

	runtime := g.runtimeImport(p)
	seen := make(map[string]string, len(p.Records))

	files := make([]GeneratedFile, 0, len(p.Records))

	for i := range p.Records {
		rec := &p.Records[i]

		file, err := g.generateRecord(rec, runtime)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", rec.Type.ID, err)
		}

		if prev, dup := seen[file.Path()]; dup {
			return nil, fmt.Errorf("%s and %s both generate %s", prev, rec.Type.ID, file.Path())
		}

		seen[file.Path()] = rec.Type.ID.String()
		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) runtimeImport(p *plan.Plan) string {
	switch {
	case g.config.RuntimeImport != "":
		return g.config.RuntimeImport
	case p.Runtime != "":
		return p.Runtime
	default:
		return DefaultRuntimeImport
	}
}

func singlePackage(p *plan.Plan) error {
	var pkg string

	for _, rec := range p.Records {
		switch {
		case pkg == "":
			pkg = rec.Type.ID.PkgPath
		case pkg != rec.Type.ID.PkgPath:
			return fmt.Errorf("an output directory needs records from a single package, got %s and %s",
				pkg, rec.Type.ID.PkgPath)
		}
	}

	return nil
}

// generateRecord generates the file of a single record.
func (g *Generator) generateRecord(rec *plan.RecordPlan, runtime string) (*GeneratedFile, error) {
	if rec.Package == nil {
		return nil, errors.New("record has no package info")
	}

	data := g.buildTemplateData(rec, runtime)

	dir := rec.Package.Dir
	if g.config.OutputDir != "" {
		dir = g.config.OutputDir
	}

	var buf bytes.Buffer
	if err := recordTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// best-effort sidecar for debugging; the format error is what matters
		_ = writeDebugUnformatted(dir, data.Filename, buf.Bytes())

		return nil, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Dir:      dir,
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

// templateData holds all data needed for the record template.
type templateData struct {
	PackageName      string
	Filename         string
	RuntimeImport    string
	ImportAlias      string
	RT               string
	TypeName         string
	GenerateComments bool
	Fields           []fieldData

	// Identifiers of the FromRow body, chosen not to hide TypeName or RT.
	Recv string
	Row  string
	Out  string
	Err  string
}

// fieldData is one field assignment in FromRow.
type fieldData struct {
	Name     string
	Column   string
	Helper   string
	Narrow   string // method expression, e.g. fromrow.Value.Int32
	Required bool
}

// buildTemplateData constructs the template data from a resolved record.
func (g *Generator) buildTemplateData(rec *plan.RecordPlan, runtime string) *templateData {
	typeName := rec.Name()
	rt := freeIdent(runtimeName, typeName)

	data := &templateData{
		PackageName:      rec.Package.Name,
		Filename:         Filename(typeName),
		RuntimeImport:    runtime,
		RT:               rt,
		TypeName:         typeName,
		GenerateComments: g.config.GenerateComments,
		Fields:           make([]fieldData, 0, len(rec.Fields)),
		Recv:             freeIdent("p", typeName, rt),
		Row:              freeIdent("row", typeName, rt),
		Out:              freeIdent("out", typeName, rt),
		Err:              freeIdent("err", typeName, rt),
	}

	if common.PkgAlias(runtime) != rt {
		data.ImportAlias = rt
	}

	for _, f := range rec.Fields {
		data.Fields = append(data.Fields, fieldData{
			Name:     f.FieldName,
			Column:   f.Column,
			Helper:   helperFor(f.Wrapper),
			Narrow:   primitive.NarrowExpr(rt, f.Kind, f.NeedsOwnedText),
			Required: f.Required,
		})
	}

	return data
}

// freeIdent returns name, suffixed with underscores until it differs from
// every taken identifier.
func freeIdent(name string, taken ...string) string {
	for slices.Contains(taken, name) {
		name += "_"
	}

	return name
}

// helperFor names the runtime function reading a field with the wrapper.
func helperFor(w plan.Wrapper) string {
	switch w {
	case plan.WrapperPointer:
		return "Optional"
	case plan.WrapperNull:
		return "OptionalNull"
	default:
		return "Required"
	}
}

// Template for a record file
var recordTemplate = template.Must(template.New("record").Parse(`// Code generated by fromrow-generator. DO NOT EDIT.

package {{.PackageName}}

import {{if .ImportAlias}}{{.ImportAlias}} {{end}}"{{.RuntimeImport}}"
{{if .GenerateComments}}
// FromRow populates {{.Recv}} from {{.Row}}. On error {{.Recv}} is left unchanged.
{{- end}}
func ({{.Recv}} *{{.TypeName}}) FromRow({{.Row}} {{.RT}}.Row) error {
{{- if .Fields}}
	var (
		{{.Out}} {{.TypeName}}
		{{.Err}} error
	)
{{range .Fields}}
	if {{$.Out}}.{{.Name}}, {{$.Err}} = {{$.RT}}.{{.Helper}}({{$.Row}}, {{printf "%q" .Column}}, {{.Narrow}}); {{$.Err}} != nil {
		return {{$.RT}}.WrapField({{printf "%q" $.TypeName}}, {{printf "%q" .Name}}, {{$.Err}})
	}
{{end}}
	*{{.Recv}} = {{.Out}}
{{- else}}
	_ = {{.Row}}
	*{{.Recv}} = {{.TypeName}}{}
{{- end}}

	return nil
}
{{if .GenerateComments}}
// RowColumns describes the columns read by FromRow.
{{- end}}
func ({{.TypeName}}) RowColumns() []{{.RT}}.Column {
{{- if .Fields}}
	return []{{.RT}}.Column{
{{- range .Fields}}
		{Name: {{printf "%q" .Column}}, Field: {{printf "%q" .Name}}{{if .Required}}, Required: true{{end}}},
{{- end}}
	}
{{- else}}
	return []{{.RT}}.Column{}
{{- end}}
}
`))
