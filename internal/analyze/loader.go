package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	// Dir is the working directory for relative patterns; empty means the
	// current directory.
	Dir string

	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
	fset      *token.FileSet
	loading   map[string]struct{} // packages of the current LoadPackages call
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./points", "fromrow-generator/examples/points").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %v", patterns)
	}

	a.loading = make(map[string]struct{}, len(pkgs))
	for _, pkg := range pkgs {
		a.loading[pkg.PkgPath] = struct{}{}
	}

	// Process each package
	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// processPackage extracts types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if pkg.Types == nil {
		return fmt.Errorf("no type information")
	}

	a.fset = pkg.Fset

	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	directives, err := collectDirectives(pkg.Fset, pkg.Syntax)
	if err != nil {
		return err
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)

		// Only process type names (not variables, constants, functions)
		typeName, ok := obj.(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		typeID := TypeID{
			PkgPath: pkg.PkgPath,
			Name:    name,
		}

		typeInfo := a.analyzeType(typeName.Type())
		typeInfo.ID = typeID
		typeInfo.Pos = a.position(typeName.Pos())
		typeInfo.Directive = directives[name]

		a.graph.Types[typeID] = typeInfo
		pkgInfo.Types = append(pkgInfo.Types, typeID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo

	return nil
}

// collectDirectives maps type names to their directive. A malformed
// directive fails the load with its position.
func collectDirectives(fset *token.FileSet, files []*ast.File) (map[string]*Directive, error) {
	out := make(map[string]*Directive)

	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				// "//fromrow:generate\ntype T struct{}" attaches the comment to the decl
				if doc == nil && !gen.Lparen.IsValid() {
					doc = gen.Doc
				}

				d, err := directiveOf(doc)
				if err != nil {
					return nil, fmt.Errorf("%s: type %s: %w", fset.Position(ts.Pos()), ts.Name.Name, err)
				}

				if d != nil {
					out[ts.Name.Name] = d
				}
			}
		}
	}

	return out, nil
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	t = types.Unalias(t)

	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	case *types.Map:
		info.Kind = TypeKindMap

	case *types.Interface:
		info.Kind = TypeKindInterface

	case *types.Signature:
		info.Kind = TypeKindFunc

	case *types.Chan:
		info.Kind = TypeKindChan

	case *types.TypeParam:
		info.Kind = TypeKindTypeParam

	default:
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()
	if obj.Pkg() != nil {
		info.ID = TypeID{
			PkgPath: obj.Pkg().Path(),
			Name:    obj.Name(),
		}
	} else {
		// predeclared: error
		info.ID = TypeID{Name: obj.Name()}
	}

	if tp := named.TypeParams(); tp != nil {
		info.TypeParams = tp.Len()
	}

	if obj.Pkg() == nil || a.isExternalPackage(obj.Pkg().Path()) {
		// External/opaque type (e.g., time.Time, decimal.Decimal)
		info.Kind = TypeKindExternal
		return
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	case *types.Interface:
		info.Kind = TypeKindInterface

	case *types.Signature:
		info.Kind = TypeKindFunc

	default:
		// Named type wrapping something else in our packages (e.g., type Score int32)
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	if _, ok := a.loading[pkgPath]; ok {
		return false
	}

	_, ok := a.graph.Packages[pkgPath]

	return !ok
}

// analyzeStructFields extracts fields from a struct type. Unexported fields
// are kept: generated code lives in the record's package.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		fieldInfo := FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
			Pos:      a.position(field.Pos()),
		}

		info.Fields = append(info.Fields, fieldInfo)
	}
}

func (a *Analyzer) position(pos token.Pos) token.Position {
	if a.fset == nil || !pos.IsValid() {
		return token.Position{}
	}

	return a.fset.Position(pos)
}

// FindType looks a type up by name across the graph, in import path order.
// pkg may be empty, an import path, a trailing part of one ("v1/points") or
// a package name.
func (g *TypeGraph) FindType(pkg, name string) []*TypeInfo {
	var out []*TypeInfo

	for _, id := range g.sortedIDs() {
		if id.Name != name {
			continue
		}

		if pkg == "" || id.PkgPath == pkg || strings.HasSuffix(id.PkgPath, "/"+pkg) {
			out = append(out, g.Types[id])
			continue
		}

		if info := g.Packages[id.PkgPath]; info != nil && info.Name == pkg {
			out = append(out, g.Types[id])
		}
	}

	return out
}

func (g *TypeGraph) sortedIDs() []TypeID {
	ids := make([]TypeID, 0, len(g.Types))
	for id := range g.Types {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, func(a, b TypeID) int {
		return strings.Compare(a.String(), b.String())
	})

	return ids
}
