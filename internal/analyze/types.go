package analyze

import (
	"errors"
	"go/token"
	"go/types"
	"reflect"

	"github.com/fatih/structtag"

	"fromrow-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "fromrow-generator/examples/points"
	Name    string // e.g., "Point"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindInterface          // interface type
	TypeKindFunc               // func type
	TypeKindChan               // channel type
	TypeKindAlias              // named type over a non-struct local type
	TypeKindExternal           // named type from a package outside the loaded set (e.g., time.Time)
	TypeKindTypeParam          // type parameter of a generic type
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return common.InterfaceTypeStr
	case TypeKindFunc:
		return "func"
	case TypeKindChan:
		return "chan"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	case TypeKindTypeParam:
		return "type parameter"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For alias types, the underlying type
	ElemType   *TypeInfo   // For pointers, slices and arrays, the element type
	Fields     []FieldInfo // For structs, the list of fields
	GoType     types.Type  // The original go/types.Type
	TypeParams int         // Number of type parameters of a generic named type
	Directive  *Directive  // Parsed //fromrow:generate marker, nil if absent
	Pos        token.Position
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// IsGeneric reports whether the named type declares type parameters.
func (t *TypeInfo) IsGeneric() bool {
	return t.TypeParams > 0
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
	Pos      token.Position
}

// TagKey is the struct tag key carrying column overrides.
const TagKey = "sql"

// ColumnTag returns the column named by the `sql:"..."` tag. Skip is set for
// `sql:"-"`. A field without the tag returns ("", false, nil).
func (f *FieldInfo) ColumnTag() (column string, skip bool, err error) {
	if f.Tag == "" {
		return "", false, nil
	}

	tags, err := structtag.Parse(string(f.Tag))
	if err != nil {
		return "", false, err
	}

	tag, err := tags.Get(TagKey)
	if err != nil {
		// structtag reports a missing key as an error
		return "", false, nil
	}

	if tag.Name == "-" {
		return "", true, nil
	}

	if tag.Name == "" {
		return "", false, errors.New(`empty column name in sql tag, use sql:"-" to skip the field`)
	}

	return tag.Name, false, nil
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// Marked returns the types carrying a directive, in package then name order.
func (g *TypeGraph) Marked() []*TypeInfo {
	var out []*TypeInfo

	for _, path := range common.SortedKeys(g.Packages) {
		for _, id := range g.Packages[path].Types {
			if t := g.Types[id]; t != nil && t.Directive != nil {
				out = append(out, t)
			}
		}
	}

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Named types defined in this package, sorted by name
}
