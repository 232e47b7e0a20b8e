package analyze

import (
	"strings"
)

// TypeStringer renders TypeInfo values the way they are spelled in the
// record's own package: local names unqualified, others by package name.
type TypeStringer struct {
	// LocalPkg is the import path whose types are printed without qualifier.
	LocalPkg string
}

// NewTypeStringer creates a TypeStringer for types declared in localPkg.
func NewTypeStringer(localPkg string) *TypeStringer {
	return &TypeStringer{LocalPkg: localPkg}
}

// TypeString returns a human-readable string representation of a TypeInfo.
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindPointer:
		return "*" + s.TypeString(t.ElemType)

	case TypeKindSlice:
		return "[]" + s.TypeString(t.ElemType)

	case TypeKindStruct, TypeKindAlias, TypeKindExternal, TypeKindInterface, TypeKindFunc:
		if t.IsNamed() {
			return s.qualify(t)
		}
	}

	if t.GoType == nil {
		return "<" + t.Kind.String() + ">"
	}

	return t.GoType.String()
}

func (s *TypeStringer) qualify(t *TypeInfo) string {
	name := t.ID.Name
	if args := typeArgs(t); args != "" {
		name += args
	}

	if t.ID.PkgPath == "" || t.ID.PkgPath == s.LocalPkg {
		return name
	}

	return t.ID.PkgPath[strings.LastIndex(t.ID.PkgPath, "/")+1:] + "." + name
}

// typeArgs returns "[...]" for instantiated generic types such as sql.Null[string].
func typeArgs(t *TypeInfo) string {
	s := t.GoType.String()

	i := strings.IndexByte(s, '[')
	if i < 0 {
		return ""
	}

	return s[i:]
}
