package mapping

import (
	"slices"
	"strings"

	"fromrow-generator/internal/analyze"
)

// ResolveTypeID resolves a type ID string like:
// - "points.Point" (short)
// - "fromrow-generator/examples/points.Point" (full)
// - "Point" (name only).
//
// Candidates are tried in import path order, so ambiguous short forms
// resolve deterministically.
func ResolveTypeID(typeIDStr string, graph *analyze.TypeGraph) *analyze.TypeInfo {
	if graph == nil || typeIDStr == "" {
		return nil
	}

	pkgStr, name := "", typeIDStr
	if lastDot := strings.LastIndex(typeIDStr, "."); lastDot >= 0 {
		pkgStr, name = typeIDStr[:lastDot], typeIDStr[lastDot+1:]
		if pkgStr == "" || name == "" {
			return nil
		}

		// exact match (for fully qualified import path)
		if t := graph.GetType(analyze.TypeID{PkgPath: pkgStr, Name: name}); t != nil {
			return t
		}
	}

	// short forms like "points.Point" or "Point"
	if found := graph.FindType(pkgStr, name); len(found) > 0 {
		return found[0]
	}

	return nil
}

// TypeNames returns "pkg.Name" for every struct in the graph; used for suggestions.
func TypeNames(graph *analyze.TypeGraph) []string {
	var out []string

	for _, id := range sortedIDs(graph) {
		if graph.Types[id].Kind != analyze.TypeKindStruct {
			continue
		}

		out = append(out, id.PkgPath[strings.LastIndex(id.PkgPath, "/")+1:]+"."+id.Name)
	}

	return out
}

func sortedIDs(graph *analyze.TypeGraph) []analyze.TypeID {
	ids := make([]analyze.TypeID, 0, len(graph.Types))
	for id := range graph.Types {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, func(a, b analyze.TypeID) int {
		return strings.Compare(a.String(), b.String())
	})

	return ids
}
