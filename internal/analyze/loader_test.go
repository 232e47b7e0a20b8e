package analyze

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pointsPkg = "fromrow-generator/examples/points"
	shapesPkg = "fromrow-generator/examples/shapes"
)

func field(t *testing.T, info *TypeInfo, name string) *FieldInfo {
	t.Helper()

	for i := range info.Fields {
		if info.Fields[i].Name == name {
			return &info.Fields[i]
		}
	}

	require.Failf(t, "field not found", "%s has no field %s", info.ID, name)

	return nil
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(pointsPkg, shapesPkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	// Check that packages were loaded
	assert.Contains(t, graph.Packages, pointsPkg)
	assert.Contains(t, graph.Packages, shapesPkg)
	assert.Equal(t, "points", graph.Packages[pointsPkg].Name)
	assert.NotEmpty(t, graph.Packages[pointsPkg].Dir)

	// Check that types were extracted
	assert.Contains(t, graph.Types, TypeID{PkgPath: pointsPkg, Name: "Point"})
	assert.Contains(t, graph.Types, TypeID{PkgPath: shapesPkg, Name: "Bag"})
}

func TestAnalyzer_NoPackages(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("fromrow-generator/examples/does-not-exist")
	require.Error(t, err)
}

func TestAnalyzer_PointFields(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(pointsPkg)
	require.NoError(t, err)

	point := graph.GetType(TypeID{PkgPath: pointsPkg, Name: "Point"})
	require.NotNil(t, point)
	assert.Equal(t, TypeKindStruct, point.Kind)
	assert.True(t, point.Pos.IsValid())

	require.NotNil(t, point.Directive)
	assert.Equal(t, "pascal", point.Directive.Naming)

	// unexported fields are kept
	super := field(t, point, "super_description")
	assert.False(t, super.Exported)
	assert.Equal(t, TypeKindBasic, super.Type.Kind)

	y := field(t, point, "Y")
	assert.Equal(t, TypeKindPointer, y.Type.Kind)
	require.NotNil(t, y.Type.ElemType)
	assert.Equal(t, TypeKindBasic, y.Type.ElemType.Kind)

	label := field(t, point, "Label")
	assert.Equal(t, TypeKindExternal, label.Type.Kind)
	assert.Equal(t, TypeID{PkgPath: "database/sql", Name: "Null"}, label.Type.ID)

	column, skip, err := label.ColumnTag()
	require.NoError(t, err)
	assert.False(t, skip)
	assert.Equal(t, "point_label", column)
}

func TestAnalyzer_Marked(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(pointsPkg, shapesPkg)
	require.NoError(t, err)

	var names []string
	for _, info := range graph.Marked() {
		names = append(names, info.ID.Name)
	}

	// packages in path order, types in name order
	assert.Equal(t, []string{
		"Point", "Sample",
		"BadTag", "Bag", "Box", "Dupe", "Odd", "Opaque", "Score", "Skipped",
	}, names)
	assert.NotContains(t, names, "Plain")
	assert.NotContains(t, names, "Base")
}

func TestAnalyzer_ShapeKinds(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(shapesPkg)
	require.NoError(t, err)

	tests := []struct {
		name   string
		kind   TypeKind
		params int
	}{
		{"Opaque", TypeKindInterface, 0},
		{"Score", TypeKindAlias, 0},
		{"Box", TypeKindStruct, 1},
		{"Bag", TypeKindStruct, 0},
	}

	for _, tt := range tests {
		info := graph.GetType(TypeID{PkgPath: shapesPkg, Name: tt.name})
		require.NotNil(t, info, tt.name)
		assert.Equal(t, tt.kind, info.Kind, tt.name)
		assert.Equal(t, tt.params, info.TypeParams, tt.name)
	}

	bag := graph.GetType(TypeID{PkgPath: shapesPkg, Name: "Bag"})
	assert.True(t, field(t, bag, "Base").Embedded)
	assert.Equal(t, TypeKindMap, field(t, bag, "Attrs").Type.Kind)
	assert.Equal(t, TypeKindSlice, field(t, bag, "Tags").Type.Kind)
	assert.Equal(t, TypeKindAlias, field(t, bag, "Level").Type.Kind)
}

func TestTypeGraph_FindType(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(pointsPkg, shapesPkg)
	require.NoError(t, err)

	assert.Len(t, graph.FindType("", "Point"), 1)
	assert.Len(t, graph.FindType("points", "Point"), 1)
	assert.Len(t, graph.FindType(pointsPkg, "Point"), 1)
	assert.Len(t, graph.FindType("examples/points", "Point"), 1)
	assert.Empty(t, graph.FindType("shapes", "Point"))
	assert.Empty(t, graph.FindType("ints", "Point"), "suffix must start at a path element")

	plain := graph.FindType("shapes", "Plain")
	require.Len(t, plain, 1)
	assert.Equal(t, shapesPkg, plain[0].ID.PkgPath)
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: pointsPkg, Name: "Point"}
	assert.Equal(t, "fromrow-generator/examples/points.Point", id.String())

	// Empty package path
	idNoPkg := TypeID{Name: "int"}
	assert.Equal(t, "int", idNoPkg.String())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "basic", TypeKindBasic.String())
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "pointer", TypeKindPointer.String())
	assert.Equal(t, "slice", TypeKindSlice.String())
	assert.Equal(t, "alias", TypeKindAlias.String())
	assert.Equal(t, "external", TypeKindExternal.String())
	assert.Equal(t, "interface", TypeKindInterface.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}

func TestFieldInfo_ColumnTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		column  string
		skip    bool
		wantErr bool
	}{
		{"no tag", "", "", false, false},
		{"other keys only", `json:"x"`, "", false, false},
		{"column", `sql:"point_label"`, "point_label", false, false},
		{"column with options", `json:"x" sql:"x_col,omitempty"`, "x_col", false, false},
		{"skip", `sql:"-"`, "", true, false},
		{"empty name", `sql:""`, "", false, true},
		{"malformed", `sql:point_label`, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FieldInfo{Name: "Field", Tag: reflect.StructTag(tt.tag)}

			column, skip, err := f.ColumnTag()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.column, column)
			assert.Equal(t, tt.skip, skip)
		})
	}
}
