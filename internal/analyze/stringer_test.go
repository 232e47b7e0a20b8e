package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeStringer_TypeString(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(pointsPkg, shapesPkg)
	require.NoError(t, err)

	stringer := NewTypeStringer(pointsPkg)

	// Test struct type
	point := graph.GetType(TypeID{PkgPath: pointsPkg, Name: "Point"})
	require.NotNil(t, point)
	assert.Equal(t, "Point", stringer.TypeString(point))

	assert.Equal(t, "int32", stringer.TypeString(field(t, point, "X").Type))
	assert.Equal(t, "*int32", stringer.TypeString(field(t, point, "Y").Type))
	assert.Equal(t, "sql.Null[string]", stringer.TypeString(field(t, point, "Label").Type))

	sample := graph.GetType(TypeID{PkgPath: pointsPkg, Name: "Sample"})
	require.NotNil(t, sample)
	assert.Equal(t, "map[string]int", stringer.TypeString(field(t, sample, "Cache").Type))

	// types of other loaded packages are qualified by package name
	score := graph.GetType(TypeID{PkgPath: shapesPkg, Name: "Score"})
	require.NotNil(t, score)
	assert.Equal(t, "shapes.Score", stringer.TypeString(score))
	assert.Equal(t, "Score", NewTypeStringer(shapesPkg).TypeString(score))

	bag := graph.GetType(TypeID{PkgPath: shapesPkg, Name: "Bag"})
	require.NotNil(t, bag)
	assert.Equal(t, "[]int", stringer.TypeString(field(t, bag, "Tags").Type))
	assert.Equal(t, "time.Time", NewTypeStringer(shapesPkg).TypeString(
		field(t, graph.GetType(TypeID{PkgPath: shapesPkg, Name: "Base"}), "CreatedAt").Type))
}

func TestTypeStringer_NilType(t *testing.T) {
	stringer := NewTypeStringer("")
	assert.Equal(t, "<nil>", stringer.TypeString(nil))
}
