package plan

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fromrow-generator/internal/mapping"
)

func TestExportSchema(t *testing.T) {
	graph := loadGraph(t, pointsPkg)

	p, err := Resolve(graph, nil)
	require.NoError(t, err)

	sf := ExportSchema(p)
	require.Len(t, sf.Types, 2, spew.Sdump(sf))

	assert.Equal(t, mapping.CurrentVersion, sf.Version)

	point := sf.Types[0]
	assert.Equal(t, "points.Point", point.Type)
	assert.Equal(t, "pascal", point.Naming)
	assert.Equal(t, map[string]string{
		"super_description": "SuperDescription",
		"Label":             "point_label",
	}, point.Columns)
	assert.Empty(t, point.Ignore)

	sample := sf.Types[1]
	assert.Equal(t, "points.Sample", sample.Type)
	assert.Equal(t, mapping.StringOrArray{"Cache"}, sample.Ignore)

	// a pinned schema reproduces the plan
	data, err := ExportSchemaYAML(p)
	require.NoError(t, err)

	pinned, err := mapping.Parse(data)
	require.NoError(t, err)

	again, err := Resolve(graph, pinned)
	require.NoError(t, err)
	require.True(t, again.Diagnostics.IsValid(), spew.Sdump(again.Diagnostics))

	for i := range p.Records {
		assert.Equal(t, p.Records[i].Columns(), again.Records[i].Columns())
	}
}

func TestFormatReport(t *testing.T) {
	p, err := Resolve(loadGraph(t, pointsPkg), nil)
	require.NoError(t, err)

	report := GenerateReport(p)
	require.Len(t, report.Records, 2)
	assert.Equal(t, "pascal", report.Records[0].Naming)
	assert.Len(t, report.Records[0].Fields, 6)

	text := FormatReport(report)
	assert.Contains(t, text, "=== fromrow-generator/examples/points.Point (naming=pascal) ===")
	assert.Contains(t, text, "FIELD")
	assert.Contains(t, text, "SuperDescription")
	assert.Contains(t, text, "OwnedText")
	assert.Contains(t, text, "skipped Cache: sql:\"-\"")
}
