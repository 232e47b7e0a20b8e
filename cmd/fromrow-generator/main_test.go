package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fromrow-generator/internal/dbconn"
	"fromrow-generator/internal/mapping"
)

const (
	pointsPkg   = "fromrow-generator/examples/points"
	shapesPkg   = "fromrow-generator/examples/shapes"
	accountsPkg = "fromrow-generator/examples/accounts"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)

	return code, out.String(), errOut.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Commands:")

	code, stdout, _ := runCLI(t, "--help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "gen")

	code, _, stderr = runCLI(t, "generate")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "generate"`)

	code, _, _ = runCLI(t, "gen", "--no-such-flag")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI(t, "gen", "--help")
	assert.Equal(t, exitOK, code)
}

func TestGen_DryRun(t *testing.T) {
	code, stdout, stderr := runCLI(t, "gen", "--dry-run", "--pkg", pointsPkg)
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "point_fromrow.go ====")
	assert.Contains(t, stdout, "sample_fromrow.go ====")
	assert.Contains(t, stdout, "func (p *Point) FromRow(row fromrow.Row) error {")
	assert.Contains(t, stdout, `fromrow.OptionalNull(row, "point_label", fromrow.Value.OwnedText)`)
	assert.Contains(t, stdout, `{Name: "x", Field: "X", Required: true},`)
}

func TestGen_NoComments(t *testing.T) {
	code, stdout, stderr := runCLI(t, "gen", "--dry-run", "--no-comments", "--pkg", pointsPkg, "--type", "Point")
	require.Equal(t, exitOK, code, stderr)

	assert.NotContains(t, stdout, "// FromRow")
	assert.NotContains(t, stdout, "Sample")
}

func TestGen_WritesFiles(t *testing.T) {
	dir := t.TempDir()

	code, _, stderr := runCLI(t, "gen", "--pkg", pointsPkg, "--type", "points.Sample", "--out", dir)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "generated")

	content, err := os.ReadFile(filepath.Join(dir, "sample_fromrow.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "func (Sample) RowColumns() []fromrow.Column {")
}

func TestGen_Diagnostics(t *testing.T) {
	code, stdout, stderr := runCLI(t, "gen", "--dry-run", "--pkg", shapesPkg)
	assert.Equal(t, exitFail, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "FR001")
	assert.Contains(t, stderr, "FR003")
	assert.Contains(t, stderr, "nothing generated")
}

func TestGen_MissingConfig(t *testing.T) {
	code, _, stderr := runCLI(t, "gen", "--dry-run", "--pkg", pointsPkg, "--config", "no-such.yaml")
	assert.Equal(t, exitFail, code)
	assert.Contains(t, stderr, "schema file")
}

func TestAnalyze_Report(t *testing.T) {
	code, stdout, stderr := runCLI(t, "analyze", "--pkg", pointsPkg)
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "(naming=pascal) ===")
	assert.Contains(t, stdout, "SuperDescription")
	assert.Contains(t, stdout, "point_label")
	assert.Contains(t, stdout, `skipped Cache: sql:"-"`)
}

func TestAnalyze_Explain(t *testing.T) {
	code, _, stderr := runCLI(t, "analyze", "--explain", "--pkg", pointsPkg, "--type", "Point")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "FR100")
}

func TestAnalyze_Export(t *testing.T) {
	config := filepath.Join("..", "..", "examples", "accounts", mapping.DefaultFileName)

	code, stdout, stderr := runCLI(t, "analyze", "--pkg", accountsPkg, "--config", config, "--export", "-")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "visit_count")
	assert.Contains(t, stdout, "accounts.Ledger")

	path := filepath.Join(t.TempDir(), mapping.DefaultFileName)

	code, _, stderr = runCLI(t, "analyze", "--pkg", accountsPkg, "--config", config, "--export", path)
	require.Equal(t, exitOK, code, stderr)

	sf, err := mapping.LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, sf.Lookup("accounts.Account"))

	col, ok := sf.Lookup("accounts.Account").Column("Visits")
	assert.True(t, ok)
	assert.Equal(t, "visit_count", col)
}

func newSamplesDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "samples.db")

	db, err := dbconn.Open(context.Background(), dbconn.Config{Driver: "sqlite", DSN: path})
	require.NoError(t, err)

	defer db.Close()

	_, err = db.Exec(`
CREATE TABLE samples (x INTEGER NOT NULL, y INTEGER, name TEXT NOT NULL, description TEXT);
CREATE TABLE ratios (x REAL NOT NULL, name TEXT NOT NULL);
CREATE TABLE amounts (x DECIMAL(12,0) NOT NULL, name NUMERIC(10,2) NOT NULL);`)
	require.NoError(t, err)

	return path
}

func TestCheck(t *testing.T) {
	dsn := newSamplesDB(t)

	check := func(query string) (int, string, string) {
		return runCLI(t, "check", "--driver", "sqlite", "--dsn", dsn,
			"--pkg", pointsPkg, "--type", "points.Sample", "--query", query)
	}

	t.Run("ok", func(t *testing.T) {
		code, stdout, stderr := check("SELECT x, y, name, description FROM samples")
		require.Equal(t, exitOK, code, stderr)
		assert.Contains(t, stdout, "Sample: ok")
		assert.Contains(t, stdout, "identical")
	})

	t.Run("optional columns may be absent", func(t *testing.T) {
		code, stdout, stderr := check("SELECT x, name FROM samples")
		require.Equal(t, exitOK, code, stderr)
		assert.Contains(t, stdout, "absent")
	})

	t.Run("missing required column", func(t *testing.T) {
		code, stdout, stderr := check("SELECT x, description FROM samples")
		assert.Equal(t, exitFail, code)
		assert.Contains(t, stdout, "missing")
		assert.Contains(t, stderr, "missing required columns")
	})

	t.Run("decimal columns read as text", func(t *testing.T) {
		code, stdout, stderr := check("SELECT x, name FROM amounts")
		require.Equal(t, exitOK, code, stderr)
		assert.Contains(t, stdout, "convertible")
		assert.NotContains(t, stdout, "incompatible")
	})

	t.Run("incompatible column type", func(t *testing.T) {
		code, stdout, stderr := check("SELECT x, name FROM ratios")
		assert.Equal(t, exitFail, code)
		assert.Contains(t, stdout, "incompatible")
		assert.Contains(t, stderr, "cannot be narrowed")
	})
}

func TestCheck_Usage(t *testing.T) {
	code, _, stderr := runCLI(t, "check", "--pkg", pointsPkg, "--query", "SELECT 1")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "exactly one --type")
}
