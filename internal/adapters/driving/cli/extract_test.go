package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/services"
)

// buildGraph runs the build command into dir and returns the graph path.
func buildGraph(t *testing.T, dir string, extra ...string) string {
	t.Helper()
	outDir := filepath.Join(dir, "out")
	args := append([]string{"build", "-i", writeDocument(t, dir), "-o", outDir}, extra...)
	_, err := execute(t, args...)
	require.NoError(t, err)
	return filepath.Join(outDir, GraphFileName)
}

func TestExtractCmd_Flags(t *testing.T) {
	tests := []struct {
		name     string
		defValue string
	}{
		{name: "topic", defValue: ""},
		{name: "graph", defValue: "output/graph.json"},
		{name: "output", defValue: "context.md"},
		{name: "include-neighbors", defValue: "true"},
		{name: "sqlite", defValue: ""},
		{name: "run", defValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := extractCmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestExtractCmd_RequiresTopic(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "extract")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "topic" not set`)
}

func TestExtractCmd_WritesContext(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()
	graphPath := buildGraph(t, dir, "--min-sim", "0.99")
	output := filepath.Join(dir, "frontend.md")

	out, err := execute(t, "extract", "--topic", "Frontend", "-g", graphPath, "-o", output)

	require.NoError(t, err)
	assert.Contains(t, out, "Topic context for 'Frontend' written to: "+output)
	assert.Contains(t, out, "Matched 2 nodes, selected 2")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Topic Context: Frontend")
	assert.Contains(t, string(data), "## [1] Frontend Components")
	assert.Contains(t, string(data), "## [2] Frontend Testing")
}

func TestExtractCmd_NoMatch(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()
	graphPath := buildGraph(t, dir)
	output := filepath.Join(dir, "none.md")

	out, err := execute(t, "extract", "--topic", "payments", "-g", graphPath, "-o", output)

	require.NoError(t, err)
	assert.Contains(t, out, "No nodes found for topic 'payments'")
	assert.NoFileExists(t, output)
}

func TestExtractCmd_NeighborsFlagOverridesSettings(t *testing.T) {
	settings := setupTestServices(t)
	require.NoError(t, settings.Set(services.KeyExtractNeighbors, "true"))
	dir := t.TempDir()
	// Every section pair linked so neighbour expansion reaches all nodes.
	graphPath := buildGraph(t, dir, "--min-sim", "0")
	output := filepath.Join(dir, "ctx.md")

	out, err := execute(t, "extract", "--topic", "database", "-g", graphPath, "-o", output, "--include-neighbors=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Matched 1 nodes, selected 1")

	out, err = execute(t, "extract", "--topic", "database", "-g", graphPath, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Matched 1 nodes, selected 5")
}

func TestExtractCmd_MissingGraph(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "extract", "--topic", "x", "-g", filepath.Join(t.TempDir(), "graph.json"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtractCmd_FromSQLite(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()
	dbDir := filepath.Join(dir, "db")
	buildGraph(t, dir, "--sqlite", dbDir, "--min-sim", "0.99")
	output := filepath.Join(dir, "ctx.md")

	out, err := execute(t, "extract", "--topic", "backend", "--sqlite", dbDir, "-o", output)

	require.NoError(t, err)
	assert.Contains(t, out, "Matched 2 nodes, selected 2")
	assert.FileExists(t, output)
}

func TestExtractCmd_NoService(t *testing.T) {
	SetServices(Services{})

	_, err := execute(t, "extract", "--topic", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context service not configured")
}
