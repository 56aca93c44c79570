package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kgtool/internal/core/domain"
)

func TestBuildCmd_Flags(t *testing.T) {
	tests := []struct {
		name     string
		defValue string
	}{
		{name: "input", defValue: ""},
		{name: "output", defValue: "output"},
		{name: "min-sim", defValue: "0.3"},
		{name: "top-keywords", defValue: "5"},
		{name: "top-keyphrases", defValue: "5"},
		{name: "topics", defValue: ""},
		{name: "sqlite", defValue: ""},
		{name: "watch", defValue: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := buildCmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestBuildCmd_RequiresInput(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "build")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "input" not set`)
}

func TestBuildCmd_NoService(t *testing.T) {
	SetServices(Services{})

	_, err := execute(t, "build", "-i", writeDocument(t, t.TempDir()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph service not configured")
}

func TestBuildCmd_WritesGraphAndNodes(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "build", "-i", writeDocument(t, dir), "-o", outDir)

	require.NoError(t, err)
	graphPath := filepath.Join(outDir, GraphFileName)
	assert.Contains(t, out, "Graph saved: "+graphPath)
	assert.Contains(t, out, "Nodes: 5, Edges: ")
	assert.Contains(t, out, "Markdown nodes written to: "+filepath.Join(outDir, NodesDirName))

	g, err := jsonfile.NewGraphStore(graphPath).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 5, g.NodeCount())
	for _, n := range g.Nodes {
		assert.LessOrEqual(t, len(n.Keywords), domain.DefaultTopKeywords)
		assert.FileExists(t, filepath.Join(outDir, NodesDirName, "node_"+itoa(n.ID)+".md"))
	}
}

func TestBuildCmd_MinSimOverride(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "build", "-i", writeDocument(t, dir), "-o", outDir, "--min-sim", "0.99")

	require.NoError(t, err)
	assert.Contains(t, out, "Nodes: 5, Edges: 0")
}

func TestBuildCmd_WithTopics(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()
	topicsPath := filepath.Join(dir, "topics.json")
	require.NoError(t, os.WriteFile(topicsPath, []byte(`{
  "frontend": ["react", "frontend", "components"],
  "backend": ["backend", "database", "postgresql"]
}`), 0644))
	outDir := filepath.Join(dir, "out")

	_, err := execute(t, "build", "-i", writeDocument(t, dir), "-o", outDir, "--topics", topicsPath)

	require.NoError(t, err)
	g, err := jsonfile.NewGraphStore(filepath.Join(outDir, GraphFileName)).Load(t.Context())
	require.NoError(t, err)
	node, ok := g.Node(1)
	require.True(t, ok)
	assert.Equal(t, "Frontend Components", node.Title)
	assert.Contains(t, node.Tags, "frontend")
}

func TestBuildCmd_MissingTopicsFile(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()

	_, err := execute(t, "build", "-i", writeDocument(t, dir), "-o", dir, "--topics", filepath.Join(dir, "none.json"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuildCmd_NoHeadings(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "plain.md")
	require.NoError(t, os.WriteFile(input, []byte("just prose\n"), 0644))
	outDir := filepath.Join(dir, "out")
	dbDir := filepath.Join(dir, "db")

	_, err := execute(t, "build", "-i", input, "-o", outDir, "--sqlite", dbDir)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoSections)
	assert.NoDirExists(t, outDir, "nothing written on failure")
	assert.NoDirExists(t, dbDir, "no database created on failure")
}

func TestBuildCmd_StoresRunInSQLite(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()
	dbDir := filepath.Join(dir, "db")

	out, err := execute(t, "build", "-i", writeDocument(t, dir), "-o", filepath.Join(dir, "out"), "--sqlite", dbDir)

	require.NoError(t, err)
	assert.Contains(t, out, "Stored run ")

	db, err := sqlite.NewStore(dbDir)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.GraphStore().Runs(t.Context())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 5, runs[0].Nodes)
}
