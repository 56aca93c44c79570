package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgtool/internal/core/domain"
)

func TestBrowseCmd_Exists(t *testing.T) {
	assert.Equal(t, "browse", browseCmd.Use)
	assert.Contains(t, browseCmd.Long, "Filter by topic tag")
}

func TestBrowseCmd_Flags(t *testing.T) {
	flag := browseCmd.Flags().Lookup("graph")
	require.NotNil(t, flag)
	assert.Equal(t, "g", flag.Shorthand)
	assert.Equal(t, "output/graph.json", flag.DefValue)
	assert.NotNil(t, browseCmd.Flags().Lookup("sqlite"))
	assert.NotNil(t, browseCmd.Flags().Lookup("run"))
}

func TestBrowseCmd_NoService(t *testing.T) {
	SetServices(Services{})

	_, err := execute(t, "browse")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context service not configured")
}

func TestBrowseCmd_MissingGraph(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "browse", "-g", filepath.Join(t.TempDir(), "graph.json"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
