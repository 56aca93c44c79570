package cli

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/services"
	"github.com/custodia-labs/kgtool/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "kgtool", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{
		"discover-topics", "build", "extract", "settings",
		"mcp", "browse", "stats", "runs", "version",
	} {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestRootCmd_VerboseEnablesLogger(t *testing.T) {
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	defer func() {
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
	}()

	_, err := execute(t, "--verbose", "version")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestSetVersion(t *testing.T) {
	original := version
	defer SetVersion(original)

	SetVersion("1.2.3")

	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "1.2.3", rootCmd.Version)
}

func TestSetServices_KeepsRendererWhenNil(t *testing.T) {
	before := renderer
	defer SetServices(Services{})

	SetServices(Services{})

	assert.Equal(t, before, renderer)
	assert.Nil(t, graphService)
}

func TestCurrentSettings(t *testing.T) {
	SetServices(Services{})
	got, err := currentSettings()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), got)

	settings := setupTestServices(t)
	require.NoError(t, settings.Set(services.KeyBuildTopKeywords, "9"))

	got, err = currentSettings()
	require.NoError(t, err)
	assert.Equal(t, 9, got.Build.TopKeywords)
}

func TestExecute(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	err := Execute(context.Background())

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "kgtool version")
}
