package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/render/markdown"
	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kgtool/internal/analysis/kmeans"
	"github.com/custodia-labs/kgtool/internal/analysis/tfidf"
	"github.com/custodia-labs/kgtool/internal/analysis/yake"
	"github.com/custodia-labs/kgtool/internal/chunker"
	"github.com/custodia-labs/kgtool/internal/core/services"
)

const testDocument = `# Platform

Overview of the platform and its services.

## Frontend Components

The frontend renders React components in the browser. React components fetch
data from the backend API and render the product catalog.

## Frontend Testing

Frontend React components are tested with Jest. Every React component has
rendering tests in the browser.

## Backend Services

The backend runs Go services behind an API gateway. Backend services store
orders in a PostgreSQL database.

## Backend Database

The backend database is PostgreSQL. Backend services run migrations against
the database before each release.
`

// setupTestServices wires the real pipeline with in-memory settings.
func setupTestServices(t *testing.T) *services.SettingsService {
	t.Helper()
	settings := services.NewSettingsService(memory.NewConfigStore())
	SetServices(Services{
		Topics:     services.NewTopicService(chunker.New(), tfidf.New(), kmeans.New()),
		Graph:      services.NewGraphService(chunker.New(), tfidf.New(), yake.New()),
		Context:    services.NewContextService(),
		Settings:   settings,
		Renderer:   markdown.New(),
		ConfigPath: ":memory:",
	})
	t.Cleanup(func() {
		SetServices(Services{})
	})
	return settings
}

// writeDocument writes testDocument into dir and returns its path.
func writeDocument(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "spec.md")
	require.NoError(t, os.WriteFile(path, []byte(testDocument), 0644))
	return path
}

// execute runs the root command with args and returns everything printed.
func execute(t *testing.T, args ...string) (string, error) {
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag of cmd and its children to its default,
// since cobra keeps parsed values between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
