package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui"
)

var (
	browseGraph  string
	browseSQLite string
	browseRun    string
)

// browseCmd represents the browse command.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse a knowledge graph in the terminal",
	Long: `Launch the interactive terminal browser for a built graph.

Controls:
  ↑/k, ↓/j  - Navigate nodes
  /         - Filter by topic tag
  n         - Toggle neighbour expansion
  Enter     - Open node / follow link
  Tab       - Next linked node
  Esc       - Back
  q         - Quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseGraph, "graph", "g", "output/"+GraphFileName, "graph JSON file")
	browseCmd.Flags().StringVar(&browseSQLite, "sqlite", "", "read the graph from the SQLite database in this directory")
	browseCmd.Flags().StringVar(&browseRun, "run", "", "graph run id to read with --sqlite (default latest)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if contextService == nil {
		return errors.New("context service not configured")
	}

	g, err := loadGraph(cmd.Context(), browseGraph, browseSQLite, browseRun)
	if err != nil {
		return err
	}

	ports := tui.NewPorts(contextService, settingsService, renderer)
	app, err := tui.NewApp(ports, g)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
