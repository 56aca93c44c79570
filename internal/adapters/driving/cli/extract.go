package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kgtool/internal/core/domain"
)

var (
	extractTopic     string
	extractGraph     string
	extractOutput    string
	extractNeighbors bool
	extractSQLite    string
	extractRun       string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the context for a topic",
	Long: `Selects every node whose tags contain the topic (case-insensitive),
optionally adds their direct neighbours, and writes the selected nodes as a
single markdown document.

The graph is read from --graph, or from the latest run in the SQLite
database when --sqlite is given.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractTopic, "topic", "t", "", "topic to extract")
	extractCmd.Flags().StringVarP(&extractGraph, "graph", "g", "output/"+GraphFileName, "graph JSON file")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "context.md", "context markdown output file")
	extractCmd.Flags().BoolVar(&extractNeighbors, "include-neighbors", true, "add direct neighbours of matching nodes")
	extractCmd.Flags().StringVar(&extractSQLite, "sqlite", "", "read the graph from the SQLite database in this directory")
	extractCmd.Flags().StringVar(&extractRun, "run", "", "graph run id to read with --sqlite (default latest)")
	_ = extractCmd.MarkFlagRequired("topic")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if contextService == nil {
		return errors.New("context service not configured")
	}

	settings, err := currentSettings()
	if err != nil {
		return err
	}
	opts := settings.ExtractOptions()
	if cmd.Flags().Changed("include-neighbors") {
		opts.IncludeNeighbors = extractNeighbors
	}

	g, err := loadGraph(cmd.Context(), extractGraph, extractSQLite, extractRun)
	if err != nil {
		return err
	}

	result, err := contextService.Extract(cmd.Context(), g, extractTopic, opts)
	if err != nil {
		return fmt.Errorf("context extraction failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if result.Empty() {
		fmt.Fprintf(out, "No nodes found for topic '%s'\n", extractTopic)
		return nil
	}

	if err := renderer.WriteContext(cmd.Context(), extractOutput, result); err != nil {
		return fmt.Errorf("writing context: %w", err)
	}

	fmt.Fprintln(out, styled(out, successStyle,
		fmt.Sprintf("Topic context for '%s' written to: %s", extractTopic, extractOutput)))
	fmt.Fprintf(out, "Matched %d nodes, selected %d\n", len(result.Matched), len(result.Selected))
	return nil
}

// loadGraph reads a graph from the JSON file, or from SQLite when dbDir is set.
func loadGraph(ctx context.Context, path, dbDir, runID string) (*domain.Graph, error) {
	if dbDir == "" {
		g, err := jsonfile.NewGraphStore(path).Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading graph: %w", err)
		}
		return g, nil
	}

	db, err := sqlite.NewStore(dbDir)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var g *domain.Graph
	if runID != "" {
		g, err = db.GraphStore().LoadRun(ctx, runID)
	} else {
		g, err = db.GraphStore().Load(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("loading graph from database: %w", err)
	}
	return g, nil
}
