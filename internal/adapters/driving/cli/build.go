package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/watch"
	"github.com/custodia-labs/kgtool/internal/core/domain"
)

// GraphFileName is the graph file written into the build output directory.
const GraphFileName = "graph.json"

// NodesDirName is the per-node markdown directory inside the output directory.
const NodesDirName = "nodes"

var (
	buildInput         string
	buildOutput        string
	buildMinSim        float64
	buildTopKeywords   int
	buildTopKeyphrases int
	buildTopics        string
	buildSQLite        string
	buildWatch         bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a knowledge graph from a document",
	Long: `Splits the document into heading sections, extracts keywords and
keyphrases, tags each section with a topic, and links sections whose
TF-IDF vectors are similar.

Writes <output>/graph.json (node-link JSON) and one markdown file per node
into <output>/nodes/. With --watch the graph is rebuilt whenever the input
file changes.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "", "markdown document to analyse")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "output", "output directory")
	buildCmd.Flags().Float64Var(&buildMinSim, "min-sim", domain.DefaultMinSimilarity, "minimum cosine similarity for an edge")
	buildCmd.Flags().IntVar(&buildTopKeywords, "top-keywords", domain.DefaultTopKeywords, "keywords per node")
	buildCmd.Flags().IntVar(&buildTopKeyphrases, "top-keyphrases", domain.DefaultTopKeyphrases, "keyphrases per node")
	buildCmd.Flags().StringVar(&buildTopics, "topics", "", "topic terms JSON file used for tagging")
	buildCmd.Flags().StringVar(&buildSQLite, "sqlite", "", "also store the graph in the SQLite database in this directory")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "rebuild when the input file changes")
	_ = buildCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if graphService == nil {
		return errors.New("graph service not configured")
	}

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	var db *runStore
	if buildSQLite != "" {
		db = &runStore{dir: buildSQLite}
		defer db.Close()
	}

	out := cmd.OutOrStdout()
	rebuild := func(ctx context.Context) error {
		return buildOnce(ctx, out, opts, db)
	}

	if err := rebuild(cmd.Context()); err != nil {
		return err
	}
	if !buildWatch {
		return nil
	}

	fmt.Fprintln(out, styled(out, mutedStyle, fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", buildInput)))
	return watch.New(buildInput, rebuild).Run(cmd.Context())
}

// buildOptions merges configured defaults, explicit flags and the topic file.
func buildOptions(cmd *cobra.Command) (domain.BuildOptions, error) {
	settings, err := currentSettings()
	if err != nil {
		return domain.BuildOptions{}, err
	}
	opts := settings.BuildOptions()

	flags := cmd.Flags()
	if flags.Changed("min-sim") {
		opts.MinSimilarity = buildMinSim
	}
	if flags.Changed("top-keywords") {
		opts.TopKeywords = buildTopKeywords
	}
	if flags.Changed("top-keyphrases") {
		opts.TopKeyphrases = buildTopKeyphrases
	}

	if buildTopics != "" {
		topics, err := jsonfile.NewTopicStore(buildTopics).Load(cmd.Context())
		if err != nil {
			return domain.BuildOptions{}, fmt.Errorf("loading topics: %w", err)
		}
		opts.Topics = topics
	}
	return opts, nil
}

// buildOnce reads the input, builds the graph and writes every output.
func buildOnce(ctx context.Context, out io.Writer, opts domain.BuildOptions, db *runStore) error {
	text, err := os.ReadFile(buildInput)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	g, err := graphService.Build(ctx, string(text), opts)
	if err != nil {
		return fmt.Errorf("graph build failed: %w", err)
	}

	store := jsonfile.NewGraphStore(filepath.Join(buildOutput, GraphFileName))
	if err := store.Save(ctx, g); err != nil {
		return fmt.Errorf("saving graph: %w", err)
	}

	nodesDir := filepath.Join(buildOutput, NodesDirName)
	if _, err := renderer.WriteNodes(ctx, nodesDir, g.Nodes); err != nil {
		return fmt.Errorf("writing markdown nodes: %w", err)
	}

	fmt.Fprintln(out, styled(out, successStyle, "Graph saved: "+store.Path()))
	fmt.Fprintf(out, "Nodes: %d, Edges: %d\n", g.NodeCount(), g.EdgeCount())
	fmt.Fprintf(out, "Markdown nodes written to: %s%c\n", nodesDir, filepath.Separator)

	if db != nil {
		runID, err := db.SaveRun(ctx, g)
		if err != nil {
			return fmt.Errorf("saving graph to database: %w", err)
		}
		fmt.Fprintf(out, "Stored run %s in %s\n", runID, db.Path())
	}
	return nil
}

// runStore opens the SQLite database on the first saved run, so a build
// that fails before producing a graph leaves no database behind.
type runStore struct {
	dir string
	db  *sqlite.Store
}

// SaveRun stores g as a new run, opening the database if needed.
func (r *runStore) SaveRun(ctx context.Context, g *domain.Graph) (string, error) {
	if r.db == nil {
		db, err := sqlite.NewStore(r.dir)
		if err != nil {
			return "", err
		}
		r.db = db
	}
	return r.db.GraphStore().SaveRun(ctx, g)
}

// Path returns the database path, or the directory before it is opened.
func (r *runStore) Path() string {
	if r.db == nil {
		return r.dir
	}
	return r.db.Path()
}

// Close closes the database if it was opened.
func (r *runStore) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
