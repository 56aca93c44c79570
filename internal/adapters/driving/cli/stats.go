package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgtool/internal/core/domain"
)

var (
	statsGraph  string
	statsSQLite string
	statsRun    string
	statsJSON   bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise a knowledge graph",
	Long: `Prints node and edge counts, average degree, the topic distribution,
connectivity figures and sample nodes for each topic.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsGraph, "graph", "g", "output/"+GraphFileName, "graph JSON file")
	statsCmd.Flags().StringVar(&statsSQLite, "sqlite", "", "read the graph from the SQLite database in this directory")
	statsCmd.Flags().StringVar(&statsRun, "run", "", "graph run id to read with --sqlite (default latest)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	g, err := loadGraph(cmd.Context(), statsGraph, statsSQLite, statsRun)
	if err != nil {
		return err
	}

	stats := g.Stats()
	out := cmd.OutOrStdout()
	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	outputStats(out, g, stats)
	return nil
}

const barWidth = 40

func outputStats(out io.Writer, g *domain.Graph, s domain.GraphStats) {
	rule := strings.Repeat("─", 60)

	fmt.Fprintln(out, styled(out, labelStyle, "Graph Statistics"))
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Total Nodes:  %3d\n", s.Nodes)
	fmt.Fprintf(out, "Total Edges:  %3d\n", s.Edges)
	fmt.Fprintf(out, "Avg Degree:   %.2f\n", s.AvgDegree)
	fmt.Fprintln(out)

	if len(s.Topics) > 0 {
		fmt.Fprintln(out, styled(out, labelStyle, "Topic Distribution"))
		fmt.Fprintln(out, rule)
		top := s.Topics[0].Nodes
		for _, t := range s.Topics {
			bar := strings.Repeat("█", t.Nodes*barWidth/top)
			fmt.Fprintf(out, "%-20s │ %s %2d nodes\n", t.Tag, bar, t.Nodes)
		}
		fmt.Fprintln(out)
	}

	if s.Nodes > 0 {
		fmt.Fprintln(out, styled(out, labelStyle, "Node Connectivity"))
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "Isolated nodes:  %3d (%.1f%%)\n", s.Isolated, float64(s.Isolated)*100/float64(s.Nodes))
		fmt.Fprintf(out, "Max connections: %3d\n", s.MaxDegree)
		fmt.Fprintln(out)
	}

	samples := sampleNodes(g, 3)
	if len(samples) == 0 {
		return
	}
	fmt.Fprintln(out, styled(out, labelStyle, "Sample Nodes by Topic"))
	fmt.Fprintln(out, rule)
	for _, t := range s.Topics {
		fmt.Fprintf(out, "\n%s:\n", strings.ToUpper(t.Tag))
		for _, n := range samples[t.Tag] {
			fmt.Fprintf(out, "  • %s\n", truncate(n.Title, 60))
			if len(n.Keywords) > 0 {
				fmt.Fprintf(out, "    Keywords: %s\n", joinTerms(n.Keywords, 3))
			}
		}
	}
}

// sampleNodes returns up to limit nodes per tag in node order.
func sampleNodes(g *domain.Graph, limit int) map[string][]domain.Node {
	out := make(map[string][]domain.Node)
	for _, n := range g.Nodes {
		for _, tag := range n.Tags {
			if len(out[tag]) < limit {
				out[tag] = append(out[tag], n)
			}
		}
	}
	return out
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
