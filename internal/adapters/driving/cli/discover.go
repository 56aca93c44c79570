package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kgtool/internal/core/domain"
)

var (
	discoverInput         string
	discoverOutput        string
	discoverNumTopics     int
	discoverTermsPerTopic int
	discoverSQLite        string
)

var discoverCmd = &cobra.Command{
	Use:   "discover-topics",
	Short: "Discover topics in a document",
	Long: `Clusters the document's sections into topics and writes the most
representative terms of each topic to a JSON file.

Topics are named topic_0, topic_1, ... Rename them to meaningful names
before passing the file to 'kgtool build --topics'.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVarP(&discoverInput, "input", "i", "", "markdown document to analyse")
	discoverCmd.Flags().StringVarP(&discoverOutput, "output", "o", "topic_terms.json", "topic terms output file")
	discoverCmd.Flags().IntVarP(&discoverNumTopics, "num-topics", "k", domain.DefaultNumTopics, "number of topics to discover")
	discoverCmd.Flags().IntVar(&discoverTermsPerTopic, "terms-per-topic", domain.DefaultTermsPerTopic, "representative terms per topic")
	discoverCmd.Flags().StringVar(&discoverSQLite, "sqlite", "", "also store the topics in the SQLite database in this directory")
	_ = discoverCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	if topicService == nil {
		return errors.New("topic service not configured")
	}

	settings, err := currentSettings()
	if err != nil {
		return err
	}
	opts := settings.DiscoverOptions()
	if cmd.Flags().Changed("num-topics") {
		opts.NumTopics = discoverNumTopics
	}
	if cmd.Flags().Changed("terms-per-topic") {
		opts.TermsPerTopic = discoverTermsPerTopic
	}

	text, err := os.ReadFile(discoverInput)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	topics, err := topicService.Discover(cmd.Context(), string(text), opts)
	if err != nil {
		return fmt.Errorf("topic discovery failed: %w", err)
	}

	store := jsonfile.NewTopicStore(discoverOutput)
	if err := store.Save(cmd.Context(), topics); err != nil {
		return fmt.Errorf("saving topics: %w", err)
	}

	if discoverSQLite != "" {
		db, err := sqlite.NewStore(discoverSQLite)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.TopicStore().Save(cmd.Context(), topics); err != nil {
			return fmt.Errorf("saving topics to database: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styled(out, successStyle, "Topic discovery complete: "+store.Path()))
	for _, t := range topics {
		fmt.Fprintf(out, "  %s: %s\n", styled(out, labelStyle, t.Name), joinTerms(t.Terms, 5))
	}
	fmt.Fprintln(out, "Edit the topic names manually (e.g., topic_0 -> 'frontend').")
	fmt.Fprintf(out, "Then pass this file to 'kgtool build --topics %s'.\n", discoverOutput)
	return nil
}

// joinTerms lists up to limit terms, comma separated.
func joinTerms(terms []string, limit int) string {
	if len(terms) > limit {
		return strings.Join(terms[:limit], ", ") + ", ..."
	}
	return strings.Join(terms, ", ")
}
