// Package cli provides the cobra command tree for kgtool.
// It is a driving adapter: commands parse flags, call the core services
// through driving ports, and persist results through driven adapters.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/render/markdown"
	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
	"github.com/custodia-labs/kgtool/internal/core/ports/driving"
	"github.com/custodia-labs/kgtool/internal/logger"
)

// Renderer formats nodes as markdown and writes them to disk.
type Renderer interface {
	driven.NodeRenderer
	driven.MarkdownWriter
}

// Services holds everything the commands call into.
type Services struct {
	Topics   driving.TopicService
	Graph    driving.GraphService
	Context  driving.ContextService
	Settings driving.SettingsService
	Renderer Renderer

	// ConfigPath is shown by the settings commands.
	ConfigPath string
}

var (
	topicService    driving.TopicService
	graphService    driving.GraphService
	contextService  driving.ContextService
	settingsService driving.SettingsService
	renderer        Renderer = markdown.New()
	configPath      string
)

var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "kgtool",
	Short: "Build knowledge graphs from structured markdown documents",
	Long: `kgtool splits a markdown document into heading sections, discovers
topics across them, and links related sections into a knowledge graph.

Typical workflow:
  kgtool discover-topics --input spec.md
  (rename topic_0.. in topic_terms.json to meaningful names)
  kgtool build --input spec.md --topics topic_terms.json
  kgtool extract --topic backend`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline progress to stderr")
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("kgtool {{.Version}}\n")
}

// SetServices installs the services used by every command.
func SetServices(s Services) {
	topicService = s.Topics
	graphService = s.Graph
	contextService = s.Context
	settingsService = s.Settings
	if s.Renderer != nil {
		renderer = s.Renderer
	}
	configPath = s.ConfigPath
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// currentSettings returns the configured defaults, or the built-in ones.
func currentSettings() (domain.AppSettings, error) {
	if settingsService == nil {
		return domain.DefaultAppSettings(), nil
	}
	s, err := settingsService.Get()
	if err != nil {
		return domain.AppSettings{}, fmt.Errorf("loading settings: %w", err)
	}
	return *s, nil
}
