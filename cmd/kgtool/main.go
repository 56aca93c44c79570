// Command kgtool builds topic-tagged knowledge graphs from markdown documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kgtool/internal/adapters/driven/render/markdown"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/cli"
	"github.com/custodia-labs/kgtool/internal/analysis/kmeans"
	"github.com/custodia-labs/kgtool/internal/analysis/tfidf"
	"github.com/custodia-labs/kgtool/internal/analysis/yake"
	"github.com/custodia-labs/kgtool/internal/chunker"
	"github.com/custodia-labs/kgtool/internal/core/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// cobra reports command errors itself.
	if err := run(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: opening config:", err)
		return err
	}

	cli.SetServices(cli.Services{
		Topics:     services.NewTopicService(chunker.New(), tfidf.New(), kmeans.New()),
		Graph:      services.NewGraphService(chunker.New(), tfidf.New(), yake.New()),
		Context:    services.NewContextService(),
		Settings:   services.NewSettingsService(configStore),
		Renderer:   markdown.New(),
		ConfigPath: configStore.Path(),
	})
	cli.SetVersion(version)

	return cli.Execute(ctx)
}
