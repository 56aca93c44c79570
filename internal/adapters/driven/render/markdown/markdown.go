// Package markdown renders graph nodes and topic contexts as markdown and
// writes them to disk.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
)

// Ensure Renderer implements the interfaces.
var (
	_ driven.NodeRenderer   = (*Renderer)(nil)
	_ driven.MarkdownWriter = (*Renderer)(nil)
)

// Renderer formats nodes and contexts and writes them as files.
type Renderer struct{}

// New creates a markdown renderer.
func New() *Renderer {
	return &Renderer{}
}

// NodeFileName returns the file name used for a node.
func NodeFileName(id int) string {
	return fmt.Sprintf("node_%d.md", id)
}

// RenderNode returns the markdown for one node. The body is written as-is
// with no trailing newline added.
func (r *Renderer) RenderNode(node domain.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", node.Title)
	writeMeta(&b, node)
	b.WriteString(node.Body)
	return b.String()
}

// RenderContext returns the topic context document: a header followed by
// every selected node in order.
func (r *Renderer) RenderContext(result *domain.ContextResult) string {
	var b strings.Builder
	topic := ""
	var nodes []domain.Node
	if result != nil {
		topic = result.Topic
		nodes = result.Selected
	}
	fmt.Fprintf(&b, "# Topic Context: %s\n\n", topic)
	fmt.Fprintf(&b, "Extracted %d nodes.\n\n", len(nodes))
	b.WriteString("---\n\n")
	for _, node := range nodes {
		fmt.Fprintf(&b, "## [%d] %s\n\n", node.ID, node.Title)
		writeMeta(&b, node)
		b.WriteString(node.Body)
		b.WriteString("\n\n")
	}
	return b.String()
}

func writeMeta(b *strings.Builder, node domain.Node) {
	fmt.Fprintf(b, "**Tags:** %s\n\n", strings.Join(node.Tags, ", "))
	fmt.Fprintf(b, "**Keywords:** %s\n\n", strings.Join(node.Keywords, ", "))
	fmt.Fprintf(b, "**Keyphrases:** %s\n\n", strings.Join(node.Keyphrases, ", "))
	b.WriteString("---\n\n")
}

// WriteNodes writes node_<id>.md for every node into dir, creating dir if
// needed, and returns the written paths in node order.
func (r *Renderer) WriteNodes(ctx context.Context, dir string, nodes []domain.Node) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating nodes directory: %w", err)
	}
	paths := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := filepath.Join(dir, NodeFileName(node.ID))
		if err := os.WriteFile(path, []byte(r.RenderNode(node)), 0644); err != nil {
			return paths, fmt.Errorf("writing node %d: %w", node.ID, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteContext writes the topic context document to path, creating the
// parent directory if needed.
func (r *Renderer) WriteContext(ctx context.Context, path string, result *domain.ContextResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(r.RenderContext(result)), 0644); err != nil {
		return fmt.Errorf("writing context: %w", err)
	}
	return nil
}
