package jsonfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
)

// Ensure the stores implement the interfaces.
var (
	_ driven.GraphStore = (*GraphStore)(nil)
	_ driven.TopicStore = (*TopicStore)(nil)
)

// GraphStore reads and writes a node-link graph.json file.
type GraphStore struct {
	path string
}

// NewGraphStore creates a store backed by the file at path.
func NewGraphStore(path string) *GraphStore {
	return &GraphStore{path: path}
}

// Path returns the backing file path.
func (s *GraphStore) Path() string {
	return s.path
}

// Save writes g, replacing the file atomically.
func (s *GraphStore) Save(ctx context.Context, g *domain.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := EncodeGraph(&buf, g); err != nil {
		return err
	}
	return writeFileAtomic(s.path, buf.Bytes())
}

// Load reads the graph file. A missing file is domain.ErrNotFound.
func (s *GraphStore) Load(ctx context.Context) (*domain.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := DecodeGraph(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return g, nil
}

// TopicStore reads and writes a topic_terms.json file.
type TopicStore struct {
	path string
}

// NewTopicStore creates a store backed by the file at path.
func NewTopicStore(path string) *TopicStore {
	return &TopicStore{path: path}
}

// Path returns the backing file path.
func (s *TopicStore) Path() string {
	return s.path
}

// Save writes topics in order, replacing the file atomically.
func (s *TopicStore) Save(ctx context.Context, topics domain.TopicTerms) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := EncodeTopics(&buf, topics); err != nil {
		return err
	}
	return writeFileAtomic(s.path, buf.Bytes())
}

// Load reads the topic file. A missing file is domain.ErrNotFound.
func (s *TopicStore) Load(ctx context.Context) (domain.TopicTerms, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	topics, err := DecodeTopics(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return topics, nil
}

func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	}
	return f, err
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it over path, creating parent directories as needed.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
