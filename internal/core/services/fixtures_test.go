package services

import (
	_ "embed"
	"errors"

	"github.com/custodia-labs/kgtool/internal/analysis/kmeans"
	"github.com/custodia-labs/kgtool/internal/analysis/tfidf"
	"github.com/custodia-labs/kgtool/internal/analysis/yake"
	"github.com/custodia-labs/kgtool/internal/chunker"
	"github.com/custodia-labs/kgtool/internal/core/domain"
)

//go:embed testdata/sample_spec.md
var sampleSpec string

const noHeadings = "Just a paragraph of prose.\nAnd another line without any heading marker.\n"

func newGraphService() *GraphService {
	return NewGraphService(chunker.New(), tfidf.New(), yake.New())
}

func newTopicService() *TopicService {
	return NewTopicService(chunker.New(), tfidf.New(), kmeans.New())
}

var errChunk = errors.New("chunk failed")

// failingChunker returns errChunk for every document.
type failingChunker struct{}

func (failingChunker) Name() string { return "failing" }

func (failingChunker) Chunk(string) ([]domain.Section, error) { return nil, errChunk }
