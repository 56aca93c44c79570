package driven

import "github.com/custodia-labs/kgtool/internal/core/domain"

// Chunker splits document text into ordered sections.
type Chunker interface {
	// Name returns the chunker name for logging.
	Name() string

	// Chunk returns one section per heading in document order.
	// Returns domain.ErrNoSections if the text has no headings.
	Chunk(text string) ([]domain.Section, error)
}
