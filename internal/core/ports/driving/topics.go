package driving

import (
	"context"

	"github.com/custodia-labs/kgtool/internal/core/domain"
)

// TopicService discovers topics from a document.
type TopicService interface {
	// Discover clusters the document's sections into opts.NumTopics topics
	// named topic_0..topic_{k-1}.
	Discover(ctx context.Context, text string, opts domain.DiscoverOptions) (domain.TopicTerms, error)
}
