package driven

// KeyphraseExtractor derives representative phrases from a single text.
type KeyphraseExtractor interface {
	// Extract returns up to k phrases ordered by descending quality.
	// It never fails; short text may yield fewer phrases or none.
	Extract(text string, k int) []string
}
