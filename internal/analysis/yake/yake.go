// Package yake implements YAKE, an unsupervised statistical keyphrase
// extractor. Terms are scored from their casing, position, frequency,
// relatedness to context and spread across sentences. Candidate phrases of
// up to three words are scored from their terms; a lower score is better.
// No external corpus or training data is required.
package yake

import (
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/kgtool/internal/analysis/fuzzy"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.KeyphraseExtractor = (*Extractor)(nil)

// Defaults match the reference YAKE configuration.
const (
	DefaultMaxNgram   = 3
	DefaultWindow     = 1
	DefaultDedupLimit = 0.9
)

// Extractor scores keyphrases in a single text.
type Extractor struct {
	maxNgram   int
	window     int
	dedupLimit float64
}

// Option configures the extractor.
type Option func(*Extractor)

// WithMaxNgram sets the longest candidate phrase in words.
func WithMaxNgram(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxNgram = n
		}
	}
}

// WithWindow sets the co-occurrence window in words.
func WithWindow(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.window = n
		}
	}
}

// WithDedupLimit sets the similarity (0-1) above which a candidate is
// dropped as a near duplicate of a better one.
func WithDedupLimit(limit float64) Option {
	return func(e *Extractor) {
		if limit > 0 && limit <= 1 {
			e.dedupLimit = limit
		}
	}
}

// New creates an extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		maxNgram:   DefaultMaxNgram,
		window:     DefaultWindow,
		dedupLimit: DefaultDedupLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns up to k keyphrases, best first. Equal scores keep the
// phrase that occurs first in the text.
func (e *Extractor) Extract(text string, k int) []string {
	if k <= 0 {
		return nil
	}
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	doc := e.analyse(sentences)
	if len(doc.candidates) == 0 {
		return nil
	}
	doc.scoreTerms(len(sentences))

	cands := make([]*candidate, 0, len(doc.candidates))
	for _, c := range doc.candidates {
		c.score = doc.scoreCandidate(c)
		cands = append(cands, c)
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score < cands[j].score
		}
		return cands[i].firstPos < cands[j].firstPos
	})

	out := make([]string, 0, k)
	for _, c := range cands {
		if e.isDuplicate(c.key, out) {
			continue
		}
		out = append(out, c.key)
		if len(out) == k {
			break
		}
	}
	return out
}

func (e *Extractor) isDuplicate(key string, selected []string) bool {
	for _, s := range selected {
		if fuzzy.Ratio(key, s)/fuzzy.MaxScore > e.dedupLimit {
			return true
		}
	}
	return false
}

// term holds the statistics of one normalised word.
type term struct {
	id        int
	tf        float64
	tfAcronym float64
	tfProper  float64
	stopword  bool
	sentences map[int]struct{}
	left      map[int]float64
	right     map[int]float64
	score     float64
}

// candidate is a phrase of up to maxNgram consecutive words.
type candidate struct {
	key      string
	terms    []*term
	tf       float64
	firstPos int
	score    float64
}

type document struct {
	terms      map[string]*term
	byID       []*term
	candidates map[string]*candidate
}

func (e *Extractor) analyse(sentences [][]token) *document {
	doc := &document{
		terms:      make(map[string]*term),
		candidates: make(map[string]*candidate),
	}

	pos := 0
	for sid, sentence := range sentences {
		var block []blockWord
		wordIdx := 0
		for _, tok := range sentence {
			if tok.punct {
				block = nil
				continue
			}
			tag := tagWord(tok.text, wordIdx)
			wordIdx++
			t := doc.term(tok.text)
			t.tf++
			switch tag {
			case tagAcronym:
				t.tfAcronym++
			case tagProper:
				t.tfProper++
			}
			t.sentences[sid] = struct{}{}

			if tag != tagUnusual && tag != tagDigit {
				start := len(block) - e.window
				if start < 0 {
					start = 0
				}
				for _, prev := range block[start:] {
					if prev.tag == tagUnusual || prev.tag == tagDigit {
						continue
					}
					prev.term.right[t.id]++
					t.left[prev.term.id]++
				}
			}

			block = append(block, blockWord{text: strings.ToLower(tok.text), tag: tag, term: t, pos: pos})
			pos++
			e.addCandidates(doc, block)
		}
	}
	return doc
}

// addCandidates registers every phrase ending at the last word of block.
func (e *Extractor) addCandidates(doc *document, block []blockWord) {
	last := len(block) - 1
	for n := 1; n <= e.maxNgram && n <= len(block); n++ {
		words := block[last-n+1:]
		if words[0].term.stopword || words[n-1].term.stopword {
			continue
		}
		valid := true
		parts := make([]string, n)
		terms := make([]*term, n)
		for i, w := range words {
			if w.tag == tagUnusual || w.tag == tagDigit {
				valid = false
				break
			}
			parts[i] = w.text
			terms[i] = w.term
		}
		if !valid {
			continue
		}
		key := strings.Join(parts, " ")
		if len([]rune(key)) < 3 {
			continue
		}
		c, ok := doc.candidates[key]
		if !ok {
			c = &candidate{key: key, terms: terms, firstPos: words[0].pos}
			doc.candidates[key] = c
		}
		c.tf++
	}
}

type blockWord struct {
	text string
	tag  wordTag
	term *term
	pos  int
}

func (d *document) term(word string) *term {
	key := strings.ToLower(word)
	if r := []rune(key); len(r) > 3 && strings.HasSuffix(key, "s") {
		key = string(r[:len(r)-1])
	}
	if t, ok := d.terms[key]; ok {
		return t
	}
	t := &term{
		id:        len(d.byID),
		stopword:  isStopword(strings.ToLower(word), key),
		sentences: make(map[int]struct{}),
		left:      make(map[int]float64),
		right:     make(map[int]float64),
	}
	d.terms[key] = t
	d.byID = append(d.byID, t)
	return t
}

// scoreTerms computes each term's weight. Lower means more important.
func (d *document) scoreTerms(numSentences int) {
	var validTF []float64
	maxTF := 0.0
	for _, t := range d.byID {
		if !t.stopword {
			validTF = append(validTF, t.tf)
		}
		maxTF = math.Max(maxTF, t.tf)
	}
	avgTF, stdTF := meanStd(validTF)

	for _, t := range d.byID {
		relLeft := spread(t.left)
		relRight := spread(t.right)
		rel := (0.5 + relLeft*(t.tf/maxTF)) + (0.5 + relRight*(t.tf/maxTF))

		freq := 0.0
		if avgTF+stdTF > 0 {
			freq = t.tf / (avgTF + stdTF)
		}
		spreadS := float64(len(t.sentences)) / float64(numSentences)
		casing := math.Max(t.tfAcronym, t.tfProper) / (1 + math.Log(t.tf))
		position := math.Log(math.Log(3 + median(t.sentences)))

		t.score = (position * rel) / (casing + freq/rel + spreadS/rel)
	}
}

// spread is the number of distinct neighbours over total co-occurrences.
func spread(neighbours map[int]float64) float64 {
	if len(neighbours) == 0 {
		return 0
	}
	var total float64
	for _, c := range neighbours {
		total += c
	}
	return float64(len(neighbours)) / total
}

// scoreCandidate combines term scores. Inner stopwords are weighted by how
// strongly they bind their neighbours.
func (d *document) scoreCandidate(c *candidate) float64 {
	sum, prod := 0.0, 1.0
	for i, t := range c.terms {
		if !t.stopword {
			sum += t.score
			prod *= t.score
			continue
		}
		probPrev, probNext := 0.0, 0.0
		if i > 0 {
			prev := c.terms[i-1]
			probPrev = prev.right[t.id] / prev.tf
		}
		if i < len(c.terms)-1 {
			next := c.terms[i+1]
			probNext = t.right[next.id] / next.tf
		}
		prob := probPrev * probNext
		prod *= 1 + (1 - prob)
		sum -= 1 - prob
	}
	return prod / ((sum + 1) * c.tf)
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

func median(set map[int]struct{}) float64 {
	vals := make([]int, 0, len(set))
	for v := range set {
		vals = append(vals, v)
	}
	sort.Ints(vals)
	n := len(vals)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return float64(vals[n/2])
	}
	return float64(vals[n/2-1]+vals[n/2]) / 2
}
