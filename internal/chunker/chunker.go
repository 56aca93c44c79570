// Package chunker splits markdown documents into heading-bounded sections.
package chunker

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

var (
	headingPattern = regexp.MustCompile(`^(#{1,6})[ \t]+(\S.*)$`)
	fencePattern   = regexp.MustCompile("^\\s*(```|~~~)")
)

// Chunker splits text on markdown headings. Every heading level splits
// equally; sections are flat and never nested.
type Chunker struct {
	skipFences bool
}

// Option configures the chunker.
type Option func(*Chunker)

// WithFencedCode controls whether heading-like lines inside fenced code
// blocks are ignored. Enabled by default.
func WithFencedCode(skip bool) Option {
	return func(c *Chunker) {
		c.skipFences = skip
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{skipFences: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the chunker name.
func (c *Chunker) Name() string {
	return "heading"
}

type heading struct {
	line  int
	level int
	title string
}

// Chunk returns one section per heading in document order. The body is the
// text between a heading and the next one, trimmed.
func (c *Chunker) Chunk(text string) ([]domain.Section, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	headings := c.findHeadings(lines)
	if len(headings) == 0 {
		return nil, domain.ErrNoSections
	}

	sections := make([]domain.Section, len(headings))
	for i, h := range headings {
		end := len(lines)
		if i+1 < len(headings) {
			end = headings[i+1].line
		}
		sections[i] = domain.Section{
			Index: i,
			Title: h.title,
			Body:  strings.TrimSpace(strings.Join(lines[h.line+1:end], "\n")),
			Level: h.level,
		}
	}
	return sections, nil
}

func (c *Chunker) findHeadings(lines []string) []heading {
	var headings []heading
	var fence string
	for i, line := range lines {
		if c.skipFences {
			if m := fencePattern.FindStringSubmatch(line); m != nil {
				switch {
				case fence == "":
					fence = m[1]
				case fence == m[1]:
					fence = ""
				}
				continue
			}
			if fence != "" {
				continue
			}
		}

		m := headingPattern.FindStringSubmatch(strings.TrimRight(line, " \t"))
		if m == nil {
			continue
		}
		headings = append(headings, heading{
			line:  i,
			level: len(m[1]),
			title: strings.TrimSpace(m[2]),
		})
	}
	return headings
}
