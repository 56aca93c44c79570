package domain

// Document is a single input document held in memory for one pipeline run.
type Document struct {
	// URI is the original location (file path) if known.
	URI string

	// Content is the full markdown text.
	Content string
}

// Section is a document fragment bounded by one heading and the next.
// Index is assigned in document order and is the node identity used
// throughout the pipeline.
type Section struct {
	// Index is the zero-based position of the section in the document.
	Index int

	// Title is the heading text without its marker characters.
	Title string

	// Body is everything between this heading and the next, trimmed.
	Body string

	// Level is the heading depth (1-6). It does not affect segmentation.
	Level int
}

// Bodies returns the section bodies in section order.
func Bodies(sections []Section) []string {
	bodies := make([]string, len(sections))
	for i := range sections {
		bodies[i] = sections[i].Body
	}
	return bodies
}
