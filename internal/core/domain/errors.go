package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrNoSections indicates the document has no headings to chunk on.
	ErrNoSections = errors.New("no headings found in document: add headings so there is something to chunk")

	// ErrTooFewSections indicates more topics were requested than sections exist.
	ErrTooFewSections = errors.New("too few sections for requested topic count")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidGraph indicates a graph violates its structural invariants.
	ErrInvalidGraph = errors.New("invalid graph")
)

// TooFewSectionsError reports a topic count that exceeds the section count.
type TooFewSectionsError struct {
	Requested int
	Available int
}

func (e *TooFewSectionsError) Error() string {
	return fmt.Sprintf("requested num_topics=%d but only %d sections were found: reduce num_topics or add more sections",
		e.Requested, e.Available)
}

// Unwrap lets errors.Is match ErrTooFewSections.
func (e *TooFewSectionsError) Unwrap() error {
	return ErrTooFewSections
}
