// Package domain defines the core entities for kgtool.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Section: A heading-bounded fragment of the input document
//   - Vocabulary / SparseVector: The per-document vector space
//   - TopicTerms: Named topic descriptors (discovered or supplied)
//   - Graph / Node / Edge: The section similarity graph
//   - ContextResult: Nodes selected for a topic
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
