// Package mcp provides an MCP (Model Context Protocol) server adapter for kgtool.
// It lets AI assistants discover topics, build a knowledge graph from a
// document and pull topic context out of the last built graph.
package mcp

import "errors"

var (
	// ErrMissingGraphService is returned when the graph service is not provided.
	ErrMissingGraphService = errors.New("mcp: graph service is required")

	// ErrMissingGraphStore is returned when no store holds the built graph.
	ErrMissingGraphStore = errors.New("mcp: graph store is required")

	// ErrNoGraph is returned by tools that need a graph before one was built.
	ErrNoGraph = errors.New("no graph built yet: call build_graph first")
)
