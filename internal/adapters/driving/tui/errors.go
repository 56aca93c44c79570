package tui

import "errors"

// ErrMissingContextService is returned when the context service is not provided.
var ErrMissingContextService = errors.New("tui: context service is required")

// ErrMissingRenderer is returned when the node renderer is not provided.
var ErrMissingRenderer = errors.New("tui: node renderer is required")

// ErrMissingGraph is returned when there is no graph to browse.
var ErrMissingGraph = errors.New("tui: graph is required")
