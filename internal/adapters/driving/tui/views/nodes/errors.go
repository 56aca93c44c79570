package nodes

import "errors"

// Error definitions for the nodes view.
var (
	// ErrNoContextService indicates that no context service was provided.
	ErrNoContextService = errors.New("context service is required")
)
