// Package tui provides an interactive terminal browser for knowledge graphs.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
	"github.com/custodia-labs/kgtool/internal/core/ports/driving"
)

// Ports aggregates the services the TUI needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Context filters graph nodes by topic.
	Context driving.ContextService

	// Settings manages application settings. Optional; the settings view
	// reports an error without it.
	Settings driving.SettingsService

	// Renderer formats node detail pages.
	Renderer driven.NodeRenderer
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	contextService driving.ContextService,
	settings driving.SettingsService,
	renderer driven.NodeRenderer,
) *Ports {
	return &Ports{
		Context:  contextService,
		Settings: settings,
		Renderer: renderer,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Context == nil {
		return ErrMissingContextService
	}
	if p.Renderer == nil {
		return ErrMissingRenderer
	}
	return nil
}
