// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/kgtool/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewNodes is the filterable node list.
	ViewNodes
	// ViewNodeDetail shows one node and its neighbours.
	ViewNodeDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewNodes:
		return "nodes"
	case ViewNodeDetail:
		return "node_detail"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ContextExtracted carries the nodes matching a topic filter.
type ContextExtracted struct {
	Result *domain.ContextResult
	Err    error
}

// NodeSelected signals a node was chosen for the detail view.
type NodeSelected struct {
	ID int
}

// SettingsLoaded carries the current setting values in display order.
type SettingsLoaded struct {
	Keys   []string
	Values map[string]string
	Err    error
}

// SettingsSaved signals a setting was saved.
type SettingsSaved struct {
	Key string
	Err error
}
