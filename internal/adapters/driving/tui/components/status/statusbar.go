// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateFiltering State = "filtering"
	StateError     State = "error"
	StateFiltered  State = "filtered"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	nodeCount int
	neighbors bool
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, node count and neighbour mode.
func (s *Bar) renderLeft() string {
	var left string
	switch s.state {
	case StateFiltering:
		left = s.styles.Muted.Render("Filtering...")
	case StateError:
		if s.message != "" {
			left = s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		} else {
			left = s.styles.Error.Render("Error")
		}
	case StateFiltered:
		left = s.styles.Normal.Render(fmt.Sprintf("%d nodes", s.nodeCount))
		if s.message != "" {
			left += s.styles.Muted.Render(" matching " + s.message)
		}
	default:
		left = s.styles.Muted.Render(fmt.Sprintf("%d nodes", s.nodeCount))
	}

	mode := "neighbours off"
	if s.neighbors {
		mode = "neighbours on"
	}
	return left + s.styles.Muted.Render(" · "+mode)
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.nodeCount > 0 {
		bindings = s.keymap.NodesHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error text or the active filter.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetNodeCount sets the number of listed nodes.
func (s *Bar) SetNodeCount(count int) {
	s.nodeCount = count
}

// NodeCount returns the number of listed nodes.
func (s *Bar) NodeCount() int {
	return s.nodeCount
}

// SetNeighbors records whether neighbour expansion is on.
func (s *Bar) SetNeighbors(on bool) {
	s.neighbors = on
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
