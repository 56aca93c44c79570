// Package nodedetail provides the single node view for the TUI.
package nodedetail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
)

// Neighbor is a node linked to the displayed node.
type Neighbor struct {
	ID     int
	Title  string
	Weight float64
}

// View shows one node's markdown and lets the user follow its edges.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	renderer driven.NodeRenderer

	node         *domain.Node
	neighbors    []Neighbor
	selected     int
	content      string
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new node detail view.
func NewView(s *styles.Styles, km *keymap.KeyMap, renderer driven.NodeRenderer) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keymap:   km,
		renderer: renderer,
		width:    80,
		height:   24,
	}
}

// SetNode displays node with its linked nodes, strongest first.
func (v *View) SetNode(node domain.Node, neighbors []Neighbor) {
	v.node = &node
	v.neighbors = neighbors
	v.selected = 0
	v.scrollOffset = 0
	if v.renderer != nil {
		v.content = v.renderer.RenderNode(node)
	} else {
		v.content = node.Body
	}
	v.wrapContent()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the node detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.NextNeighbor):
		if len(v.neighbors) > 0 {
			v.selected = (v.selected + 1) % len(v.neighbors)
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.PrevNeighbor):
		if len(v.neighbors) > 0 {
			v.selected = (v.selected - 1 + len(v.neighbors)) % len(v.neighbors)
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Select):
		if len(v.neighbors) == 0 {
			return v, nil
		}
		id := v.neighbors[v.selected].ID
		return v, func() tea.Msg {
			return messages.NodeSelected{ID: id}
		}

	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewNodes}
		}
	}

	switch keyStr {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	}

	return v, nil
}

// wrapContent wraps the content to fit the view width.
func (v *View) wrapContent() {
	if v.content == "" {
		v.lines = nil
		return
	}

	contentWidth := max(v.width-4, 20)

	rawLines := strings.Split(v.content, "\n")
	v.lines = make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		r := []rune(line)
		for len(r) > contentWidth {
			v.lines = append(v.lines, string(r[:contentWidth]))
			r = r[contentWidth:]
		}
		v.lines = append(v.lines, string(r))
	}
}

// visibleLines returns the number of content lines that fit above the links panel.
func (v *View) visibleLines() int {
	// Title, separator, links header, help and padding
	reserved := 8 + min(len(v.neighbors), 5)
	return max(v.height-reserved, 1)
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the node detail view.
func (v *View) View() string {
	var b strings.Builder

	title := "Node"
	if v.node != nil {
		title = fmt.Sprintf("[%d] %s", v.node.ID, v.node.Title)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(v.width-4, 60)))
	b.WriteString("\n\n")

	if v.node == nil {
		b.WriteString(v.styles.Muted.Render("(No node selected)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}
	if len(v.lines) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Line %d-%d of %d",
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.lines)),
			len(v.lines))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderNeighbors())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderNeighbors renders the linked nodes panel around the selection.
func (v *View) renderNeighbors() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Linked nodes (%d)", len(v.neighbors))))
	b.WriteString("\n")

	if len(v.neighbors) == 0 {
		b.WriteString(v.styles.Muted.Render("  (none)"))
		b.WriteString("\n")
		return b.String()
	}

	start := 0
	if v.selected >= 5 {
		start = v.selected - 4
	}
	end := min(start+5, len(v.neighbors))
	for i := start; i < end; i++ {
		n := v.neighbors[i]
		weight := v.styles.Weight.Render(fmt.Sprintf("%.3f", n.Weight))
		line := fmt.Sprintf("[%d] %s  %s", n.ID, n.Title, weight)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [tab] next link  [enter] follow  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrapContent()
}

// Ready returns whether the view has received its dimensions.
func (v *View) Ready() bool {
	return v.ready
}

// Node returns the displayed node.
func (v *View) Node() *domain.Node {
	return v.node
}

// Neighbors returns the linked nodes.
func (v *View) Neighbors() []Neighbor {
	return v.neighbors
}

// Selected returns the index of the highlighted linked node.
func (v *View) Selected() int {
	return v.selected
}

// Content returns the rendered node markdown.
func (v *View) Content() string {
	return v.content
}
