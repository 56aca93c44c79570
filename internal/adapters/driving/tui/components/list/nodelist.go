// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kgtool/internal/core/domain"
)

// NodeList displays graph nodes in a navigable list.
type NodeList struct {
	nodes    []domain.Node
	degrees  map[int]int
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewNodeList creates a new node list component.
func NewNodeList(s *styles.Styles) *NodeList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &NodeList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the node list.
func (l *NodeList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *NodeList) Update(msg tea.Msg) (*NodeList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the node list.
func (l *NodeList) View() string {
	if len(l.nodes) == 0 {
		return l.styles.Muted.Render("No nodes")
	}

	lines := make([]string, 0, len(l.nodes)*2+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Nodes (%d)", len(l.nodes))), "")

	// Each node takes two lines.
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.nodes) {
		end = len(l.nodes)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderNode(i, &l.nodes[i]))
	}

	return strings.Join(lines, "\n")
}

// renderNode formats one node: id, title and degree, then its tags.
func (l *NodeList) renderNode(index int, node *domain.Node) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := node.Title
	if title == "" {
		title = "(untitled)"
	}

	maxTitleLen := l.width - 24
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title = truncate(title, maxTitleLen)

	label := fmt.Sprintf("%s[%d] %-*s", indicator, node.ID, maxTitleLen, title)
	degree := fmt.Sprintf("%d links", l.degrees[node.ID])

	var titleLine string
	if index == l.selected {
		titleLine = l.styles.Selected.Render(label + "  " + degree)
	} else {
		titleLine = l.styles.Normal.Render(label+"  ") + l.styles.Muted.Render(degree)
	}

	tags := truncate(strings.Join(node.Tags, ", "), l.width-6)
	return titleLine + "\n" + l.styles.Tag.Render("    "+tags)
}

func truncate(s string, limit int) string {
	if limit < 4 {
		limit = 4
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// SetNodes replaces the listed nodes and resets the selection.
func (l *NodeList) SetNodes(nodes []domain.Node) {
	l.nodes = nodes
	l.selected = 0
}

// SetDegrees sets the link count shown next to each node id.
func (l *NodeList) SetDegrees(degrees map[int]int) {
	l.degrees = degrees
}

// Nodes returns the listed nodes.
func (l *NodeList) Nodes() []domain.Node {
	return l.nodes
}

// Selected returns the index of the selected node.
func (l *NodeList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *NodeList) SetSelected(index int) {
	if index >= 0 && index < len(l.nodes) {
		l.selected = index
	}
}

// SelectedNode returns the currently selected node, or nil if none.
func (l *NodeList) SelectedNode() *domain.Node {
	if len(l.nodes) == 0 || l.selected < 0 || l.selected >= len(l.nodes) {
		return nil
	}
	return &l.nodes[l.selected]
}

// MoveUp moves selection up.
func (l *NodeList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *NodeList) MoveDown() {
	if l.selected < len(l.nodes)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *NodeList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of nodes.
func (l *NodeList) Count() int {
	return len(l.nodes)
}

// IsEmpty returns whether the list is empty.
func (l *NodeList) IsEmpty() bool {
	return len(l.nodes) == 0
}
