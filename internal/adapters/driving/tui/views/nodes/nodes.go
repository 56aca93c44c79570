// Package nodes provides the filterable node list view for the TUI.
package nodes

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driving"
)

// View lists graph nodes and filters them by topic tag.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.FilterInput
	list      *list.NodeList
	statusbar *status.Bar

	contextService driving.ContextService
	graph          *domain.Graph
	ctx            context.Context

	filter     string
	neighbors  bool
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a filter, false = navigating nodes
}

// NewView creates a new nodes view over g.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	contextService driving.ContextService,
	g *domain.Graph,
	neighbors bool,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:         s,
		keymap:         km,
		input:          input.NewFilterInput(s),
		list:           list.NewNodeList(s),
		statusbar:      status.NewBar(s, km),
		contextService: contextService,
		graph:          g,
		ctx:            context.Background(),
		neighbors:      neighbors,
		width:          80,
		height:         24,
	}
	v.input.Blur()
	v.list.SetDegrees(degrees(g))
	v.showAll()
	return v
}

// degrees counts the edges touching each node.
func degrees(g *domain.Graph) map[int]int {
	out := make(map[int]int)
	if g == nil {
		return out
	}
	for _, e := range g.Edges {
		out[e.Source]++
		out[e.Target]++
	}
	return out
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the nodes view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ContextExtracted:
		v.handleContextExtracted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		return v.handleInputKey(msg)
	}

	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case msg.Type == tea.KeyEnter:
		node := v.list.SelectedNode()
		if node == nil {
			return v, nil
		}
		id := node.ID
		return v, func() tea.Msg {
			return messages.NodeSelected{ID: id}
		}

	case keymap.Matches(msg.String(), v.keymap.Filter):
		v.focusInput = true
		v.input.SetValue(v.filter)
		return v, v.input.Focus()

	case keymap.Matches(msg.String(), v.keymap.Neighbors):
		v.neighbors = !v.neighbors
		v.statusbar.SetNeighbors(v.neighbors)
		if v.filter == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateFiltering)
		return v, v.performFilter(v.filter)
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// handleInputKey processes keys while the filter input has focus.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.focusInput = false
		v.input.Blur()
		return v, nil

	case tea.KeyEnter:
		v.focusInput = false
		v.input.Blur()
		v.filter = strings.TrimSpace(v.input.Value())
		if v.filter == "" {
			v.showAll()
			return v, nil
		}
		v.statusbar.SetState(status.StateFiltering)
		return v, v.performFilter(v.filter)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// performFilter extracts the nodes matching topic.
func (v *View) performFilter(topic string) tea.Cmd {
	svc, g, ctx := v.contextService, v.graph, v.ctx
	opts := domain.ExtractOptions{IncludeNeighbors: v.neighbors}
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoContextService}
		}
		result, err := svc.Extract(ctx, g, topic, opts)
		return messages.ContextExtracted{Result: result, Err: err}
	}
}

// handleContextExtracted shows the nodes of a filter result.
func (v *View) handleContextExtracted(msg messages.ContextExtracted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	var selected []domain.Node
	if msg.Result != nil {
		selected = msg.Result.Selected
	}
	v.list.SetNodes(selected)
	v.statusbar.SetState(status.StateFiltered)
	v.statusbar.SetMessage(v.filter)
	v.statusbar.SetNodeCount(len(selected))
}

// showAll lists every node of the graph.
func (v *View) showAll() {
	v.filter = ""
	v.err = nil
	var all []domain.Node
	if v.graph != nil {
		all = v.graph.Nodes
	}
	v.list.SetNodes(all)
	v.statusbar.Clear()
	v.statusbar.SetNodeCount(len(all))
	v.statusbar.SetNeighbors(v.neighbors)
}

// View renders the nodes view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Graph Nodes"), "")

	if v.focusInput || v.filter != "" {
		sections = append(sections, v.input.View(), "")
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Filter returns the active topic filter.
func (v *View) Filter() string {
	return v.filter
}

// Neighbors returns whether filter results include neighbours.
func (v *View) Neighbors() bool {
	return v.neighbors
}

// Nodes returns the listed nodes.
func (v *View) Nodes() []domain.Node {
	return v.list.Nodes()
}

// SelectedNode returns the highlighted node.
func (v *View) SelectedNode() *domain.Node {
	return v.list.SelectedNode()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the filter input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset clears the filter and lists every node.
func (v *View) Reset() {
	v.focusInput = false
	v.input.Blur()
	v.input.SetValue("")
	v.showAll()
}
