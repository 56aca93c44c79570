package tui

import (
	"context"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/views/nodedetail"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/views/nodes"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/kgtool/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// graph is the knowledge graph being browsed.
	graph *domain.Graph

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// nodesView lists and filters graph nodes.
	nodesView *nodes.View

	// detailView shows a single node and its links.
	detailView *nodedetail.View

	// settingsView is the settings editor.
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application browsing g.
func NewApp(ports *Ports, g *domain.Graph) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if g == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingGraph)
	}

	neighbors := domain.DefaultAppSettings().Extract.IncludeNeighbors
	if ports.Settings != nil {
		if current, err := ports.Settings.Get(); err == nil {
			neighbors = current.Extract.IncludeNeighbors
		}
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	menuView := menu.NewView(s)
	menuView.SetSummary(fmt.Sprintf("%d nodes, %d edges", g.NodeCount(), g.EdgeCount()))

	return &App{
		ports:        ports,
		graph:        g,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menuView,
		nodesView:    nodes.NewView(s, km, ports.Context, g, neighbors),
		detailView:   nodedetail.NewView(s, km, ports.Renderer),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.nodesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("kgtool - Knowledge Graph Browser"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewNodes:
			a.nodesView, cmd = a.nodesView.Update(msg)
		case messages.ViewNodeDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewSettings {
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		}
		return a, nil

	case messages.NodeSelected:
		node, ok := a.graph.Node(msg.ID)
		if !ok {
			a.err = fmt.Errorf("%w: node %d", domain.ErrNotFound, msg.ID)
			return a, nil
		}
		a.err = nil
		a.detailView.SetNode(*node, a.neighbors(msg.ID))
		a.currentView = messages.ViewNodeDetail
		return a, nil

	case messages.ContextExtracted:
		a.nodesView, cmd = a.nodesView.Update(msg)
		a.err = a.nodesView.Err()
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewNodes {
			a.nodesView, cmd = a.nodesView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewNodes:
		a.nodesView, cmd = a.nodesView.Update(msg)
	case messages.ViewNodeDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// neighbors lists the nodes linked to id, strongest edge first.
func (a *App) neighbors(id int) []nodedetail.Neighbor {
	ids := a.graph.Neighbors(id)
	out := make([]nodedetail.Neighbor, 0, len(ids))
	for _, n := range ids {
		node, ok := a.graph.Node(n)
		if !ok {
			continue
		}
		weight, _ := a.graph.EdgeWeight(id, n)
		out = append(out, nodedetail.Neighbor{ID: n, Title: node.Title, Weight: weight})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewNodes:
		return a.nodesView.View()
	case messages.ViewNodeDetail:
		return a.detailView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Nodes:
  /           Filter by topic tag
  enter       Apply filter / open node
  n           Toggle neighbour expansion
  j/k, ↑/↓    Navigate nodes

Node:
  tab         Next linked node
  shift+tab   Previous linked node
  enter       Follow link
  g/G         Top / bottom

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and resizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.nodesView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
