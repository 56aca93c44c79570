package nodedetail

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/render/markdown"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kgtool/internal/core/domain"
)

func testNode() domain.Node {
	return domain.Node{
		ID:       1,
		Title:    "Backend",
		Body:     "Go services.",
		Keywords: []string{"go"},
		Tags:     []string{"backend"},
	}
}

func testNeighbors() []Neighbor {
	return []Neighbor{
		{ID: 2, Title: "Database", Weight: 0.7},
		{ID: 0, Title: "Frontend", Weight: 0.4},
	}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, markdown.New())

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
	assert.Nil(t, view.Node())
	assert.False(t, view.Ready())
	assert.Nil(t, view.Init())
}

func TestView_SetNode_RendersMarkdown(t *testing.T) {
	view := NewView(nil, nil, markdown.New())

	view.SetNode(testNode(), testNeighbors())

	require.NotNil(t, view.Node())
	assert.Equal(t, 1, view.Node().ID)
	assert.Contains(t, view.Content(), "# Backend")
	assert.Contains(t, view.Content(), "**Tags:** backend")
	assert.Len(t, view.Neighbors(), 2)
	assert.Equal(t, 0, view.Selected())
}

func TestView_SetNode_WithoutRenderer(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.SetNode(testNode(), nil)

	assert.Equal(t, "Go services.", view.Content())
}

func TestView_SetNode_ResetsState(t *testing.T) {
	view := NewView(nil, nil, markdown.New())
	view.SetNode(testNode(), testNeighbors())
	view.Update(key(tea.KeyTab))
	view.scrollOffset = 3

	view.SetNode(testNode(), testNeighbors())

	assert.Equal(t, 0, view.Selected())
	assert.Equal(t, 0, view.scrollOffset)
}

func TestView_NeighborNavigation(t *testing.T) {
	view := NewView(nil, nil, markdown.New())
	view.SetNode(testNode(), testNeighbors())

	view.Update(key(tea.KeyTab))
	assert.Equal(t, 1, view.Selected())

	view.Update(key(tea.KeyTab))
	assert.Equal(t, 0, view.Selected(), "wraps to the first link")

	view.Update(key(tea.KeyShiftTab))
	assert.Equal(t, 1, view.Selected(), "wraps to the last link")
}

func TestView_NeighborNavigation_NoLinks(t *testing.T) {
	view := NewView(nil, nil, markdown.New())
	view.SetNode(testNode(), nil)

	view.Update(key(tea.KeyTab))
	_, cmd := view.Update(key(tea.KeyEnter))

	assert.Equal(t, 0, view.Selected())
	assert.Nil(t, cmd)
}

func TestView_EnterFollowsLink(t *testing.T) {
	view := NewView(nil, nil, markdown.New())
	view.SetNode(testNode(), testNeighbors())
	view.Update(key(tea.KeyTab))

	_, cmd := view.Update(key(tea.KeyEnter))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.NodeSelected{ID: 0}, cmd())
}

func TestView_EscReturnsToNodes(t *testing.T) {
	view := NewView(nil, nil, markdown.New())

	_, cmd := view.Update(key(tea.KeyEsc))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewNodes}, cmd())
}

func TestView_Scrolling(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 20)
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	node := testNode()
	node.Body = strings.Join(lines, "\n")
	view.SetNode(node, nil)
	maxOffset := view.maxScrollOffset()
	require.Positive(t, maxOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, view.scrollOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 0, view.scrollOffset)

	view.Update(key(tea.KeyUp))
	assert.Equal(t, 0, view.scrollOffset, "does not scroll above the top")

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	assert.Equal(t, maxOffset, view.scrollOffset)

	view.Update(key(tea.KeyPgDown))
	assert.Equal(t, maxOffset, view.scrollOffset, "does not scroll past the end")

	view.Update(key(tea.KeyPgUp))
	assert.Equal(t, maxOffset-view.visibleLines(), view.scrollOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, 0, view.scrollOffset)
}

func TestView_WrapContent(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(24, 20)
	node := testNode()
	node.Body = strings.Repeat("é", 45)

	view.SetNode(node, nil)

	require.Len(t, view.lines, 3)
	assert.Equal(t, 20, len([]rune(view.lines[0])))
	assert.Equal(t, 5, len([]rune(view.lines[2])))
}

func TestView_View(t *testing.T) {
	view := NewView(nil, nil, markdown.New())
	view.SetDimensions(100, 40)
	view.SetNode(testNode(), testNeighbors())

	out := view.View()

	assert.Contains(t, out, "[1] Backend")
	assert.Contains(t, out, "Linked nodes (2)")
	assert.Contains(t, out, "[2] Database")
	assert.Contains(t, out, "0.700")
}

func TestView_View_NoNode(t *testing.T) {
	view := NewView(nil, nil, nil)

	assert.Contains(t, view.View(), "(No node selected)")
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.Ready())
}
