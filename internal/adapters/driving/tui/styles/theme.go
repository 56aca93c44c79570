// Package styles provides the colour palette and lipgloss styles for the
// graph browser.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette holds the colours of the graph browser.
type Palette struct {
	Accent  lipgloss.Color // titles and the selection bar
	Link    lipgloss.Color // subtitles and edge weights
	Text    lipgloss.Color
	Dim     lipgloss.Color
	OK      lipgloss.Color
	Fail    lipgloss.Color
	Frame   lipgloss.Color // input borders
	Tag     lipgloss.Color
	StatusB lipgloss.Color // status bar background
}

// DefaultPalette returns the dark palette used by kgtool browse.
func DefaultPalette() *Palette {
	return &Palette{
		Accent:  lipgloss.Color("#7C3AED"),
		Link:    lipgloss.Color("#06B6D4"),
		Text:    lipgloss.Color("#CDD6F4"),
		Dim:     lipgloss.Color("#6C7086"),
		OK:      lipgloss.Color("#A6E3A1"),
		Fail:    lipgloss.Color("#F38BA8"),
		Frame:   lipgloss.Color("#45475A"),
		Tag:     lipgloss.Color("#FAB387"),
		StatusB: lipgloss.Color("#181825"),
	}
}

// Styles are the rendered styles built from a Palette.
type Styles struct {
	palette *Palette

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Tag        lipgloss.Style
	Weight     lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
}

// NewStyles builds styles from p. A nil palette uses DefaultPalette.
func NewStyles(p *Palette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	return &Styles{
		palette:  p,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(p.Link),
		Normal:   lipgloss.NewStyle().Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Dim),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Accent),
		Error:    lipgloss.NewStyle().Foreground(p.Fail),
		Success:  lipgloss.NewStyle().Foreground(p.OK),
		Tag:      lipgloss.NewStyle().Foreground(p.Tag),
		Weight:   lipgloss.NewStyle().Foreground(p.Link),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Frame).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Dim).
			Background(p.StatusB).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(p.Dim),
	}
}

// DefaultStyles returns styles for the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}

// Palette returns the palette the styles were built from.
func (s *Styles) Palette() *Palette {
	return s.palette
}
