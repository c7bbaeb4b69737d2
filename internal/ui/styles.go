package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // cyan/green: titles, focus borders
	ColorHighlight = "205" // magenta: selected items
	ColorDanger    = "196" // red: errors
	ColorMuted     = "241" // gray: hints, unfocused borders
	ColorText      = "252" // light gray: normal text
	ColorChart     = "39"  // blue: terminal chart bars
)

// Styles contains shared style definitions used by widgets.
var Styles = struct {
	Title    lipgloss.Style // bold accent: pane and chart titles
	Error    lipgloss.Style
	Selected lipgloss.Style // bold highlight: chosen options
	Cursor   lipgloss.Style // reverse: option under the cursor
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Empty    lipgloss.Style // muted italic: empty panes
	Chart    lipgloss.Style

	Pane        lipgloss.Style // output pane, unfocused
	PaneFocused lipgloss.Style
	Field       lipgloss.Style // leaf widget frame, unfocused
	FieldFocus  lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent)),
	Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDanger)),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHighlight)),
	Cursor:   lipgloss.NewStyle().Reverse(true),
	Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted)),
	Normal:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorText)),
	Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted)).Italic(true),
	Chart:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorChart)),

	Pane: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)),
	PaneFocused: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)),
	Field: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	FieldFocus: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),

	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)).
		Underline(true).
		Padding(0, 1),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
}

// Frame wraps content in the field or pane border matching focus.
func Frame(content string, focused, pane bool) string {
	switch {
	case pane && focused:
		return Styles.PaneFocused.Render(content)
	case pane:
		return Styles.Pane.Render(content)
	case focused:
		return Styles.FieldFocus.Render(content)
	default:
		return Styles.Field.Render(content)
	}
}
