package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp renders the transient help bar shown after the leader
// key. Returns "" outside leader mode or when nothing is bound.
func RenderKeybindHelp(h *KeyHandler) string {
	if h == nil || !h.LeaderWaiting {
		return ""
	}
	bindings := NewKeyMap(h).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	m := help.New()
	m.Styles.ShortKey = Styles.Selected
	m.Styles.ShortDesc = Styles.Muted
	m.Styles.ShortSeparator = Styles.Muted

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1)
	return box.Render(Styles.Muted.Render(h.Sequence()) + " " + m.ShortHelpView(bindings))
}
