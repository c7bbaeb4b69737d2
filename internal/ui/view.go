package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a self-contained Bubble Tea component shown above the dashboard,
// such as a modal.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// DismissMsg asks the owner to pop the topmost overlay.
type DismissMsg struct{}

func dismiss() tea.Msg { return DismissMsg{} }
