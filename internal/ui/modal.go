package ui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dashkit/internal/ui/textutil"
)

// ModalStyles contains shared style definitions for modals.
var ModalStyles = struct {
	Box        lipgloss.Style
	BoxWarning lipgloss.Style
	Title      lipgloss.Style
	Label      lipgloss.Style
	Help       lipgloss.Style
}{
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	BoxWarning: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2),
	Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent)),
	Label: lipgloss.NewStyle(),
	Help:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted)),
}

// ConfirmModal asks a yes/no question. Enter or y runs OnConfirm; esc or n
// dismisses.
type ConfirmModal struct {
	Title     string
	Label     string
	OnConfirm tea.Cmd
}

var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a confirmation modal.
func NewConfirmModal(title, label string, onConfirm tea.Cmd) *ConfirmModal {
	return &ConfirmModal{Title: title, Label: label, OnConfirm: onConfirm}
}

func (m *ConfirmModal) Init() tea.Cmd { return nil }

func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "esc", "n":
		return m, dismiss
	case "enter", "y":
		if m.OnConfirm != nil {
			return m, tea.Sequence(dismiss, m.OnConfirm)
		}
		return m, dismiss
	}
	return m, nil
}

func (m *ConfirmModal) View() string {
	content := ModalStyles.Title.Render(m.Title) + "\n\n" +
		ModalStyles.Label.Render(m.Label) + "\n\n" +
		ModalStyles.Help.Render("y/Enter: confirm  Esc: cancel")
	return ModalStyles.BoxWarning.Render(content)
}

// HelpModal lists every described binding of a registry.
type HelpModal struct {
	Registry *KeybindRegistry
}

var _ View = (*HelpModal)(nil)

func (m *HelpModal) Init() tea.Cmd { return nil }

func (m *HelpModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "q" || k.String() == "enter") {
		return m, dismiss
	}
	return m, nil
}

func (m *HelpModal) View() string {
	var seqs []string
	width := 0
	for seq := range m.Registry.descriptions {
		seqs = append(seqs, seq)
		width = max(width, textutil.VisualWidth(seq))
	}
	sort.Strings(seqs)
	var b strings.Builder
	b.WriteString(ModalStyles.Title.Render("Key bindings"))
	b.WriteString("\n")
	for _, seq := range seqs {
		b.WriteString("\n")
		b.WriteString(Styles.Selected.Render(textutil.PadRightVisual(seq, width)))
		b.WriteString("  ")
		b.WriteString(m.Registry.descriptions[seq])
	}
	b.WriteString("\n\n" + ModalStyles.Help.Render("Esc: close"))
	return ModalStyles.Box.Render(b.String())
}
