package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dashkit/internal/ui"
)

// CallMsg runs a function on the event loop. Widget trees and the GUIs
// owning them may only be touched from there.
type CallMsg func()

type (
	helpMsg        struct{}
	confirmQuitMsg struct{}
)

// Program is the root tea.Model of a dashboard.
type Program struct {
	screen   *Screen
	keys     *ui.KeyHandler
	overlays ui.OverlayStack
	title    string
	width    int
	height   int

	mu sync.Mutex
	tp *tea.Program
}

var _ tea.Model = (*Program)(nil)

// ProgramOption configures a Program.
type ProgramOption func(*Program)

// WithTitle sets the header line.
func WithTitle(title string) ProgramOption {
	return func(p *Program) { p.title = title }
}

// NewProgram creates a program showing screen. ctrl+c quits, SPC q asks
// first and SPC ? lists the bindings.
func NewProgram(screen *Screen, opts ...ProgramOption) *Program {
	reg := ui.NewKeybindRegistry()
	reg.BindWithDesc("ctrl+c", tea.Quit, "quit")
	reg.BindWithDesc("SPC q", func() tea.Msg { return confirmQuitMsg{} }, "quit")
	reg.BindWithDesc("SPC ?", func() tea.Msg { return helpMsg{} }, "key bindings")
	p := &Program{screen: screen, keys: ui.NewKeyHandler(reg)}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Bind runs fn on the event loop when seq is typed.
func (p *Program) Bind(seq, desc string, fn func()) {
	p.keys.Registry.BindWithDesc(seq, func() tea.Msg { return CallMsg(fn) }, desc)
}

// Group labels a leader prefix in the key help.
func (p *Program) Group(key, label string) {
	p.keys.Registry.Group(key, label)
}

// Init implements tea.Model.
func (p *Program) Init() tea.Cmd {
	if p.title == "" {
		return nil
	}
	return tea.SetWindowTitle(p.title)
}

// Update implements tea.Model.
func (p *Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		return p, nil
	case CallMsg:
		msg()
		p.screen.relayout()
		return p, nil
	case helpMsg:
		return p, p.overlays.Push(ui.Overlay{View: &ui.HelpModal{Registry: p.keys.Registry}, Dismiss: "esc"})
	case confirmQuitMsg:
		m := ui.NewConfirmModal("Quit?", "Close the dashboard.", tea.Quit)
		return p, p.overlays.Push(ui.Overlay{View: m})
	case tea.KeyMsg:
		return p, p.handleKey(msg)
	}
	if cmd, ok := p.overlays.Update(msg); ok {
		return p, cmd
	}
	return p, nil
}

func (p *Program) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if p.overlays.Len() > 0 {
		cmd, _ := p.overlays.Update(msg)
		return cmd
	}
	switch msg.String() {
	case "tab":
		p.keys.Reset()
		p.screen.Next()
		return nil
	case "shift+tab":
		p.keys.Reset()
		p.screen.Prev()
		return nil
	}
	if p.screen.capturesText() && !p.keys.LeaderWaiting {
		return p.screen.handleKey(msg)
	}
	if consumed, cmd := p.keys.Handle(msg); consumed {
		return cmd
	}
	return p.screen.handleKey(msg)
}

// View implements tea.Model.
func (p *Program) View() string {
	if p.overlays.Len() > 0 {
		if p.width > 0 && p.height > 0 {
			return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, p.overlays.View())
		}
		return p.overlays.View()
	}
	var parts []string
	if p.title != "" {
		parts = append(parts, ui.Styles.Title.Render(p.title))
	}
	parts = append(parts, p.screen.Render())
	if h := ui.RenderKeybindHelp(p.keys); h != "" {
		parts = append(parts, h)
	} else {
		parts = append(parts, ui.Styles.Muted.Render("tab: next  shift+tab: prev  SPC: commands  ctrl+c: quit"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Run runs the program in the alternate screen until it quits or ctx ends.
func (p *Program) Run(ctx context.Context) error {
	tp := tea.NewProgram(p, tea.WithAltScreen(), tea.WithContext(ctx))
	p.mu.Lock()
	p.tp = tp
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.tp = nil
		p.mu.Unlock()
	}()
	if _, err := tp.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

// Send schedules fn on the event loop. It reports false when the program
// is not running.
func (p *Program) Send(fn func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tp == nil {
		return false
	}
	p.tp.Send(CallMsg(fn))
	return true
}
