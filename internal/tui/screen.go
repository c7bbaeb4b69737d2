package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dashkit/internal/ui"
)

type slot struct {
	name string
	root widget
}

// Screen holds the displayed widget trees and keyboard focus.
type Screen struct {
	slots []*slot
	focus ui.FocusManager
	byID  map[string]widget
}

// NewScreen creates a screen with the given slots, top to bottom.
func NewScreen(slots ...string) *Screen {
	s := &Screen{byID: make(map[string]widget)}
	s.focus.OnChange = func(from, to string) {
		if w, ok := s.byID[from]; ok {
			w.setFocus(false)
		}
		if w, ok := s.byID[to]; ok {
			w.setFocus(true)
		}
	}
	for _, name := range slots {
		s.slot(name)
	}
	return s
}

func (s *Screen) slot(name string) *slot {
	for _, sl := range s.slots {
		if sl.name == name {
			return sl
		}
	}
	sl := &slot{name: name}
	s.slots = append(s.slots, sl)
	return sl
}

func (s *Screen) display(name string, root widget) {
	sl := s.slot(name)
	if sl.root != nil && sl.root != root {
		walk(sl.root, func(w widget) { w.setFocus(false) })
	}
	sl.root = root
	s.relayout()
}

func (s *Screen) dispose(name string, root widget) {
	sl := s.slot(name)
	if sl.root != root {
		return
	}
	walk(root, func(w widget) { w.setFocus(false) })
	sl.root = nil
	s.relayout()
}

// relayout rebuilds the focus order from the visible trees.
func (s *Screen) relayout() {
	byID := make(map[string]widget)
	var order []string
	for _, sl := range s.slots {
		walk(sl.root, func(w widget) {
			byID[w.id()] = w
			if w.focusable() {
				order = append(order, w.id())
			}
		})
	}
	s.byID = byID
	s.focus.SetOrder(order)
	if w := s.focused(); w != nil && !w.isFocused() {
		w.setFocus(true)
	}
}

func (s *Screen) focused() widget {
	return s.byID[s.focus.Current]
}

// FocusedKey returns the widget key with focus, or "".
func (s *Screen) FocusedKey() string {
	if w := s.focused(); w != nil {
		return w.widgetKey()
	}
	return ""
}

// Next moves focus to the next widget.
func (s *Screen) Next() { s.focus.Next() }

// Prev moves focus to the previous widget.
func (s *Screen) Prev() { s.focus.Prev() }

// Focus moves focus to the widget key of the named slot.
func (s *Screen) Focus(slotName, key string) bool {
	return s.focus.SetFocus(slotName + "/" + key)
}

// capturesText reports whether the focused widget consumes printable keys.
func (s *Screen) capturesText() bool {
	t, ok := s.focused().(texter)
	return ok && t.capturesText()
}

// handleKey sends msg to the focused widget.
func (s *Screen) handleKey(msg tea.KeyMsg) tea.Cmd {
	w := s.focused()
	if w == nil {
		return nil
	}
	cmd := w.update(msg)
	s.relayout()
	return cmd
}

// Render draws every non-empty slot, top to bottom.
func (s *Screen) Render() string {
	var parts []string
	for _, sl := range s.slots {
		if sl.root == nil || sl.root.hidden() {
			continue
		}
		if r := sl.root.render(); r != "" {
			parts = append(parts, r)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
