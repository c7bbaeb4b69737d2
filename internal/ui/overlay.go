package ui

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a View drawn over the dashboard that closes on Dismiss.
type Overlay struct {
	View    View
	Dismiss string // key that closes the overlay, e.g. "esc"
}

// OverlayStack holds open overlays. The topmost receives input first.
type OverlayStack struct {
	stack []Overlay
}

// Push opens an overlay and returns its Init command.
func (s *OverlayStack) Push(o Overlay) tea.Cmd {
	s.stack = append(s.stack, o)
	return o.View.Init()
}

// Pop closes the topmost overlay.
func (s *OverlayStack) Pop() (Overlay, bool) {
	if len(s.stack) == 0 {
		return Overlay{}, false
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top, true
}

// Peek returns the topmost overlay.
func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.stack) == 0 {
		return Overlay{}, false
	}
	return s.stack[len(s.stack)-1], true
}

// Len returns the number of open overlays.
func (s *OverlayStack) Len() int { return len(s.stack) }

// Update routes msg to the topmost overlay. A dismiss key or DismissMsg
// pops it. handled is false when the stack is empty.
func (s *OverlayStack) Update(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	if len(s.stack) == 0 {
		return nil, false
	}
	top := &s.stack[len(s.stack)-1]
	switch msg := msg.(type) {
	case DismissMsg:
		s.Pop()
		return nil, true
	case tea.KeyMsg:
		if top.Dismiss != "" && msg.String() == top.Dismiss {
			s.Pop()
			return nil, true
		}
	}
	v, cmd := top.View.Update(msg)
	top.View = v
	return cmd, true
}

// View renders the topmost overlay, or "" when none is open.
func (s *OverlayStack) View() string {
	top, ok := s.Peek()
	if !ok {
		return ""
	}
	return top.View.View()
}
