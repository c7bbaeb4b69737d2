package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cast"

	"dashkit/internal/gui"
	"dashkit/internal/ui"
)

type direction int

const (
	vertical direction = iota
	horizontal
)

// box lays out its children in a row or a column.
type box struct {
	base
	dir  direction
	kids []widget
}

func (b *box) focusable() bool    { return false }
func (b *box) children() []widget { return b.kids }
func (b *box) value() any         { return nil }
func (b *box) setValue(any) (bool, error) {
	return false, fmt.Errorf("%w: boxes have no value", ErrInvalidValue)
}

func (b *box) render() string {
	parts := make([]string, 0, len(b.kids))
	for _, k := range b.kids {
		if k.hidden() {
			continue
		}
		if r := k.render(); r != "" {
			parts = append(parts, r)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	if b.dir == horizontal {
		return lipgloss.JoinHorizontal(lipgloss.Top, interleave(parts, " ")...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// interleave puts sep between the elements of parts.
func interleave(parts []string, sep string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

// tabs shows one child at a time under a row of titles. As an accordion
// the titles stack vertically and the open child can be collapsed.
type tabs struct {
	base
	accordion bool
	titles    []string
	kids      []widget
	cursor    int
	open      int // -1 when every accordion section is collapsed
}

func newTabs(b base, kids []gui.Child, accordion bool) (*tabs, error) {
	t := &tabs{base: b, accordion: accordion}
	for _, c := range kids {
		w, ok := c.Handle.(widget)
		if !ok {
			return nil, fmt.Errorf("%w: child %q", ErrForeignHandle, c.Title)
		}
		t.titles = append(t.titles, c.Title)
		t.kids = append(t.kids, w)
	}
	if len(kids) == 0 || accordion {
		t.open = -1
	}
	return t, nil
}

func (t *tabs) children() []widget {
	if t.open < 0 {
		return nil
	}
	return t.kids[t.open : t.open+1]
}

func (t *tabs) update(msg tea.KeyMsg) tea.Cmd {
	if len(t.kids) == 0 {
		return nil
	}
	prev, next := "left", "right"
	if t.accordion {
		prev, next = "up", "down"
	}
	switch msg.String() {
	case prev, "h", "k":
		t.cursor = max(0, t.cursor-1)
		if !t.accordion {
			t.openTab(t.cursor)
		}
	case next, "l", "j":
		t.cursor = min(len(t.kids)-1, t.cursor+1)
		if !t.accordion {
			t.openTab(t.cursor)
		}
	case "enter", " ":
		if !t.accordion {
			return nil
		}
		if t.open == t.cursor {
			t.open = -1
			t.notify(nil)
			return nil
		}
		t.openTab(t.cursor)
	}
	return nil
}

func (t *tabs) openTab(i int) {
	if i == t.open {
		return
	}
	t.open = i
	t.notify(t.titles[i])
}

func (t *tabs) render() string {
	if t.accordion {
		return t.renderAccordion()
	}
	heads := make([]string, len(t.titles))
	for i, title := range t.titles {
		style := ui.Styles.TabInactive
		if i == t.open {
			style = ui.Styles.TabActive
		}
		if t.focused && i == t.cursor {
			style = style.Reverse(true)
		}
		heads[i] = style.Render(title)
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, heads...)
	if t.open >= 0 {
		if body := t.kids[t.open].render(); body != "" {
			out += "\n" + body
		}
	}
	return out
}

func (t *tabs) renderAccordion() string {
	var b strings.Builder
	for i, title := range t.titles {
		if i > 0 {
			b.WriteString("\n")
		}
		mark := "▸ "
		if i == t.open {
			mark = "▾ "
		}
		line := mark + title
		switch {
		case t.focused && i == t.cursor:
			line = ui.Styles.Cursor.Render(line)
		case i == t.open:
			line = ui.Styles.Selected.Render(line)
		default:
			line = ui.Styles.Normal.Render(line)
		}
		b.WriteString(line)
		if i == t.open {
			if body := t.kids[i].render(); body != "" {
				b.WriteString("\n" + body)
			}
		}
	}
	return b.String()
}

// value is the title of the open child, or nil.
func (t *tabs) value() any {
	if t.open < 0 {
		return nil
	}
	return t.titles[t.open]
}

// setValue opens the child with the given title or index.
func (t *tabs) setValue(v any) (bool, error) {
	idx := -1
	switch v := v.(type) {
	case nil:
		if !t.accordion {
			return false, fmt.Errorf("%w: a tab is always open", ErrInvalidValue)
		}
	case string:
		if idx = slices.Index(t.titles, v); idx < 0 {
			return false, fmt.Errorf("%w: no tab %q in %q", ErrInvalidValue, v, t.key)
		}
	default:
		i, err := cast.ToIntE(v)
		if err != nil || i < 0 || i >= len(t.kids) {
			return false, fmt.Errorf("%w: tab index %v out of range", ErrInvalidValue, v)
		}
		idx = i
	}
	if idx == t.open {
		return false, nil
	}
	t.open = idx
	if idx >= 0 {
		t.cursor = idx
	}
	return true, nil
}
