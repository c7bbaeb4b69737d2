package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"dashkit/internal/gui"
	"dashkit/internal/ui"
)

// widget is a node of the displayed tree.
type widget interface {
	// id is unique across the screen; widgetKey is the gui key.
	id() string
	widgetKey() string
	// focusable reports whether the widget takes part in focus rotation.
	focusable() bool
	setFocus(bool)
	isFocused() bool
	// update handles a key while the widget has focus.
	update(tea.KeyMsg) tea.Cmd
	render() string
	children() []widget
	hidden() bool
	setHidden(bool)
	value() any
	// setValue stores v and reports whether the value changed.
	setValue(v any) (bool, error)
	// notify reports v to the change callback.
	notify(v any)
}

// texter is implemented by widgets that consume printable keys, such as
// text inputs. Leader bindings are not handled while one has focus.
type texter interface {
	capturesText() bool
}

// chooser is implemented by widgets with a list of options.
type chooser interface {
	setOptions([]string)
	clearSelected() bool
}

// base carries the state shared by every widget.
type base struct {
	key      string
	uid      string
	desc     string
	hide     bool
	focused  bool
	onChange gui.ChangeFunc
}

func (b *base) widgetKey() string         { return b.key }
func (b *base) id() string                { return b.uid }
func (b *base) focusable() bool           { return true }
func (b *base) setFocus(f bool)           { b.focused = f }
func (b *base) isFocused() bool           { return b.focused }
func (b *base) children() []widget        { return nil }
func (b *base) hidden() bool              { return b.hide }
func (b *base) setHidden(h bool)          { b.hide = h }
func (b *base) update(tea.KeyMsg) tea.Cmd { return nil }

func (b *base) notify(v any) {
	if b.onChange != nil {
		b.onChange(b.key, v)
	}
}

// frame draws the description above content inside a field border.
func (b *base) frame(content string) string {
	if b.desc != "" {
		content = ui.Styles.Title.Render(b.desc) + "\n" + content
	}
	return ui.Frame(content, b.focused, false)
}

// walk visits w and its visible descendants depth-first.
func walk(w widget, visit func(widget)) {
	if w == nil || w.hidden() {
		return
	}
	visit(w)
	for _, c := range w.children() {
		walk(c, visit)
	}
}
