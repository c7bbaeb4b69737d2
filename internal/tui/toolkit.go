// Package tui implements gui.Toolkit for the terminal with Bubble Tea.
//
// Widgets are plain values mutated on the Bubble Tea event loop. A Screen
// holds one displayed tree per named slot; each Toolkit draws into one
// slot. Program adapts a Screen into a tea.Model.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"dashkit/internal/chart"
	"dashkit/internal/frame"
	"dashkit/internal/gui"
)

var (
	// ErrForeignHandle is returned for handles created by another toolkit.
	ErrForeignHandle = errors.New("handle not created by the terminal toolkit")
	// ErrInvalidValue is returned when a value does not fit a widget.
	ErrInvalidValue = errors.New("invalid widget value")
	// ErrUnsupported is returned for operations a widget does not offer.
	ErrUnsupported = errors.New("operation not supported by widget")
)

// DefaultWidth is the width of output panes and charts.
const DefaultWidth = 100

// Toolkit builds terminal widgets and displays them in one screen slot.
type Toolkit struct {
	screen *Screen
	slot   string
	width  int
	boxes  int
}

var _ gui.Toolkit = (*Toolkit)(nil)

// Option configures a Toolkit.
type Option func(*Toolkit)

// WithWidth sets the width of output panes and charts.
func WithWidth(w int) Option {
	return func(tk *Toolkit) {
		if w > 0 {
			tk.width = w
		}
	}
}

// Toolkit returns a toolkit drawing into the named slot. Slots render top
// to bottom in the order they were first requested.
func (s *Screen) Toolkit(slot string, opts ...Option) *Toolkit {
	s.slot(slot)
	tk := &Toolkit{screen: s, slot: slot, width: DefaultWidth}
	for _, o := range opts {
		o(tk)
	}
	return tk
}

func (tk *Toolkit) base(key string, s gui.Spec) base {
	return base{key: key, uid: tk.slot + "/" + key, desc: s.Desc, onChange: s.OnChange}
}

// Constructors implements gui.Toolkit.
func (tk *Toolkit) Constructors() map[gui.WidgetKind]gui.Constructor {
	choiceCtor := func(key string, s gui.Spec) (gui.Handle, error) {
		return newChoice(tk.base(key, s), s)
	}
	return map[gui.WidgetKind]gui.Constructor{
		gui.View: func(key string, s gui.Spec) (gui.Handle, error) {
			return newOutput(tk.base(key, s), s, tk.width), nil
		},
		gui.Label: func(key string, s gui.Spec) (gui.Handle, error) {
			return newLabel(tk.base(key, s), s), nil
		},
		gui.Text: func(key string, s gui.Spec) (gui.Handle, error) {
			return newText(tk.base(key, s), s), nil
		},
		gui.DatePicker: func(key string, s gui.Spec) (gui.Handle, error) {
			return newDate(tk.base(key, s), s)
		},
		gui.Combo: func(key string, s gui.Spec) (gui.Handle, error) {
			return newCombo(tk.base(key, s), s), nil
		},
		gui.Select:   choiceCtor,
		gui.Radio:    choiceCtor,
		gui.Toggle:   choiceCtor,
		gui.SelMulti: choiceCtor,
		gui.Checkbox: func(key string, s gui.Spec) (gui.Handle, error) {
			return newCheckbox(tk.base(key, s), s)
		},
		gui.Button: func(key string, s gui.Spec) (gui.Handle, error) {
			return &button{base: tk.base(key, s)}, nil
		},
		gui.Upload: func(key string, s gui.Spec) (gui.Handle, error) {
			return newUpload(tk.base(key, s), s), nil
		},
	}
}

func asWidget(h gui.Handle) (widget, error) {
	w, ok := h.(widget)
	if !ok || w == nil {
		return nil, fmt.Errorf("%w: %T", ErrForeignHandle, h)
	}
	return w, nil
}

// Tab implements gui.Toolkit.
func (tk *Toolkit) Tab(key string, children []gui.Child, onChange gui.ChangeFunc) (gui.Handle, error) {
	return newTabs(tk.base(key, gui.Spec{OnChange: onChange}), children, false)
}

// Accordion implements gui.Toolkit.
func (tk *Toolkit) Accordion(key string, children []gui.Child, onChange gui.ChangeFunc) (gui.Handle, error) {
	return newTabs(tk.base(key, gui.Spec{OnChange: onChange}), children, true)
}

func (tk *Toolkit) box(dir direction, children []gui.Handle) gui.Handle {
	tk.boxes++
	b := &box{base: base{uid: fmt.Sprintf("%s/#%d", tk.slot, tk.boxes)}, dir: dir}
	for _, h := range children {
		if w, err := asWidget(h); err == nil {
			b.kids = append(b.kids, w)
		}
	}
	return b
}

// HBox implements gui.Toolkit. Foreign handles are skipped.
func (tk *Toolkit) HBox(children []gui.Handle) gui.Handle { return tk.box(horizontal, children) }

// VBox implements gui.Toolkit. Foreign handles are skipped.
func (tk *Toolkit) VBox(children []gui.Handle) gui.Handle { return tk.box(vertical, children) }

// Box implements gui.Toolkit. The groups sit side by side.
func (tk *Toolkit) Box(children []gui.Handle) gui.Handle { return tk.box(horizontal, children) }

// Value implements gui.Toolkit.
func (tk *Toolkit) Value(h gui.Handle) (any, error) {
	w, err := asWidget(h)
	if err != nil {
		return nil, err
	}
	return w.value(), nil
}

// SetValue implements gui.Toolkit. A changed value is reported to the
// widget's change callback.
func (tk *Toolkit) SetValue(h gui.Handle, v any) error {
	w, err := asWidget(h)
	if err != nil {
		return err
	}
	changed, err := w.setValue(v)
	if err != nil {
		return err
	}
	tk.screen.relayout()
	if changed {
		w.notify(w.value())
	}
	return nil
}

// SetOptions implements gui.Toolkit. Other widgets take the options as
// lines of text.
func (tk *Toolkit) SetOptions(h gui.Handle, options []string) error {
	w, err := asWidget(h)
	if err != nil {
		return err
	}
	if c, ok := w.(chooser); ok {
		c.setOptions(options)
		return nil
	}
	return tk.SetValue(h, strings.Join(options, "\n"))
}

// Show implements gui.Toolkit.
func (tk *Toolkit) Show(h gui.Handle, show bool) error {
	w, err := asWidget(h)
	if err != nil {
		return err
	}
	w.setHidden(!show)
	tk.screen.relayout()
	return nil
}

// ClearSelected implements gui.Toolkit.
func (tk *Toolkit) ClearSelected(h gui.Handle) error {
	w, err := asWidget(h)
	if err != nil {
		return err
	}
	c, ok := w.(chooser)
	if !ok {
		return fmt.Errorf("%w: clear selection", ErrUnsupported)
	}
	if c.clearSelected() {
		w.notify(w.value())
	}
	return nil
}

// writer is implemented by widgets that show text.
type writer interface {
	write(text string, clear bool)
}

func (tk *Toolkit) writeTo(h gui.Handle, text string, clear bool) error {
	w, err := asWidget(h)
	if err != nil {
		return err
	}
	o, ok := w.(writer)
	if !ok {
		return fmt.Errorf("%w: write to %T", ErrUnsupported, w)
	}
	o.write(text, clear)
	tk.screen.relayout()
	return nil
}

// Write implements gui.Toolkit.
func (tk *Toolkit) Write(h gui.Handle, text string, clear bool) error {
	return tk.writeTo(h, text, clear)
}

// DisplayChart implements gui.Toolkit. The pane is cleared first.
func (tk *Toolkit) DisplayChart(h gui.Handle, fig *chart.Figure) error {
	return tk.writeTo(h, renderFigure(fig, tk.width), true)
}

// ShowGrid implements gui.Toolkit. The pane is cleared first.
func (tk *Toolkit) ShowGrid(h gui.Handle, f *frame.Frame) error {
	return tk.writeTo(h, renderFrame(f), true)
}

// ShowLink implements gui.Toolkit.
func (tk *Toolkit) ShowLink(h gui.Handle, link, title string) error {
	out, err := renderLink(link, title, tk.width)
	if err != nil {
		return err
	}
	return tk.writeTo(h, out, false)
}

// Display implements gui.Toolkit.
func (tk *Toolkit) Display(root gui.Handle) error {
	w, err := asWidget(root)
	if err != nil {
		return err
	}
	tk.screen.display(tk.slot, w)
	return nil
}

// Dispose implements gui.Toolkit. Only the tree currently shown in the
// slot is removed.
func (tk *Toolkit) Dispose(root gui.Handle) {
	if w, err := asWidget(root); err == nil {
		tk.screen.dispose(tk.slot, w)
	}
}
