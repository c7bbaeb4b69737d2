package gui

import (
	"fmt"
	"strings"

	"dashkit/internal/chart"
	"dashkit/internal/frame"
)

// fakeWidget records what the toolkit was asked to do.
type fakeWidget struct {
	kind     string
	key      string
	children []*fakeWidget
	titles   []string
	value    any
	options  []string
	hidden   bool
	lines    []string
	fig      *chart.Figure
	onChange ChangeFunc
}

func (w *fakeWidget) String() string {
	switch w.kind {
	case "hbox", "vbox", "box":
		parts := make([]string, len(w.children))
		for i, c := range w.children {
			parts[i] = c.String()
		}
		return fmt.Sprintf("%s[%s]", strings.ToUpper(w.kind[:1]), strings.Join(parts, " "))
	case "tab":
		parts := make([]string, len(w.children))
		for i, c := range w.children {
			parts[i] = w.titles[i] + "=" + c.String()
		}
		return fmt.Sprintf("T:%s(%s)", w.key, strings.Join(parts, " "))
	}
	return w.key
}

type fakeToolkit struct {
	displayed *fakeWidget
	disposed  []*fakeWidget
	noCombo   bool
}

func (f *fakeToolkit) Constructors() map[WidgetKind]Constructor {
	leaf := func(kind string) Constructor {
		return func(key string, s Spec) (Handle, error) {
			return &fakeWidget{kind: kind, key: key, value: s.Default, options: s.Options, onChange: s.OnChange}, nil
		}
	}
	m := map[WidgetKind]Constructor{
		View:       leaf("view"),
		Text:       leaf("text"),
		SelMulti:   leaf("selMulti"),
		DatePicker: leaf("date"),
		Select:     leaf("select"),
		Checkbox:   leaf("checkbox"),
		Radio:      leaf("radio"),
		Button:     leaf("button"),
		Toggle:     leaf("toggle"),
		Upload:     leaf("upload"),
	}
	if !f.noCombo {
		m[Combo] = leaf("combo")
	}
	return m
}

func (f *fakeToolkit) container(kind, key string, children []Child) *fakeWidget {
	w := &fakeWidget{kind: kind, key: key}
	for _, c := range children {
		w.children = append(w.children, c.Handle.(*fakeWidget))
		w.titles = append(w.titles, c.Title)
	}
	return w
}

func (f *fakeToolkit) Tab(key string, children []Child, onChange ChangeFunc) (Handle, error) {
	return f.container("tab", key, children), nil
}

func (f *fakeToolkit) Accordion(key string, children []Child, onChange ChangeFunc) (Handle, error) {
	return f.container("accordion", key, children), nil
}

func box(kind string, hs []Handle) *fakeWidget {
	w := &fakeWidget{kind: kind}
	for _, h := range hs {
		w.children = append(w.children, h.(*fakeWidget))
	}
	return w
}

func (f *fakeToolkit) HBox(hs []Handle) Handle { return box("hbox", hs) }
func (f *fakeToolkit) VBox(hs []Handle) Handle { return box("vbox", hs) }
func (f *fakeToolkit) Box(hs []Handle) Handle  { return box("box", hs) }

func (f *fakeToolkit) Value(h Handle) (any, error) { return h.(*fakeWidget).value, nil }

func (f *fakeToolkit) SetValue(h Handle, v any) error {
	h.(*fakeWidget).value = v
	return nil
}

func (f *fakeToolkit) SetOptions(h Handle, options []string) error {
	w := h.(*fakeWidget)
	if w.kind == "select" || w.kind == "selMulti" {
		w.options = options
		return nil
	}
	w.value = options
	return nil
}

func (f *fakeToolkit) Show(h Handle, show bool) error {
	h.(*fakeWidget).hidden = !show
	return nil
}

func (f *fakeToolkit) ClearSelected(h Handle) error {
	w := h.(*fakeWidget)
	if w.kind == "selMulti" {
		w.value = []string{}
	} else {
		w.value = nil
	}
	return nil
}

func (f *fakeToolkit) Write(h Handle, text string, clear bool) error {
	w := h.(*fakeWidget)
	if clear {
		w.lines = nil
	}
	w.lines = append(w.lines, text)
	return nil
}

func (f *fakeToolkit) DisplayChart(h Handle, fig *chart.Figure) error {
	h.(*fakeWidget).fig = fig
	return nil
}

func (f *fakeToolkit) ShowGrid(h Handle, fr *frame.Frame) error {
	return f.Write(h, strings.Join(fr.Columns(), ","), false)
}

func (f *fakeToolkit) ShowLink(h Handle, link, title string) error {
	return f.Write(h, "Download: "+title+" "+link, false)
}

func (f *fakeToolkit) Display(root Handle) error {
	f.displayed = root.(*fakeWidget)
	return nil
}

func (f *fakeToolkit) Dispose(root Handle) {
	f.disposed = append(f.disposed, root.(*fakeWidget))
}
