// Package gui composes dashboards from toolkit widgets.
//
// A GUI owns a flat store of widgets keyed by name. Leaf widgets are built by
// the constructors of a Toolkit; containers and layouts reference children
// by key only. Layouts are declared as a tree of Leaf, Group and Tabbed
// nodes and composed into nested boxes by SetView.
//
// A GUI is used from the toolkit's event loop only and is not safe for
// concurrent use.
package gui

import (
	"fmt"
	"maps"
	"slices"

	"dashkit/internal/chart"
	"dashkit/internal/frame"
	"dashkit/internal/logging"

	"github.com/google/uuid"
)

// LogKey is the key of the output pane created by SetupLogger.
const LogKey = "log"

// GUI is one dashboard instance bound to a toolkit.
type GUI struct {
	name    string
	id      string
	tk      Toolkit
	ctors   map[WidgetKind]Constructor
	logger  *logging.Logger
	widgets map[string]Handle

	charts      map[string]*chart.Chart
	chartColors map[string]string
	chartTypes  chart.Styles
	chartOpts   []chart.Option

	layout   *Node
	tabsMade []string
	root     Handle
}

// Option configures a GUI.
type Option func(*GUI)

// WithLogger sets the base logger. The GUI logs through a child carrying
// its name and id.
func WithLogger(l *logging.Logger) Option {
	return func(g *GUI) { g.logger = l }
}

// WithChartOptions sets the options of charts created by AddChart.
func WithChartOptions(opts ...chart.Option) Option {
	return func(g *GUI) { g.chartOpts = opts }
}

// New creates a GUI named name over tk.
func New(name string, tk Toolkit, opts ...Option) *GUI {
	g := &GUI{
		name:        name,
		id:          uuid.NewString(),
		tk:          tk,
		ctors:       tk.Constructors(),
		logger:      logging.NopLogger(),
		widgets:     make(map[string]Handle),
		charts:      make(map[string]*chart.Chart),
		chartColors: make(map[string]string),
		chartTypes:  make(chart.Styles),
	}
	for _, o := range opts {
		o(g)
	}
	g.logger = g.logger.WithGUI(name).With("gui_id", g.id)
	return g
}

// Name returns the GUI name.
func (g *GUI) Name() string { return g.name }

// ID returns the unique instance id.
func (g *GUI) ID() string { return g.id }

// Logger returns the GUI's logger.
func (g *GUI) Logger() *logging.Logger { return g.logger }

// Keys returns the registered widget keys in sorted order.
func (g *GUI) Keys() []string {
	return slices.Sorted(maps.Keys(g.widgets))
}

func (g *GUI) register(key string, h Handle) error {
	if _, ok := g.widgets[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	g.widgets[key] = h
	return nil
}

// Add constructs a widget from s and registers it under key.
func (g *GUI) Add(key string, s Spec) (Handle, error) {
	if _, ok := g.widgets[key]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	switch s.Kind {
	case Tab:
		return g.Tab(key, s.Children, s.OnChange)
	case Accordion:
		return g.Accordion(key, s.Children, s.OnChange)
	}
	ctor, ok := g.ctors[s.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, s.Kind)
	}
	h, err := ctor(key, s)
	if err != nil {
		return nil, fmt.Errorf("build %s %q: %w", s.Kind, key, err)
	}
	if err := g.register(key, h); err != nil {
		return nil, err
	}
	g.logger.Debug("widget added", "key", key, "kind", s.Kind.String())
	return h, nil
}

// Component is a keyed widget spec for Build.
type Component struct {
	Key string
	Spec
}

// Build adds every component in order, stopping at the first error.
func (g *GUI) Build(components []Component) error {
	for _, c := range components {
		if _, err := g.Add(c.Key, c.Spec); err != nil {
			return err
		}
	}
	return nil
}

// View adds an output pane.
func (g *GUI) View(key string) (Handle, error) {
	return g.Add(key, Spec{Kind: View})
}

// Get returns the widget registered under key.
func (g *GUI) Get(key string) (Handle, bool) {
	h, ok := g.widgets[key]
	return h, ok
}

func (g *GUI) lookup(key string) (Handle, error) {
	h, ok := g.widgets[key]
	if !ok {
		return nil, g.notFound(key)
	}
	return h, nil
}

// SetVal sets the value of a widget.
func (g *GUI) SetVal(key string, v any) error {
	h, err := g.lookup(key)
	if err != nil {
		return err
	}
	return g.tk.SetValue(h, v)
}

// GetVal returns the value of a widget.
func (g *GUI) GetVal(key string) (any, error) {
	h, err := g.lookup(key)
	if err != nil {
		return nil, err
	}
	return g.tk.Value(h)
}

// SetOptions replaces the options of a choice widget.
func (g *GUI) SetOptions(key string, options []string) error {
	h, err := g.lookup(key)
	if err != nil {
		return err
	}
	return g.tk.SetOptions(h, options)
}

// ShowWidget shows or hides a widget. Unknown keys are ignored.
func (g *GUI) ShowWidget(key string, show bool) error {
	h, ok := g.widgets[key]
	if !ok {
		return nil
	}
	return g.tk.Show(h, show)
}

// ClearSelected resets the selection of a choice widget.
func (g *GUI) ClearSelected(key string) error {
	h, err := g.lookup(key)
	if err != nil {
		return err
	}
	return g.tk.ClearSelected(h)
}

// ClearView replaces an existing output pane with a fresh one.
func (g *GUI) ClearView(key string) error {
	if _, ok := g.widgets[key]; !ok {
		return nil
	}
	delete(g.widgets, key)
	_, err := g.View(key)
	return err
}

func (g *GUI) children(entries []Entry) ([]Child, error) {
	out := make([]Child, 0, len(entries))
	for _, e := range entries {
		h, err := g.lookup(e.Key)
		if err != nil {
			return nil, err
		}
		out = append(out, Child{Title: e.Title, Handle: h})
	}
	return out, nil
}

// Tab registers a tab container holding the widgets named by entries.
func (g *GUI) Tab(key string, entries []Entry, onChange ChangeFunc) (Handle, error) {
	if _, ok := g.widgets[key]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	kids, err := g.children(entries)
	if err != nil {
		return nil, fmt.Errorf("tab %q: %w", key, err)
	}
	h, err := g.tk.Tab(key, kids, onChange)
	if err != nil {
		return nil, err
	}
	return h, g.register(key, h)
}

// Accordion registers an accordion holding the widgets named by entries.
func (g *GUI) Accordion(key string, entries []Entry, onChange ChangeFunc) (Handle, error) {
	if _, ok := g.widgets[key]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	kids, err := g.children(entries)
	if err != nil {
		return nil, fmt.Errorf("accordion %q: %w", key, err)
	}
	h, err := g.tk.Accordion(key, kids, onChange)
	if err != nil {
		return nil, err
	}
	return h, g.register(key, h)
}

func (g *GUI) handles(keys []string) []Handle {
	var out []Handle
	for _, k := range keys {
		if h, ok := g.widgets[k]; ok {
			out = append(out, h)
		}
	}
	return out
}

// HBox lays out the named widgets horizontally. Unknown keys are skipped.
func (g *GUI) HBox(keys ...string) Handle {
	return g.tk.HBox(g.handles(keys))
}

// VBox lays out the named widgets vertically. Unknown keys are skipped.
func (g *GUI) VBox(keys ...string) Handle {
	return g.tk.VBox(g.handles(keys))
}

// SetupLogger adds the log output pane.
func (g *GUI) SetupLogger() error {
	_, err := g.View(LogKey)
	return err
}

// Log writes a line to the log pane. Without a log pane the line goes to
// the structured logger.
func (g *GUI) Log(msg string, clear bool) {
	h, ok := g.widgets[LogKey]
	if !ok {
		g.logger.Info(msg)
		return
	}
	if err := g.tk.Write(h, msg, clear); err != nil {
		g.logger.Error("write log pane", "error", err)
	}
}

// Logf formats and writes a line to the log pane.
func (g *GUI) Logf(format string, args ...any) {
	g.Log(fmt.Sprintf(format, args...), false)
}

// Label adds an output pane showing value.
func (g *GUI) Label(key, value string) error {
	h, err := g.View(key)
	if err != nil {
		return err
	}
	return g.tk.Write(h, value, false)
}

// ShowGrid shows f as a table in the named pane. Unknown keys are ignored.
func (g *GUI) ShowGrid(key string, f *frame.Frame) error {
	h, ok := g.widgets[key]
	if !ok {
		return nil
	}
	return g.tk.ShowGrid(h, f)
}

// ShowLink shows a download link in the named pane. Unknown keys are
// ignored.
func (g *GUI) ShowLink(key, link, title string) error {
	h, ok := g.widgets[key]
	if !ok {
		return nil
	}
	return g.tk.ShowLink(h, link, title)
}

// Refresh composes layout and displays it. A nil layout recomposes the
// last one. Tab containers created by the previous composition are dropped
// first so they can be rebuilt under the same keys.
func (g *GUI) Refresh(layout *Node) error {
	if layout != nil {
		g.layout = layout
	}
	if g.layout == nil {
		return fmt.Errorf("refresh %s: no layout", g.name)
	}
	for _, k := range g.tabsMade {
		delete(g.widgets, k)
	}
	g.tabsMade = nil

	root, err := g.SetView(g.layout, "")
	if err != nil {
		return err
	}
	g.root = root
	return g.tk.Display(root)
}

// Root returns the handle displayed by the last Refresh.
func (g *GUI) Root() Handle { return g.root }

// Close releases the displayed tree and drops every widget and chart.
func (g *GUI) Close() {
	g.logger.Info("closing gui")
	if g.root != nil {
		g.tk.Dispose(g.root)
	}
	g.root = nil
	g.widgets = make(map[string]Handle)
	g.ClearCharts()
}
