package gui

import (
	"dashkit/internal/chart"
	"dashkit/internal/frame"
)

// Handle is an opaque toolkit widget.
type Handle any

// ChangeFunc is called with the widget key and its new value.
type ChangeFunc func(key string, value any)

// Entry is a titled child of a tab or accordion container.
type Entry struct {
	Title string
	Key   string
}

// Spec describes a widget to construct.
type Spec struct {
	Kind     WidgetKind
	Desc     string
	Options  []string
	Default  any
	OnChange ChangeFunc
	// Height and Width size text areas; zero uses the toolkit default.
	Height, Width int
	// Accept filters file types of upload widgets, e.g. ".csv".
	Accept string
	// Children lists the entries of Tab and Accordion widgets.
	Children []Entry
}

// File is the value of an upload widget.
type File struct {
	Name string
	Data []byte
}

// Child is a resolved container entry.
type Child struct {
	Title  string
	Handle Handle
}

// Constructor builds a leaf widget.
type Constructor func(key string, s Spec) (Handle, error)

// Toolkit is the capability set a concrete widget binding provides.
type Toolkit interface {
	// Constructors maps leaf widget kinds to their constructors.
	Constructors() map[WidgetKind]Constructor

	Tab(key string, children []Child, onChange ChangeFunc) (Handle, error)
	Accordion(key string, children []Child, onChange ChangeFunc) (Handle, error)
	HBox(children []Handle) Handle
	VBox(children []Handle) Handle
	// Box holds a horizontal and a vertical group side by side.
	Box(children []Handle) Handle

	Value(h Handle) (any, error)
	SetValue(h Handle, v any) error
	// SetOptions replaces the options of choice widgets and sets the value
	// of any other widget.
	SetOptions(h Handle, options []string) error
	Show(h Handle, show bool) error
	ClearSelected(h Handle) error

	// Write appends text to an output pane, clearing it first when clear
	// is set.
	Write(h Handle, text string, clear bool) error
	DisplayChart(h Handle, fig *chart.Figure) error
	ShowGrid(h Handle, f *frame.Frame) error
	ShowLink(h Handle, link, title string) error

	// Display replaces what the toolkit shows with root.
	Display(root Handle) error
	// Dispose releases everything displayed for root.
	Dispose(root Handle)
}
