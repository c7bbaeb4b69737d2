package chart

import (
	"errors"
	"fmt"
	"slices"

	"dashkit/internal/frame"
	"dashkit/internal/logging"
)

// ErrSparseGrid is returned by Final when rows or columns are not
// numbered contiguously from 1.
var ErrSparseGrid = errors.New("grid cells are not contiguous")

type cellKey struct {
	row, col int
}

// Chart aggregates traces per grid cell and assembles them into a Figure.
// A Chart is not safe for concurrent use.
type Chart struct {
	logger  *logging.Logger
	verbose bool

	traces map[int]map[int][]Trace
	cols   int
	specs  map[cellKey]*CellSpec
	titles map[cellKey]CellTitle
	fig    *Figure
}

// Option configures a Chart.
type Option func(*Chart)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(c *Chart) { c.logger = l }
}

// WithVerbose enables debug diagnostics during assembly.
func WithVerbose(v bool) Option {
	return func(c *Chart) { c.verbose = v }
}

// New creates an empty Chart.
func New(opts ...Option) *Chart {
	c := &Chart{logger: logging.NopLogger()}
	for _, o := range opts {
		o(c)
	}
	c.reset()
	return c
}

func (c *Chart) reset() {
	c.traces = make(map[int]map[int][]Trace)
	c.cols = 0
	c.specs = make(map[cellKey]*CellSpec)
	c.titles = make(map[cellKey]CellTitle)
	c.fig = nil
}

// Clear drops every trace, spec, title and the last figure.
func (c *Chart) Clear() {
	c.reset()
}

func (c *Chart) debug(msg string, args ...any) {
	if c.verbose {
		c.logger.Debug(msg, args...)
	}
}

// AddTrace appends d to cell (row, col). The cell's kind is fixed by its
// first trace; its secondary flag is set once any trace uses the secondary
// axis and never cleared.
func (c *Chart) AddTrace(d Drawable, kind Kind, row, col int, secondary bool) {
	if c.traces[row] == nil {
		c.traces[row] = make(map[int][]Trace)
	}
	c.traces[row][col] = append(c.traces[row][col], Trace{Drawable: d, Secondary: secondary})
	c.cols = max(c.cols, col)

	k := cellKey{row, col}
	if spec, ok := c.specs[k]; !ok {
		c.specs[k] = &CellSpec{Kind: kind, Secondary: secondary}
	} else if !spec.Secondary && secondary {
		spec.Secondary = true
	}
}

// SetTitle sets the subplot title and axis labels of a cell.
func (c *Chart) SetTitle(row, col int, title, xTitle, y1Title, y2Title string) {
	c.titles[cellKey{row, col}] = CellTitle{Title: title, XTitle: xTitle, Y1Title: y1Title, Y2Title: y2Title}
}

// Title returns the title record of a cell.
func (c *Chart) Title(row, col int) (CellTitle, bool) {
	t, ok := c.titles[cellKey{row, col}]
	return t, ok
}

// Spec returns the spec of a cell.
func (c *Chart) Spec(row, col int) (CellSpec, bool) {
	s, ok := c.specs[cellKey{row, col}]
	if !ok {
		return CellSpec{}, false
	}
	return *s, true
}

// Traces returns the traces of a cell in insertion order.
func (c *Chart) Traces(row, col int) []Trace {
	return c.traces[row][col]
}

// Empty reports whether no cell has been populated.
func (c *Chart) Empty() bool {
	return len(c.traces) == 0
}

// Figure returns the figure produced by the last Final call.
func (c *Chart) Figure() *Figure {
	return c.fig
}

// PlotOptions are the optional arguments of Plot.
type PlotOptions struct {
	// Y2 lists series names drawn against the secondary axis.
	Y2 []string
	// Y1Styles and Y2Styles are keyed by requested series name.
	Y1Styles Styles
	Y2Styles Styles
	// Colors is keyed by column name and by series name.
	Colors      map[string]string
	HideLegend  bool
	LegendGroup string
	// Row and Col default to 1.
	Row, Col int
	// Title sets the cell title and labels when non-empty.
	Title, XTitle, Y1Title, Y2Title string
}

// Plot adds one series per frame column matched by the requested names.
//
// A requested name matches every column that contains it, compared
// case-insensitively, so "y" selects both "y1" and "y2". Primary-axis
// series are added name by name; secondary-axis series column by column.
func (c *Chart) Plot(f *frame.Frame, x string, y1 []string, o PlotOptions) error {
	row, col := max(o.Row, 1), max(o.Col, 1)
	xc, ok := f.Column(x)
	if !ok {
		return fmt.Errorf("plot: x column %q not found", x)
	}
	for _, req := range y1 {
		for _, name := range f.Match(req) {
			c.addSeries(f, xc.Values, name, req, o.Y1Styles, o, false, row, col)
		}
	}
	y2 := make([][]string, len(o.Y2))
	for i, req := range o.Y2 {
		y2[i] = f.Match(req)
	}
	for _, name := range f.Columns() {
		for i, req := range o.Y2 {
			if slices.Contains(y2[i], name) {
				c.addSeries(f, xc.Values, name, req, o.Y2Styles, o, true, row, col)
			}
		}
	}
	if o.Title != "" {
		c.SetTitle(row, col, o.Title, o.XTitle, o.Y1Title, o.Y2Title)
	}
	return nil
}

func (c *Chart) addSeries(f *frame.Frame, x []any, name, req string, styles Styles, o PlotOptions, secondary bool, row, col int) {
	yc, _ := f.Column(name)
	st, so := resolveSeries(name, req, styles, o.Colors)
	so.LegendGroup = o.LegendGroup
	so.HideLegend = o.HideLegend
	c.AddTrace(NewSeries(st.Type, x, yc.Values, name, so), KindXY, row, col, secondary)
	c.debug("series added", "column", name, "series", req, "type", st.Type.String(), "row", row, "col", col, "secondary", secondary)
}

// PlotTable adds every column of f as a table drawable in cell (row, col).
func (c *Chart) PlotTable(f *frame.Frame, row, col int, title string, formats []string) {
	row, col = max(row, 1), max(col, 1)
	t := NewTable(f, formats)
	t.Label = title
	c.AddTrace(t, KindTable, row, col, false)
	if title != "" {
		c.SetTitle(row, col, title, "", "", "")
	}
}
