package chart

import (
	"context"
	"fmt"

	"dashkit/internal/jsonutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Grid spacing. Grids with ten or more rows (columns) use the compact value.
const (
	VerticalSpacing         = 0.06
	HorizontalSpacing       = 0.08
	CompactSpacing          = 0.01
	CompactSpacingThreshold = 10
)

// Layout defaults applied to every figure.
const (
	DefaultTemplate        = "plotly"
	DefaultBackgroundColor = "LightSteelBlue"
)

// Recognized layout option keys.
const (
	OptionCategory    = "cat"
	OptionStack       = "stack"
	OptionLogY        = "logy"
	OptionLogY2       = "logy1"
	OptionOrientation = "orientation"
	OptionXAnchor     = "xanchor"
	OptionYAnchor     = "yanchor"
	OptionLegendX     = "x"
	OptionLegendY     = "y"

	categoryAxisValue = "Category"
)

// Axis holds the settings of one axis of a cell.
type Axis struct {
	Title     string      `json:"title"`
	TickAngle *float64    `json:"tickangle,omitempty"`
	Range     *[2]float64 `json:"range,omitempty"`
	Type      string      `json:"type,omitempty"`
}

// FigureCell is a populated cell of the assembled grid.
type FigureCell struct {
	Row    int      `json:"row"`
	Col    int      `json:"col"`
	Spec   CellSpec `json:"spec"`
	Title  string   `json:"title"`
	Traces []Trace  `json:"traces"`
	XAxis  Axis     `json:"xaxis"`
	YAxis  Axis     `json:"yaxis"`
	Y2Axis *Axis    `json:"yaxis2,omitempty"`
}

// Legend positions the figure legend.
type Legend struct {
	Orientation string   `json:"orientation"`
	XAnchor     string   `json:"xanchor"`
	YAnchor     string   `json:"yanchor"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
}

// Layout holds figure-wide settings.
type Layout struct {
	Title        string  `json:"title,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	Autosize     bool    `json:"autosize"`
	Template     string  `json:"template"`
	PaperBGColor string  `json:"paper_bgcolor"`
	PlotBGColor  string  `json:"plot_bgcolor"`
	XAxisType    string  `json:"xaxis_type,omitempty"`
	BarMode      string  `json:"barmode,omitempty"`
	Legend       *Legend `json:"legend,omitempty"`
}

// Figure is the grid descriptor produced by Final.
type Figure struct {
	Rows              int     `json:"rows"`
	Cols              int     `json:"cols"`
	VerticalSpacing   float64 `json:"vertical_spacing"`
	HorizontalSpacing float64 `json:"horizontal_spacing"`
	// Specs has one entry per column for every row. Unpopulated cells have
	// an empty Kind.
	Specs         [][]CellSpec `json:"specs"`
	SubplotTitles []string     `json:"subplot_titles"`
	SharedX       bool         `json:"shared_xaxes"`
	SharedY       bool         `json:"shared_yaxes"`
	// Cells lists populated cells in row-major order.
	Cells  []FigureCell `json:"cells"`
	Layout Layout       `json:"layout"`
}

// Cell returns the populated cell at (row, col).
func (f *Figure) Cell(row, col int) (*FigureCell, bool) {
	for i := range f.Cells {
		if f.Cells[i].Row == row && f.Cells[i].Col == col {
			return &f.Cells[i], true
		}
	}
	return nil, false
}

// JSON encodes the figure.
func (f *Figure) JSON() ([]byte, error) {
	return jsonutil.MarshalIndentWithContext(f, "encode figure")
}

type finalConfig struct {
	ctx        context.Context
	title      string
	width      int
	height     int
	xTickAngle *float64
	yTickAngle *float64
	y1Range    *[2]float64
	y2Range    *[2]float64
	sharedX    bool
	sharedY    bool
	layout     map[string]any
}

// FinalOption configures Final.
type FinalOption func(*finalConfig)

// WithContext sets the parent context for tracing.
func WithContext(ctx context.Context) FinalOption {
	return func(c *finalConfig) { c.ctx = ctx }
}

// WithTitle sets the figure title.
func WithTitle(title string) FinalOption {
	return func(c *finalConfig) { c.title = title }
}

// WithSize fixes the figure size. Both dimensions must be positive.
func WithSize(width, height int) FinalOption {
	return func(c *finalConfig) { c.width, c.height = width, height }
}

// WithXTickAngle rotates x axis tick labels.
func WithXTickAngle(deg float64) FinalOption {
	return func(c *finalConfig) { c.xTickAngle = &deg }
}

// WithYTickAngle rotates y axis tick labels on both y axes.
func WithYTickAngle(deg float64) FinalOption {
	return func(c *finalConfig) { c.yTickAngle = &deg }
}

// WithY1Range fixes the primary y range.
func WithY1Range(lo, hi float64) FinalOption {
	return func(c *finalConfig) { c.y1Range = &[2]float64{lo, hi} }
}

// WithY2Range fixes the secondary y range.
func WithY2Range(lo, hi float64) FinalOption {
	return func(c *finalConfig) { c.y2Range = &[2]float64{lo, hi} }
}

// WithSharedAxes sets whether subplots share x and y axes. Both default to true.
func WithSharedAxes(x, y bool) FinalOption {
	return func(c *finalConfig) { c.sharedX, c.sharedY = x, y }
}

// WithLayoutOptions applies loosely typed layout options: "cat", "stack",
// "logy", "logy1" and the legend keys "orientation", "xanchor", "yanchor",
// "x", "y".
func WithLayoutOptions(opts map[string]any) FinalOption {
	return func(c *finalConfig) { c.layout = opts }
}

// Final assembles the accumulated cells into a Figure and keeps it on the
// chart. With no populated cells it logs a warning and returns nil, nil.
func (c *Chart) Final(opts ...FinalOption) (*Figure, error) {
	cfg := finalConfig{ctx: context.Background(), sharedX: true, sharedY: true}
	for _, o := range opts {
		o(&cfg)
	}

	_, span := otel.Tracer("dashkit/chart").Start(cfg.ctx, "chart.final")
	defer span.End()

	if c.Empty() {
		c.logger.Warn("no chart available: no cells populated")
		return nil, nil
	}

	rows := len(c.traces)
	c.debug("assembling figure", "rows", rows, "cols", c.cols)
	span.SetAttributes(attribute.Int("chart.rows", rows), attribute.Int("chart.cols", c.cols))

	fig := &Figure{
		Rows:              rows,
		Cols:              c.cols,
		VerticalSpacing:   spacing(rows, VerticalSpacing),
		HorizontalSpacing: spacing(c.cols, HorizontalSpacing),
		SharedX:           cfg.sharedX,
		SharedY:           cfg.sharedY,
		SubplotTitles:     []string{},
	}

	for r := 1; r <= rows; r++ {
		row, ok := c.traces[r]
		if !ok {
			span.RecordError(ErrSparseGrid)
			return nil, fmt.Errorf("%w: row %d missing of %d", ErrSparseGrid, r, rows)
		}
		specRow := make([]CellSpec, c.cols)
		for col := 1; col <= len(row); col++ {
			traces, ok := row[col]
			if !ok {
				span.RecordError(ErrSparseGrid)
				return nil, fmt.Errorf("%w: row %d has no column %d", ErrSparseGrid, r, col)
			}
			k := cellKey{r, col}
			spec := *c.specs[k]
			if spec.Kind != KindXY {
				spec = CellSpec{Kind: KindTable}
			}
			specRow[col-1] = spec

			title, ok := c.titles[k]
			if !ok {
				c.titles[k] = title
			}
			fig.SubplotTitles = append(fig.SubplotTitles, title.Title)

			fig.Cells = append(fig.Cells, buildCell(r, col, spec, title, traces, &cfg))
		}
		fig.Specs = append(fig.Specs, specRow)
		c.debug("row assembled", "row", r, "cols", len(row))
	}

	fig.Layout = buildLayout(&cfg)
	applyLayoutOptions(fig, cfg.layout)

	c.fig = fig
	return fig, nil
}

func spacing(n int, def float64) float64 {
	if n < CompactSpacingThreshold {
		return def
	}
	return CompactSpacing
}

func buildCell(row, col int, spec CellSpec, title CellTitle, traces []Trace, cfg *finalConfig) FigureCell {
	fc := FigureCell{
		Row:    row,
		Col:    col,
		Spec:   spec,
		Title:  title.Title,
		Traces: append([]Trace(nil), traces...),
		XAxis:  Axis{Title: title.XTitle, TickAngle: cfg.xTickAngle},
		YAxis:  Axis{Title: title.Y1Title, TickAngle: cfg.yTickAngle, Range: cfg.y1Range},
	}
	if spec.Secondary {
		y2 := Axis{Title: title.Y2Title, TickAngle: cfg.yTickAngle, Range: cfg.y1Range}
		if cfg.y2Range != nil {
			y2.Range = cfg.y2Range
		}
		fc.Y2Axis = &y2
	}
	return fc
}

func buildLayout(cfg *finalConfig) Layout {
	l := Layout{
		Title:        cfg.title,
		Autosize:     true,
		Template:     DefaultTemplate,
		PaperBGColor: DefaultBackgroundColor,
		PlotBGColor:  DefaultBackgroundColor,
	}
	if cfg.width > 0 && cfg.height > 0 {
		l.Autosize = false
		l.Width, l.Height = cfg.width, cfg.height
	}
	return l
}

func applyLayoutOptions(fig *Figure, opts map[string]any) {
	if opts == nil {
		return
	}
	if jsonutil.GetString(opts, OptionCategory) == categoryAxisValue {
		fig.Layout.XAxisType = "category"
	}
	if jsonutil.Has(opts, OptionStack) {
		fig.Layout.BarMode = "stack"
	}
	logY := jsonutil.GetBool(opts, OptionLogY)
	logY2 := jsonutil.GetBool(opts, OptionLogY2)
	for i := range fig.Cells {
		if logY {
			fig.Cells[i].YAxis.Type = "log"
		}
		if logY2 && fig.Cells[i].Y2Axis != nil {
			fig.Cells[i].Y2Axis.Type = "log"
		}
	}
	if jsonutil.HasAll(opts, OptionOrientation, OptionXAnchor, OptionYAnchor) {
		lg := &Legend{
			Orientation: jsonutil.ToString(opts[OptionOrientation]),
			XAnchor:     jsonutil.ToString(opts[OptionXAnchor]),
			YAnchor:     jsonutil.ToString(opts[OptionYAnchor]),
		}
		if x, ok := jsonutil.GetFloat(opts, OptionLegendX); ok {
			lg.X = &x
		}
		if y, ok := jsonutil.GetFloat(opts, OptionLegendY); ok {
			lg.Y = &y
		}
		fig.Layout.Legend = lg
	}
}
