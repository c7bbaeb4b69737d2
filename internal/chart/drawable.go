package chart

import (
	"fmt"
	"strings"

	"dashkit/internal/frame"

	"github.com/spf13/cast"
)

// Drawable is a single trace object placed in a cell.
type Drawable interface {
	Name() string
	Kind() Kind
}

// Trace is a drawable plus its axis assignment.
type Trace struct {
	Drawable  Drawable `json:"drawable"`
	Secondary bool     `json:"secondary_y"`
}

// Marker describes point markers of a series.
type Marker struct {
	Color     string  `json:"color,omitempty"`
	Symbol    string  `json:"symbol,omitempty"`
	LineColor string  `json:"line_color,omitempty"`
	LineWidth float64 `json:"line_width,omitempty"`
}

// Series is an x/y data series.
type Series struct {
	Type        ChartType `json:"type"`
	Label       string    `json:"name"`
	X           []any     `json:"x"`
	Y           []any     `json:"y"`
	Mode        string    `json:"mode,omitempty"`
	Marker      *Marker   `json:"marker,omitempty"`
	LineColor   string    `json:"line_color,omitempty"`
	Fill        string    `json:"fill,omitempty"`
	LegendGroup string    `json:"legendgroup,omitempty"`
	ShowLegend  bool      `json:"showlegend"`
	ConnectGaps bool      `json:"connectgaps"`
}

func (s *Series) Name() string { return s.Label }
func (s *Series) Kind() Kind   { return KindXY }

// DefaultLineWidth is the marker line width used when a style gives none.
const DefaultLineWidth = 2

// SeriesOptions are the optional arguments of NewSeries.
type SeriesOptions struct {
	Color       string
	Mode        string
	Symbol      string
	Width       float64
	LegendGroup string
	HideLegend  bool
}

// NewSeries builds a series drawable for the chart type t.
//
// Bar and Dots colour markers, Area uses the colour as its fill, Scatter
// keeps the requested mode and leaves gaps open. Line, Column and unknown
// types draw connected lines.
func NewSeries(t ChartType, x, y []any, name string, o SeriesOptions) *Series {
	width := o.Width
	if width == 0 {
		width = DefaultLineWidth
	}
	s := &Series{
		Type:        t,
		Label:       name,
		X:           x,
		Y:           y,
		LegendGroup: o.LegendGroup,
		ShowLegend:  !o.HideLegend,
	}
	switch t {
	case Bar:
		s.LegendGroup = ""
		s.Marker = &Marker{Color: o.Color}
	case Area:
		s.Mode = o.Mode
		s.Fill = o.Color
	case Dots:
		s.Mode = "markers"
		s.Marker = &Marker{Color: o.Color, Symbol: "circle", LineColor: o.Color, LineWidth: width}
	case Scatter:
		s.Mode = o.Mode
		s.Marker = &Marker{Color: o.Color, Symbol: o.Symbol, LineColor: o.Color, LineWidth: width}
	default:
		s.Mode = "lines"
		s.ConnectGaps = true
		s.LineColor = o.Color
	}
	return s
}

// Table colours.
const (
	TableHeaderColor  = "grey"
	TableLineColor    = "darkslategray"
	TableRowEvenColor = "lightgrey"
	TableRowOddColor  = "white"
)

// Table is a tabular drawable. Cells are stored column-major.
type Table struct {
	Label       string   `json:"name,omitempty"`
	Header      []string `json:"header"`
	Cells       [][]any  `json:"cells"`
	Formats     []string `json:"format,omitempty"`
	HeaderColor string   `json:"header_fill"`
	LineColor   string   `json:"line_color"`
	RowColors   []string `json:"row_fill"`
}

func (t *Table) Name() string { return t.Label }
func (t *Table) Kind() Kind   { return KindTable }

// NewTable builds a table drawable holding every column of f.
func NewTable(f *frame.Frame, formats []string) *Table {
	t := &Table{
		Header:      f.Columns(),
		Formats:     formats,
		HeaderColor: TableHeaderColor,
		LineColor:   TableLineColor,
	}
	for _, n := range t.Header {
		c, _ := f.Column(n)
		t.Cells = append(t.Cells, c.Values)
	}
	for i := 0; i < f.Len(); i++ {
		if i%2 == 0 {
			t.RowColors = append(t.RowColors, TableRowOddColor)
		} else {
			t.RowColors = append(t.RowColors, TableRowEvenColor)
		}
	}
	return t
}

// Rows returns the table cells row-major.
func (t *Table) Rows() [][]any {
	if len(t.Cells) == 0 {
		return nil
	}
	out := make([][]any, len(t.Cells[0]))
	for r := range out {
		row := make([]any, len(t.Cells))
		for c := range t.Cells {
			if r < len(t.Cells[c]) {
				row[c] = t.Cells[c][r]
			}
		}
		out[r] = row
	}
	return out
}

// TextRows returns the table cells row-major, each formatted with the
// format of its column.
func (t *Table) TextRows() [][]string {
	rows := t.Rows()
	out := make([][]string, len(rows))
	for r, row := range rows {
		out[r] = make([]string, len(row))
		for c, v := range row {
			f := ""
			if c < len(t.Formats) {
				f = t.Formats[c]
			}
			out[r][c] = FormatValue(v, f)
		}
	}
	return out
}

// FormatValue applies a printf-style number format such as ".2f" or ",.0f".
// Non-numeric values and empty formats print as-is.
func FormatValue(v any, format string) string {
	if v == nil {
		return ""
	}
	format = strings.ReplaceAll(format, ",", "")
	if format == "" {
		return cast.ToString(v)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return cast.ToString(v)
	}
	if !strings.HasPrefix(format, "%") {
		format = "%" + format
	}
	return fmt.Sprintf(format, f)
}
