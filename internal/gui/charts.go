package gui

import (
	"context"
	"fmt"

	"dashkit/internal/chart"
	"dashkit/internal/frame"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// SeriesLook is the registered type and colour of a series name.
type SeriesLook struct {
	Type   chart.ChartType
	Color  string
	Mode   string
	Symbol string
	Width  float64
}

// SetColorsAndTypes registers how series named field are drawn. A look
// with a Mode registers the extended style; otherwise only the type is
// kept in the style and the colour goes to the colour table.
func (g *GUI) SetColorsAndTypes(field string, look SeriesLook) {
	g.chartColors[field] = look.Color
	st := chart.Style{Type: look.Type}
	if look.Mode != "" {
		st = chart.Style{
			Type:     look.Type,
			Mode:     look.Mode,
			Symbol:   look.Symbol,
			Color:    look.Color,
			Width:    look.Width,
			Extended: true,
		}
	}
	g.chartTypes[field] = st
}

// HasChartType reports whether a look was registered for field.
func (g *GUI) HasChartType(field string) bool {
	_, ok := g.chartTypes[field]
	return ok
}

// ChartRequest holds the optional arguments of AddChart.
type ChartRequest struct {
	// Chart plots into a caller-owned chart instead of the one stored
	// under the id.
	Chart *chart.Chart
	// Row and Col default to 1.
	Row, Col                       int
	Desc, XTitle, Y1Title, Y2Title string
	LegendGroup                    string
}

// AddChart plots columns of f into the chart stored under id, creating it
// on first use, and returns the chart plotted into.
func (g *GUI) AddChart(id string, f *frame.Frame, x string, y1, y2 []string, req ChartRequest) (*chart.Chart, error) {
	ch := req.Chart
	if ch == nil {
		var ok bool
		if ch, ok = g.charts[id]; !ok {
			ch = chart.New(append([]chart.Option{chart.WithLogger(g.logger)}, g.chartOpts...)...)
			g.charts[id] = ch
		}
	}
	err := ch.Plot(f, x, y1, chart.PlotOptions{
		Y2:          y2,
		Y1Styles:    g.chartTypes,
		Y2Styles:    g.chartTypes,
		Colors:      g.chartColors,
		LegendGroup: req.LegendGroup,
		Row:         req.Row,
		Col:         req.Col,
		Title:       req.Desc,
		XTitle:      req.XTitle,
		Y1Title:     req.Y1Title,
		Y2Title:     req.Y2Title,
	})
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", id, err)
	}
	return ch, nil
}

// Chart returns the chart stored under id.
func (g *GUI) Chart(id string) (*chart.Chart, bool) {
	ch, ok := g.charts[id]
	return ch, ok
}

// PlotRequest holds the optional arguments of PlotChart.
type PlotRequest struct {
	Desc             string
	SharedX, SharedY bool
	Width, Height    int
	// Props are layout options, see chart.WithLayoutOptions.
	Props map[string]any
}

// PlotChart assembles the chart stored under id and displays it in the
// widget node.
func (g *GUI) PlotChart(ctx context.Context, id, node string, req PlotRequest) error {
	ctx, span := otel.Tracer("dashkit/gui").Start(ctx, "gui.plot_chart")
	defer span.End()
	span.SetAttributes(attribute.String("gui.chart", id), attribute.String("gui.node", node))

	h, ok := g.widgets[node]
	if !ok {
		return fmt.Errorf("chart %q cannot be placed: %w", id, g.notFound(node))
	}
	ch, ok := g.charts[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrChartNotFound, id)
	}
	fig, err := ch.Final(
		chart.WithContext(ctx),
		chart.WithTitle(req.Desc),
		chart.WithSize(req.Width, req.Height),
		chart.WithSharedAxes(req.SharedX, req.SharedY),
		chart.WithLayoutOptions(req.Props),
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("chart %q: %w", id, err)
	}
	if fig == nil {
		return nil
	}
	return g.tk.DisplayChart(h, fig)
}

// ClearChart drops the chart stored under id.
func (g *GUI) ClearChart(id string) {
	delete(g.charts, id)
}

// ClearCharts drops every stored chart.
func (g *GUI) ClearCharts() {
	g.charts = make(map[string]*chart.Chart)
}
