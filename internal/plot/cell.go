package plot

import (
	"errors"
	"image"
	"math"

	"dashkit/internal/chart"
	"dashkit/internal/frame"

	"github.com/spf13/cast"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// errNothingToDraw marks an xy cell without any drawable series.
var errNothingToDraw = errors.New("no series with at least two points")

// cellChart builds the go-chart chart of an xy cell.
func cellChart(cell *chart.FigureCell, layout chart.Layout, w, h int) (*gochart.Chart, error) {
	bg := parseColor(layout.PaperBGColor, drawing.ColorWhite)
	plotBG := parseColor(layout.PlotBGColor, bg)

	kind := xNumeric
	if layout.XAxisType != "category" {
		for _, tr := range cell.Traces {
			if s, ok := tr.Drawable.(*chart.Series); ok {
				kind = classifyX(s.X)
				break
			}
		}
	} else {
		kind = xCategory
	}
	cats := newCategories()

	ch := &gochart.Chart{
		Title:      cell.Title,
		Width:      w,
		Height:     h,
		Background: gochart.Style{FillColor: bg, Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		Canvas:     gochart.Style{FillColor: plotBG},
		XAxis:      xAxis(cell.XAxis),
		YAxis:      yAxis(cell.YAxis),
	}
	if cell.Y2Axis != nil {
		ch.YAxisSecondary = yAxis(*cell.Y2Axis)
	}
	if kind == xTime {
		ch.XAxis.ValueFormatter = gochart.TimeValueFormatter
	}

	legend := false
	for i, tr := range cell.Traces {
		s, ok := tr.Drawable.(*chart.Series)
		if !ok {
			continue
		}
		logY := cell.YAxis.Type == "log"
		if tr.Secondary && cell.Y2Axis != nil {
			logY = cell.Y2Axis.Type == "log"
		}
		gs, ok := toSeries(s, tr.Secondary, i, kind, cats, logY)
		if !ok {
			continue
		}
		ch.Series = append(ch.Series, gs)
		legend = legend || s.ShowLegend
	}
	if len(ch.Series) == 0 {
		return nil, errNothingToDraw
	}
	if kind == xCategory {
		ch.XAxis.Ticks = cats.ticks()
	}
	if legend {
		ch.Elements = []gochart.Renderable{gochart.Legend(ch)}
	}
	return ch, nil
}

func xAxis(a chart.Axis) gochart.XAxis {
	x := gochart.XAxis{Name: a.Title}
	if a.TickAngle != nil {
		x.TickStyle = gochart.Style{TextRotationDegrees: *a.TickAngle}
	}
	return x
}

func yAxis(a chart.Axis) gochart.YAxis {
	y := gochart.YAxis{Name: a.Title}
	if a.Type == "log" {
		y.Name = a.Title + " (log10)"
	}
	if a.TickAngle != nil {
		y.TickStyle = gochart.Style{TextRotationDegrees: *a.TickAngle}
	}
	if a.Range != nil && a.Type != "log" {
		y.Range = &gochart.ContinuousRange{Min: a.Range[0], Max: a.Range[1]}
	}
	return y
}

// barsOnly reports whether every trace of the cell is a bar series.
func barsOnly(cell *chart.FigureCell) bool {
	if len(cell.Traces) == 0 {
		return false
	}
	for _, tr := range cell.Traces {
		s, ok := tr.Drawable.(*chart.Series)
		if !ok || s.Type != chart.Bar {
			return false
		}
	}
	return true
}

// renderBars draws a bar-only cell. One series yields a plain bar chart;
// several are stacked per x label.
func renderBars(cell *chart.FigureCell, layout chart.Layout, w, h int) (image.Image, error) {
	bg := gochart.Style{
		FillColor: parseColor(layout.PaperBGColor, drawing.ColorWhite),
		Padding:   gochart.Box{Top: 32, Left: 16, Right: 16, Bottom: 16},
	}
	canvas := gochart.Style{FillColor: parseColor(layout.PlotBGColor, drawing.ColorWhite)}
	out := &gochart.ImageWriter{}

	if len(cell.Traces) == 1 {
		s := cell.Traces[0].Drawable.(*chart.Series)
		bars := barValues(s, 0)
		if len(bars) == 0 {
			return nil, errNothingToDraw
		}
		bc := gochart.BarChart{
			Title:      cell.Title,
			Width:      w,
			Height:     h,
			Background: bg,
			Canvas:     canvas,
			BarWidth:   barWidth(w, len(bars)),
			BarSpacing: barWidth(w, len(bars)) / 2,
			Bars:       bars,
			YAxis:      yAxis(cell.YAxis),
		}
		if err := bc.Render(gochart.PNG, out); err != nil {
			return nil, err
		}
		return out.Image()
	}

	var order []string
	stacks := make(map[string]*gochart.StackedBar)
	for i, tr := range cell.Traces {
		s := tr.Drawable.(*chart.Series)
		for _, v := range barValues(s, i) {
			sb, ok := stacks[v.Label]
			if !ok {
				sb = &gochart.StackedBar{Name: v.Label}
				stacks[v.Label] = sb
				order = append(order, v.Label)
			}
			v.Label = s.Label
			sb.Values = append(sb.Values, v)
		}
	}
	if len(order) == 0 {
		return nil, errNothingToDraw
	}
	sbc := gochart.StackedBarChart{
		Title:      cell.Title,
		Width:      w,
		Height:     h,
		Background: bg,
		Canvas:     canvas,
	}
	for _, label := range order {
		sbc.Bars = append(sbc.Bars, *stacks[label])
	}
	if err := sbc.Render(gochart.PNG, out); err != nil {
		return nil, err
	}
	return out.Image()
}

func barValues(s *chart.Series, idx int) []gochart.Value {
	ys := frame.ToFloats(s.Y)
	fill := seriesColor(colorOf(s), idx)
	var out []gochart.Value
	for i := 0; i < len(s.X) && i < len(ys); i++ {
		if math.IsNaN(ys[i]) {
			continue
		}
		out = append(out, gochart.Value{
			Label: cast.ToString(s.X[i]),
			Value: ys[i],
			Style: gochart.Style{FillColor: fill, StrokeColor: fill},
		})
	}
	return out
}

func barWidth(w, n int) int {
	if n == 0 {
		return 0
	}
	return max(4, w/(n*2))
}
