package plot

import (
	"math"
	"strings"
	"time"

	"dashkit/internal/chart"
	"dashkit/internal/frame"

	"github.com/spf13/cast"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// xKind classifies the x values of a cell.
type xKind int

const (
	xNumeric xKind = iota
	xTime
	xCategory
)

func classifyX(values []any) xKind {
	if frame.IsTime(values) {
		return xTime
	}
	for _, f := range frame.ToFloats(values) {
		if !math.IsNaN(f) {
			return xNumeric
		}
	}
	return xCategory
}

// categories maps distinct x labels to positions in first-seen order.
type categories struct {
	index  map[string]float64
	labels []string
}

func newCategories() *categories {
	return &categories{index: make(map[string]float64)}
}

func (c *categories) pos(v any) float64 {
	label := cast.ToString(v)
	if p, ok := c.index[label]; ok {
		return p
	}
	p := float64(len(c.labels))
	c.index[label] = p
	c.labels = append(c.labels, label)
	return p
}

func (c *categories) ticks() []gochart.Tick {
	ticks := make([]gochart.Tick, len(c.labels))
	for i, l := range c.labels {
		ticks[i] = gochart.Tick{Value: float64(i), Label: l}
	}
	return ticks
}

// seriesStyle translates a series' type and mode to a go-chart style.
// Marker-only series keep a transparent stroke so no line is drawn.
func seriesStyle(s *chart.Series, c drawing.Color) gochart.Style {
	width := float64(chart.DefaultLineWidth)
	if s.Marker != nil && s.Marker.LineWidth > 0 {
		width = s.Marker.LineWidth
	}
	points := gochart.Style{
		StrokeWidth: 0,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    width + 2,
		DotColor:    c,
	}
	switch s.Type {
	case chart.Dots:
		return points
	case chart.Area, chart.Bar:
		return gochart.Style{StrokeColor: c, StrokeWidth: width, FillColor: c.WithAlpha(96)}
	case chart.Scatter:
		hasLines := s.Mode == "" || strings.Contains(s.Mode, "lines")
		hasMarkers := strings.Contains(s.Mode, "markers")
		switch {
		case hasMarkers && !hasLines:
			return points
		case hasMarkers:
			return gochart.Style{StrokeColor: c, StrokeWidth: width, DotWidth: width + 2, DotColor: c}
		}
	}
	return gochart.Style{StrokeColor: c, StrokeWidth: width}
}

func colorOf(s *chart.Series) string {
	switch {
	case s.Marker != nil && s.Marker.Color != "":
		return s.Marker.Color
	case s.Fill != "":
		return s.Fill
	default:
		return s.LineColor
	}
}

// toSeries converts one chart series. Points with a missing x or y are
// dropped; series left with fewer than two points are skipped.
func toSeries(s *chart.Series, secondary bool, idx int, kind xKind, cats *categories, logY bool) (gochart.Series, bool) {
	ys := frame.ToFloats(s.Y)
	style := seriesStyle(s, seriesColor(colorOf(s), idx))
	axis := gochart.YAxisPrimary
	if secondary {
		axis = gochart.YAxisSecondary
	}
	if logY {
		ys = log10(ys)
	}

	if kind == xTime {
		times := frame.ToTimes(s.X)
		var xv []time.Time
		var yv []float64
		for i := 0; i < len(times) && i < len(ys); i++ {
			if times[i].IsZero() || math.IsNaN(ys[i]) {
				continue
			}
			xv = append(xv, times[i])
			yv = append(yv, ys[i])
		}
		if len(xv) < 2 {
			return nil, false
		}
		return gochart.TimeSeries{Name: s.Label, XValues: xv, YValues: yv, Style: style, YAxis: axis}, true
	}

	var xs []float64
	if kind == xCategory {
		xs = make([]float64, len(s.X))
		for i, v := range s.X {
			xs[i] = cats.pos(v)
		}
	} else {
		xs = frame.ToFloats(s.X)
	}
	var xv, yv []float64
	for i := 0; i < len(xs) && i < len(ys); i++ {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		xv = append(xv, xs[i])
		yv = append(yv, ys[i])
	}
	if len(xv) < 2 {
		return nil, false
	}
	return gochart.ContinuousSeries{Name: s.Label, XValues: xv, YValues: yv, Style: style, YAxis: axis}, true
}

func log10(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v <= 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Log10(v)
	}
	return out
}
