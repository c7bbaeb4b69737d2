package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cast"

	"dashkit/internal/chart"
	"dashkit/internal/frame"
	"dashkit/internal/ui"
	"dashkit/internal/ui/textutil"
)

const (
	cellGap     = 2
	chartHeight = 6
	barHeight   = 6
	maxBars     = 12
)

// seriesStyles colors the series of one chart in push order.
var seriesStyles = []lipgloss.Style{
	ui.Styles.Chart,
	lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorHighlight)),
	lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorAccent)),
	lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
}

// renderFigure draws a figure as text: one block per cell, laid out on
// the figure grid. Line-like series are drawn as braille line charts,
// one per y axis, and bar series as bar charts.
func renderFigure(fig *chart.Figure, width int) string {
	cols := max(1, fig.Cols)
	cellW := max(20, (width-cellGap*(cols-1))/cols)

	var rows []string
	if fig.Layout.Title != "" {
		rows = append(rows, ui.Styles.Title.Render(fig.Layout.Title))
	}
	for r := 1; r <= fig.Rows; r++ {
		blocks := make([]string, 0, 2*cols)
		for c := 1; c <= cols; c++ {
			if c > 1 {
				blocks = append(blocks, strings.Repeat(" ", cellGap))
			}
			block := ""
			if cell, ok := fig.Cell(r, c); ok {
				block = renderCell(cell, cellW)
			}
			blocks = append(blocks, lipgloss.NewStyle().Width(cellW).Render(block))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}
	return strings.Join(rows, "\n")
}

func renderCell(cell *chart.FigureCell, width int) string {
	var lines []string
	if cell.Title != "" {
		lines = append(lines, ui.Styles.Title.Render(textutil.Truncate(cell.Title, width)))
	}
	if cell.Spec.Kind == chart.KindTable {
		for _, tr := range cell.Traces {
			if t, ok := tr.Drawable.(*chart.Table); ok {
				lines = append(lines, renderTable(t.Header, t.TextRows()))
			}
		}
		return strings.Join(lines, "\n")
	}

	var y1, y2 []chart.Trace
	for _, tr := range cell.Traces {
		s, ok := tr.Drawable.(*chart.Series)
		if !ok {
			continue
		}
		axis := cellAxis(cell, tr.Secondary)
		if s.Type == chart.Bar {
			lines = append(lines, ui.Styles.Muted.Render(textutil.Truncate(seriesLabel(tr), width)))
			lines = append(lines, renderBars(s, axis, width))
			continue
		}
		if tr.Secondary {
			y2 = append(y2, tr)
		} else {
			y1 = append(y1, tr)
		}
	}
	for _, group := range [][]chart.Trace{y1, y2} {
		if len(group) == 0 {
			continue
		}
		lines = append(lines, renderLines(group, cellAxis(cell, group[0].Secondary), width))
		lines = append(lines, legend(group, width))
	}
	if axes := axisLegend(cell); axes != "" {
		lines = append(lines, ui.Styles.Muted.Render(textutil.Truncate(axes, width)))
	}
	return strings.Join(lines, "\n")
}

// cellAxis is the y axis a trace is drawn against.
func cellAxis(cell *chart.FigureCell, secondary bool) chart.Axis {
	if secondary && cell.Y2Axis != nil {
		return *cell.Y2Axis
	}
	return cell.YAxis
}

func seriesLabel(tr chart.Trace) string {
	name := tr.Drawable.Name()
	if tr.Secondary {
		name += " ²"
	}
	return name
}

// legend lists each series of a chart with its last value, in the
// series' chart color.
func legend(traces []chart.Trace, width int) string {
	parts := make([]string, 0, len(traces))
	for i, tr := range traces {
		s := tr.Drawable.(*chart.Series)
		part := seriesLabel(tr)
		if last, ok := lastValue(s); ok {
			part += " " + formatNumber(last)
		}
		parts = append(parts, seriesStyles[i%len(seriesStyles)].Render(part))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, "  "))
}

func lastValue(s *chart.Series) (float64, bool) {
	ys := frame.ToFloats(s.Y)
	for i := len(ys) - 1; i >= 0; i-- {
		if !math.IsNaN(ys[i]) {
			return ys[i], true
		}
	}
	return 0, false
}

func yValues(s *chart.Series, logY bool) []float64 {
	ys := frame.ToFloats(s.Y)
	if !logY {
		return ys
	}
	for i, v := range ys {
		if v > 0 {
			ys[i] = math.Log10(v)
		} else {
			ys[i] = math.NaN()
		}
	}
	return ys
}

// yRange is the axis range when one is set, otherwise the extent of
// values. Log axis ranges are exponents, like the values yValues returns.
func yRange(axis chart.Axis, values ...[]float64) (lo, hi float64) {
	if axis.Range != nil {
		lo, hi = axis.Range[0], axis.Range[1]
	} else {
		lo, hi = math.Inf(1), math.Inf(-1)
		for _, ys := range values {
			for _, v := range ys {
				if !math.IsNaN(v) {
					lo = math.Min(lo, v)
					hi = math.Max(hi, v)
				}
			}
		}
		if math.IsInf(lo, 1) {
			lo, hi = 0, 1
		}
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// xTimes places x values on the time axis of a time series chart. Dates
// are used as they are. Numbers become seconds since the epoch and
// anything else falls back to the point index.
func xTimes(xs []any) ([]time.Time, bool) {
	if frame.IsTime(xs) {
		return frame.ToTimes(xs), true
	}
	out := make([]time.Time, len(xs))
	for i, x := range xs {
		f, err := cast.ToFloat64E(x)
		if err != nil {
			f = float64(i)
		}
		out[i] = time.Unix(0, 0).UTC().Add(time.Duration(f * float64(time.Second)))
	}
	return out, false
}

// renderLines draws the series of one y axis on a shared braille chart.
func renderLines(traces []chart.Trace, axis chart.Axis, width int) string {
	logY := axis.Type == "log"
	type points struct {
		xs []time.Time
		ys []float64
	}
	series := make([]points, len(traces))
	ys := make([][]float64, len(traces))
	isTime := true
	var start, end time.Time
	for i, tr := range traces {
		s := tr.Drawable.(*chart.Series)
		xs, ok := xTimes(s.X)
		isTime = isTime && ok
		series[i] = points{xs: xs, ys: yValues(s, logY)}
		ys[i] = series[i].ys
		for _, x := range xs {
			if start.IsZero() || x.Before(start) {
				start = x
			}
			if end.IsZero() || x.After(end) {
				end = x
			}
		}
	}
	if !end.After(start) {
		end = start.Add(time.Second)
	}
	lo, hi := yRange(axis, ys...)

	lc := tslc.New(width, chartHeight)
	lc.SetXStep(1)
	lc.SetStyle(ui.Styles.Chart)
	lc.AxisStyle = ui.Styles.Muted
	lc.LabelStyle = ui.Styles.Muted
	lc.SetTimeRange(start, end)
	lc.SetViewTimeRange(start, end)
	lc.SetYRange(lo, hi)
	lc.SetViewYRange(lo, hi)
	lc.Model.XLabelFormatter = xLabelFormatter(isTime)
	lc.Model.YLabelFormatter = yLabelFormatter(logY)
	for i, p := range series {
		name := fmt.Sprintf("%d", i)
		lc.SetDataSetStyle(name, seriesStyles[i%len(seriesStyles)])
		for j, x := range p.xs {
			if j < len(p.ys) && !math.IsNaN(p.ys[j]) {
				lc.PushDataSet(name, tslc.TimePoint{Time: x, Value: p.ys[j]})
			}
		}
	}
	lc.DrawBrailleAll()
	return lc.View()
}

func xLabelFormatter(isTime bool) linechart.LabelFormatter {
	return func(_ int, v float64) string {
		if isTime {
			return time.Unix(int64(v), 0).UTC().Format(DateLayout)
		}
		return formatNumber(v)
	}
}

func yLabelFormatter(logY bool) linechart.LabelFormatter {
	return func(_ int, v float64) string {
		if logY {
			v = math.Pow(10, v)
		}
		return formatNumber(v)
	}
}

// barData turns the last maxBars points of s into bar chart data.
// Missing and non-positive values draw as empty bars.
func barData(s *chart.Series, logY bool) []barchart.BarData {
	ys := yValues(s, logY)
	xs := s.X
	if len(ys) > maxBars {
		ys = ys[len(ys)-maxBars:]
		xs = xs[max(0, len(xs)-maxBars):]
	}
	data := make([]barchart.BarData, len(ys))
	for i, y := range ys {
		if math.IsNaN(y) || y < 0 {
			y = 0
		}
		label := ""
		if i < len(xs) {
			label = xLabel(xs[i])
		}
		data[i] = barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: s.Label, Value: y, Style: ui.Styles.Chart}},
		}
	}
	return data
}

// renderBars draws s as a bar chart. An axis range caps the bar scale.
func renderBars(s *chart.Series, axis chart.Axis, width int) string {
	var opts []barchart.Option
	if axis.Range != nil {
		opts = append(opts, barchart.WithMaxValue(axis.Range[1]))
	}
	bc := barchart.New(width, barHeight, opts...)
	for _, d := range barData(s, axis.Type == "log") {
		bc.Push(d)
	}
	bc.Draw()
	return bc.View()
}

func xLabel(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(DateLayout)
	}
	return cast.ToString(v)
}

func axisLegend(cell *chart.FigureCell) string {
	var parts []string
	if cell.XAxis.Title != "" {
		parts = append(parts, "x: "+cell.XAxis.Title)
	}
	if cell.YAxis.Title != "" {
		parts = append(parts, "y: "+cell.YAxis.Title)
	}
	if cell.Y2Axis != nil && cell.Y2Axis.Title != "" {
		parts = append(parts, "y²: "+cell.Y2Axis.Title)
	}
	return strings.Join(parts, "  ")
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%.4g", f)
}

// renderTable draws rows under header with a lipgloss table.
func renderTable(header []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(ui.Styles.Muted).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return ui.Styles.Title.Padding(0, 1)
			}
			return ui.Styles.Normal.Padding(0, 1)
		})
	return t.Render()
}

// renderFrame draws every column of f.
func renderFrame(f *frame.Frame) string {
	cols := f.Columns()
	rows := make([][]string, f.Len())
	for r := range rows {
		rows[r] = make([]string, len(cols))
	}
	for c, name := range cols {
		col, _ := f.Column(name)
		for r, v := range col.Values {
			rows[r][c] = cellText(v)
		}
	}
	return renderTable(cols, rows)
}

func cellText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case float64:
		return formatNumber(v)
	}
	return xLabel(v)
}

// renderLink renders a markdown link. Terminals that support hyperlinks
// make it clickable.
func renderLink(link, title string, width int) (string, error) {
	if title == "" {
		title = link
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(fmt.Sprintf("[%s](%s)", title, link))
	if err != nil {
		return "", fmt.Errorf("render link: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}
