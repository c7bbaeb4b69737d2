package chart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"dashkit/internal/frame"
	"dashkit/internal/logging"
	"dashkit/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func line(name string) *Series {
	return NewSeries(Line, []any{1, 2}, []any{3, 4}, name, SeriesOptions{})
}

func testFrame() *frame.Frame {
	return frame.MustNew(
		frame.Column{Name: "x", Values: []any{1, 2, 3}},
		frame.Column{Name: "y1", Values: []any{1, 2, 3}},
		frame.Column{Name: "y2", Values: []any{90, 30, 34}},
		frame.Column{Name: "z", Values: []any{5, 5, 5}},
	)
}

func TestAddTrace_SecondaryIsMonotonicOR(t *testing.T) {
	tests := []struct {
		name  string
		flags []bool
		want  bool
	}{
		{"all primary", []bool{false, false}, false},
		{"first secondary", []bool{true, false, false}, true},
		{"last secondary", []bool{false, false, true}, true},
		{"single secondary", []bool{true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			for _, f := range tt.flags {
				c.AddTrace(line("s"), KindXY, 1, 1, f)
			}
			spec, ok := c.Spec(1, 1)
			require.True(t, ok)
			assert.Equal(t, tt.want, spec.Secondary)
			assert.Len(t, c.Traces(1, 1), len(tt.flags))
		})
	}
}

func TestAddTrace_KindFixedOnFirstInsert(t *testing.T) {
	c := New()
	c.AddTrace(line("a"), KindXY, 1, 1, false)
	c.AddTrace(&Table{}, KindTable, 1, 1, false)
	spec, _ := c.Spec(1, 1)
	assert.Equal(t, KindXY, spec.Kind)
}

func TestClear(t *testing.T) {
	c := New()
	c.AddTrace(line("a"), KindXY, 1, 1, true)
	c.SetTitle(1, 1, "T", "", "", "")
	_, err := c.Final()
	require.NoError(t, err)

	c.Clear()
	assert.True(t, c.Empty())
	assert.Nil(t, c.Figure())
	_, ok := c.Title(1, 1)
	assert.False(t, ok)

	c.AddTrace(line("b"), KindXY, 1, 1, false)
	spec, _ := c.Spec(1, 1)
	assert.False(t, spec.Secondary, "secondary flag resets only through Clear")
}

func TestPlot_SubstringMatchSelectsColumns(t *testing.T) {
	c := New()
	require.NoError(t, c.Plot(testFrame(), "x", []string{"y"}, PlotOptions{}))

	traces := c.Traces(1, 1)
	require.Len(t, traces, 2)
	assert.Equal(t, "y1", traces[0].Drawable.Name())
	assert.Equal(t, "y2", traces[1].Drawable.Name())
	for _, tr := range traces {
		assert.False(t, tr.Secondary)
	}
}

func TestPlot_CaseInsensitive(t *testing.T) {
	c := New()
	require.NoError(t, c.Plot(testFrame(), "x", []string{"Z"}, PlotOptions{}))
	require.Len(t, c.Traces(1, 1), 1)
	assert.Equal(t, "z", c.Traces(1, 1)[0].Drawable.Name())
}

func TestPlot_SecondaryRouting(t *testing.T) {
	c := New()
	err := c.Plot(testFrame(), "x", []string{"y1"}, PlotOptions{Y2: []string{"y2", "z"}, Row: 2, Col: 1})
	require.NoError(t, err)

	traces := c.Traces(2, 1)
	require.Len(t, traces, 3)
	assert.False(t, traces[0].Secondary)
	assert.Equal(t, "y1", traces[0].Drawable.Name())
	// secondary series follow column order
	assert.Equal(t, "y2", traces[1].Drawable.Name())
	assert.Equal(t, "z", traces[2].Drawable.Name())
	assert.True(t, traces[1].Secondary)
	assert.True(t, traces[2].Secondary)

	spec, _ := c.Spec(2, 1)
	assert.True(t, spec.Secondary)
}

func TestPlot_RequestedNameOrderForPrimary(t *testing.T) {
	c := New()
	require.NoError(t, c.Plot(testFrame(), "x", []string{"z", "y"}, PlotOptions{}))
	var names []string
	for _, tr := range c.Traces(1, 1) {
		names = append(names, tr.Drawable.Name())
	}
	assert.Equal(t, []string{"z", "y1", "y2"}, names)
}

func TestPlot_ColumnOrderForSecondary(t *testing.T) {
	c := New()
	require.NoError(t, c.Plot(testFrame(), "x", nil, PlotOptions{Y2: []string{"Z", "y"}}))
	var names []string
	for _, tr := range c.Traces(1, 1) {
		assert.True(t, tr.Secondary)
		names = append(names, tr.Drawable.Name())
	}
	assert.Equal(t, []string{"y1", "y2", "z"}, names)
}

func TestPlot_DefaultStyleIsScatter(t *testing.T) {
	c := New()
	require.NoError(t, c.Plot(testFrame(), "x", []string{"z"}, PlotOptions{}))
	s := c.Traces(1, 1)[0].Drawable.(*Series)
	assert.Equal(t, Scatter, s.Type)
	assert.True(t, s.ShowLegend)
	assert.Equal(t, []any{5, 5, 5}, s.Y)
	assert.Equal(t, []any{1, 2, 3}, s.X)
}

func TestPlot_BarStyle(t *testing.T) {
	c := New()
	err := c.Plot(testFrame(), "x", []string{"z"}, PlotOptions{Y1Styles: Styles{"z": {Type: Bar}}})
	require.NoError(t, err)
	s := c.Traces(1, 1)[0].Drawable.(*Series)
	assert.Equal(t, Bar, s.Type)
}

func TestPlot_SetsTitle(t *testing.T) {
	c := New()
	err := c.Plot(testFrame(), "x", []string{"y1"}, PlotOptions{Title: "T", XTitle: "X", Y1Title: "Y1", Y2Title: "Y2", Col: 2})
	require.NoError(t, err)
	title, ok := c.Title(1, 2)
	require.True(t, ok)
	assert.Equal(t, CellTitle{Title: "T", XTitle: "X", Y1Title: "Y1", Y2Title: "Y2"}, title)
}

func TestPlot_MissingXColumn(t *testing.T) {
	c := New()
	err := c.Plot(testFrame(), "when", []string{"y"}, PlotOptions{})
	assert.Error(t, err)
	assert.True(t, c.Empty())
}

func TestPlotTable(t *testing.T) {
	c := New()
	c.PlotTable(testFrame(), 1, 1, "My table", []string{"", ".2f"})
	spec, ok := c.Spec(1, 1)
	require.True(t, ok)
	assert.Equal(t, KindTable, spec.Kind)

	tbl := c.Traces(1, 1)[0].Drawable.(*Table)
	assert.Equal(t, []string{"x", "y1", "y2", "z"}, tbl.Header)
	assert.Equal(t, []any{90, 30, 34}, tbl.Cells[2])
	assert.Equal(t, []any{1, 1, 90, 5}, tbl.Rows()[0])
	assert.Equal(t, []string{TableRowOddColor, TableRowEvenColor, TableRowOddColor}, tbl.RowColors)
}

func TestFinal_NoCellsReturnsNil(t *testing.T) {
	var buf bytes.Buffer
	c := New(WithLogger(logging.New(&buf, logging.LevelInfo)))

	fig, err := c.Final(WithTitle("empty"))
	assert.NoError(t, err)
	assert.Nil(t, fig)
	assert.Contains(t, buf.String(), "no chart available")
}

func TestFinal_EndToEnd(t *testing.T) {
	c := New()
	a, b := line("a"), line("b")
	c.AddTrace(a, KindXY, 1, 1, false)
	c.AddTrace(b, KindXY, 1, 1, true)
	c.SetTitle(1, 1, "T", "X", "Y1", "Y2")

	fig, err := c.Final()
	require.NoError(t, err)
	require.NotNil(t, fig)
	assert.Same(t, fig, c.Figure())

	assert.Equal(t, 1, fig.Rows)
	assert.Equal(t, 1, fig.Cols)
	assert.Equal(t, [][]CellSpec{{{Kind: KindXY, Secondary: true}}}, fig.Specs)
	assert.Equal(t, []string{"T"}, fig.SubplotTitles)
	assert.True(t, fig.SharedX)
	assert.True(t, fig.SharedY)

	cell, ok := fig.Cell(1, 1)
	require.True(t, ok)
	require.Len(t, cell.Traces, 2)
	assert.Same(t, a, cell.Traces[0].Drawable)
	assert.Same(t, b, cell.Traces[1].Drawable)
	assert.Equal(t, "X", cell.XAxis.Title)
	assert.Equal(t, "Y1", cell.YAxis.Title)
	require.NotNil(t, cell.Y2Axis)
	assert.Equal(t, "Y2", cell.Y2Axis.Title)

	assert.Equal(t, DefaultTemplate, fig.Layout.Template)
	assert.Equal(t, DefaultBackgroundColor, fig.Layout.PaperBGColor)
	assert.True(t, fig.Layout.Autosize)
}

func TestFinal_SynthesizesEmptyTitles(t *testing.T) {
	c := New()
	c.AddTrace(line("a"), KindXY, 1, 1, false)
	c.AddTrace(line("b"), KindXY, 1, 2, false)
	c.AddTrace(line("c"), KindXY, 2, 1, false)
	c.SetTitle(1, 2, "right", "", "", "")

	fig, err := c.Final()
	require.NoError(t, err)
	assert.Equal(t, []string{"", "right", ""}, fig.SubplotTitles)
	assert.Equal(t, 2, fig.Cols)
	assert.Equal(t, []CellSpec{{Kind: KindXY}, {}}, fig.Specs[1], "short rows are padded")

	title, ok := c.Title(2, 1)
	require.True(t, ok, "untitled cells get a stored default")
	assert.Equal(t, CellTitle{}, title)

	cell, _ := fig.Cell(1, 1)
	assert.Nil(t, cell.Y2Axis)
}

func TestFinal_TableCellSpec(t *testing.T) {
	c := New()
	c.AddTrace(&Table{}, KindTable, 1, 1, true)
	fig, err := c.Final()
	require.NoError(t, err)
	assert.Equal(t, CellSpec{Kind: KindTable}, fig.Specs[0][0])
}

func TestFinal_SparseGrid(t *testing.T) {
	tests := []struct {
		name  string
		cells [][2]int
	}{
		{"missing row", [][2]int{{1, 1}, {3, 1}}},
		{"missing column", [][2]int{{1, 1}, {1, 3}}},
		{"row starts at 2", [][2]int{{2, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			for _, rc := range tt.cells {
				c.AddTrace(line("s"), KindXY, rc[0], rc[1], false)
			}
			fig, err := c.Final()
			assert.Nil(t, fig)
			assert.True(t, errors.Is(err, ErrSparseGrid))
		})
	}
}

func TestFinal_Spacing(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		wantV      float64
		wantH      float64
	}{
		{"small", 1, 1, VerticalSpacing, HorizontalSpacing},
		{"nine rows", 9, 1, VerticalSpacing, HorizontalSpacing},
		{"eleven rows", 11, 1, CompactSpacing, HorizontalSpacing},
		{"nine cols", 1, 9, VerticalSpacing, HorizontalSpacing},
		{"eleven cols", 1, 11, VerticalSpacing, CompactSpacing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			for r := 1; r <= tt.rows; r++ {
				for col := 1; col <= tt.cols; col++ {
					c.AddTrace(line("s"), KindXY, r, col, false)
				}
			}
			fig, err := c.Final()
			require.NoError(t, err)
			assert.Equal(t, tt.wantV, fig.VerticalSpacing)
			assert.Equal(t, tt.wantH, fig.HorizontalSpacing)
			assert.Len(t, fig.SubplotTitles, tt.rows*tt.cols)
		})
	}
}

func TestFinal_AxisSettings(t *testing.T) {
	c := New()
	c.AddTrace(line("a"), KindXY, 1, 1, false)
	c.AddTrace(line("b"), KindXY, 1, 2, true)

	fig, err := c.Final(
		WithTitle("Test Charts"),
		WithSize(800, 600),
		WithXTickAngle(45),
		WithYTickAngle(-30),
		WithY1Range(0, 10),
		WithY2Range(0, 100),
		WithSharedAxes(false, true),
	)
	require.NoError(t, err)

	assert.Equal(t, "Test Charts", fig.Layout.Title)
	assert.False(t, fig.Layout.Autosize)
	assert.Equal(t, 800, fig.Layout.Width)
	assert.Equal(t, 600, fig.Layout.Height)
	assert.False(t, fig.SharedX)
	assert.True(t, fig.SharedY)

	left, _ := fig.Cell(1, 1)
	assert.Equal(t, 45.0, *left.XAxis.TickAngle)
	assert.Equal(t, -30.0, *left.YAxis.TickAngle)
	assert.Equal(t, [2]float64{0, 10}, *left.YAxis.Range)
	assert.Nil(t, left.Y2Axis)

	right, _ := fig.Cell(1, 2)
	require.NotNil(t, right.Y2Axis)
	assert.Equal(t, [2]float64{0, 100}, *right.Y2Axis.Range)
	assert.Equal(t, -30.0, *right.Y2Axis.TickAngle)
}

func TestFinal_Y2FallsBackToY1Range(t *testing.T) {
	c := New()
	c.AddTrace(line("a"), KindXY, 1, 1, true)
	fig, err := c.Final(WithY1Range(1, 2))
	require.NoError(t, err)
	cell, _ := fig.Cell(1, 1)
	assert.Equal(t, [2]float64{1, 2}, *cell.Y2Axis.Range)
}

func TestFinal_SizeNeedsBothDimensions(t *testing.T) {
	c := New()
	c.AddTrace(line("a"), KindXY, 1, 1, false)
	fig, err := c.Final(WithSize(800, 0))
	require.NoError(t, err)
	assert.True(t, fig.Layout.Autosize)
	assert.Zero(t, fig.Layout.Width)
}

func TestFinal_LayoutOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  map[string]any
		check func(t *testing.T, fig *Figure)
	}{
		{
			name: "category axis",
			opts: map[string]any{"cat": "Category"},
			check: func(t *testing.T, fig *Figure) {
				assert.Equal(t, "category", fig.Layout.XAxisType)
			},
		},
		{
			name: "category needs exact value",
			opts: map[string]any{"cat": "category"},
			check: func(t *testing.T, fig *Figure) {
				assert.Empty(t, fig.Layout.XAxisType)
			},
		},
		{
			name: "stack",
			opts: map[string]any{"stack": false},
			check: func(t *testing.T, fig *Figure) {
				assert.Equal(t, "stack", fig.Layout.BarMode)
			},
		},
		{
			name: "log primary and secondary",
			opts: map[string]any{"logy": true, "logy1": 1},
			check: func(t *testing.T, fig *Figure) {
				cell, _ := fig.Cell(1, 1)
				assert.Equal(t, "log", cell.YAxis.Type)
				assert.Equal(t, "log", cell.Y2Axis.Type)
			},
		},
		{
			name: "log from loose strings",
			opts: map[string]any{"logy": "yes", "logy1": "false"},
			check: func(t *testing.T, fig *Figure) {
				cell, _ := fig.Cell(1, 1)
				assert.Equal(t, "log", cell.YAxis.Type)
				assert.Empty(t, cell.Y2Axis.Type)
			},
		},
		{
			name: "log disabled",
			opts: map[string]any{"logy": false},
			check: func(t *testing.T, fig *Figure) {
				cell, _ := fig.Cell(1, 1)
				assert.Empty(t, cell.YAxis.Type)
			},
		},
		{
			name: "legend without position",
			opts: map[string]any{"orientation": "h", "xanchor": "center", "yanchor": "bottom"},
			check: func(t *testing.T, fig *Figure) {
				require.NotNil(t, fig.Layout.Legend)
				assert.Equal(t, "h", fig.Layout.Legend.Orientation)
				assert.Nil(t, fig.Layout.Legend.X)
				assert.Nil(t, fig.Layout.Legend.Y)
			},
		},
		{
			name: "legend with y only",
			opts: map[string]any{"orientation": "v", "xanchor": "left", "yanchor": "top", "y": 1.1},
			check: func(t *testing.T, fig *Figure) {
				require.NotNil(t, fig.Layout.Legend)
				assert.Nil(t, fig.Layout.Legend.X)
				assert.Equal(t, 1.1, *fig.Layout.Legend.Y)
			},
		},
		{
			name: "legend incomplete",
			opts: map[string]any{"orientation": "v", "x": 0.0, "y": 1.0},
			check: func(t *testing.T, fig *Figure) {
				assert.Nil(t, fig.Layout.Legend)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.AddTrace(line("a"), KindXY, 1, 1, true)
			fig, err := c.Final(WithLayoutOptions(tt.opts))
			require.NoError(t, err)
			tt.check(t, fig)
		})
	}
}

func TestFigure_JSON(t *testing.T) {
	c := New()
	require.NoError(t, c.Plot(testFrame(), "x", []string{"y1"}, PlotOptions{Y2: []string{"y2"}, Title: "T"}))
	c.PlotTable(testFrame(), 2, 1, "", nil)
	fig, err := c.Final()
	require.NoError(t, err)

	data, err := fig.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, 2, decoded["rows"])
	specs := decoded["specs"].([]any)
	assert.Equal(t, map[string]any{"type": "xy", "secondary_y": true}, specs[0].([]any)[0])
	assert.Equal(t, map[string]any{"type": "table"}, specs[1].([]any)[0])
	assert.Contains(t, string(data), `"type": "Scatter"`)
}

func TestFinal_RecordsSpan(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	p := telemetry.NewWithExporter(exp, "chart-test")
	defer p.Shutdown(context.Background())

	c := New()
	c.AddTrace(line("a"), KindXY, 1, 1, false)
	_, err := c.Final(WithContext(context.Background()))
	require.NoError(t, err)

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "chart.final", spans[0].Name)
}
