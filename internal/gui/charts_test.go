package gui

import (
	"context"
	"testing"

	"dashkit/internal/chart"
	"dashkit/internal/frame"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prices() *frame.Frame {
	return frame.MustNew(
		frame.Column{Name: "date", Values: []any{1, 2, 3}},
		frame.Column{Name: "close_px", Values: []any{10.0, 11.0, 12.0}},
		frame.Column{Name: "volume", Values: []any{100, 200, 150}},
	)
}

func TestSetColorsAndTypes(t *testing.T) {
	g, _ := newTestGUI()
	assert.False(t, g.HasChartType("close"))

	g.SetColorsAndTypes("volume", SeriesLook{Type: chart.Bar, Color: "grey"})
	g.SetColorsAndTypes("close", SeriesLook{Type: chart.Scatter, Color: "red", Mode: "markers", Symbol: "circle", Width: 3})

	assert.True(t, g.HasChartType("close"))
	assert.Equal(t, chart.Style{Type: chart.Bar}, g.chartTypes["volume"])
	assert.Equal(t, chart.Style{Type: chart.Scatter, Mode: "markers", Symbol: "circle", Color: "red", Width: 3, Extended: true}, g.chartTypes["close"])
	assert.Equal(t, "grey", g.chartColors["volume"])
}

func TestAddChart_ReusesStoredChart(t *testing.T) {
	g, _ := newTestGUI()
	g.SetColorsAndTypes("volume", SeriesLook{Type: chart.Bar})

	ch, err := g.AddChart("px", prices(), "date", []string{"close"}, nil, ChartRequest{Desc: "Close"})
	require.NoError(t, err)
	again, err := g.AddChart("px", prices(), "date", []string{"volume"}, nil, ChartRequest{Row: 2})
	require.NoError(t, err)
	assert.Same(t, ch, again)

	stored, ok := g.Chart("px")
	require.True(t, ok)
	assert.Same(t, ch, stored)

	bar := ch.Traces(2, 1)[0].Drawable.(*chart.Series)
	assert.Equal(t, chart.Bar, bar.Type)
	title, _ := ch.Title(1, 1)
	assert.Equal(t, "Close", title.Title)
}

func TestAddChart_CallerChartIsNotStored(t *testing.T) {
	g, _ := newTestGUI()
	own := chart.New()
	got, err := g.AddChart("mine", prices(), "date", []string{"close"}, []string{"volume"}, ChartRequest{Chart: own})
	require.NoError(t, err)
	assert.Same(t, own, got)
	_, ok := g.Chart("mine")
	assert.False(t, ok)

	spec, _ := own.Spec(1, 1)
	assert.True(t, spec.Secondary)
}

func TestAddChart_BadXColumn(t *testing.T) {
	g, _ := newTestGUI()
	_, err := g.AddChart("px", prices(), "when", []string{"close"}, nil, ChartRequest{})
	assert.Error(t, err)
}

func TestPlotChart(t *testing.T) {
	g, _ := newTestGUI()
	out, _ := g.View("out")
	_, err := g.AddChart("px", prices(), "date", []string{"close"}, nil, ChartRequest{})
	require.NoError(t, err)

	err = g.PlotChart(context.Background(), "px", "out", PlotRequest{Desc: "Prices", Props: map[string]any{"stack": true}})
	require.NoError(t, err)

	fig := out.(*fakeWidget).fig
	require.NotNil(t, fig)
	assert.Equal(t, "Prices", fig.Layout.Title)
	assert.Equal(t, "stack", fig.Layout.BarMode)
	assert.False(t, fig.SharedX)
	assert.False(t, fig.SharedY)
}

func TestPlotChart_Errors(t *testing.T) {
	g, _ := newTestGUI()
	g.View("out")

	err := g.PlotChart(context.Background(), "px", "nowhere", PlotRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	err = g.PlotChart(context.Background(), "px", "out", PlotRequest{})
	assert.ErrorIs(t, err, ErrChartNotFound)
}

func TestPlotChart_EmptyChartDisplaysNothing(t *testing.T) {
	g, _ := newTestGUI()
	out, _ := g.View("out")
	g.charts["empty"] = chart.New()

	require.NoError(t, g.PlotChart(context.Background(), "empty", "out", PlotRequest{}))
	assert.Nil(t, out.(*fakeWidget).fig)
}

func TestClearCharts(t *testing.T) {
	g, _ := newTestGUI()
	g.AddChart("a", prices(), "date", []string{"close"}, nil, ChartRequest{})
	g.AddChart("b", prices(), "date", []string{"close"}, nil, ChartRequest{})

	g.ClearChart("a")
	_, ok := g.Chart("a")
	assert.False(t, ok)
	g.ClearChart("a")

	g.ClearCharts()
	_, ok = g.Chart("b")
	assert.False(t, ok)
}
