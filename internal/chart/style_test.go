package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChartType(t *testing.T) {
	assert.Equal(t, Bar, ParseChartType("bar", Line))
	assert.Equal(t, Dots, ParseChartType("DOTS", Line))
	assert.Equal(t, Scatter, ParseChartType("candles", Scatter))
	assert.Len(t, ChartTypes(), 6)
	assert.Equal(t, "Area", Area.String())
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    Style
		wantErr bool
	}{
		{"bare string", "Bar", Style{Type: Bar}, false},
		{"single element", []any{"Bar"}, Style{Type: Bar}, false},
		{"unknown type draws lines", []string{"Candles"}, Style{Type: Line}, false},
		{
			"five elements",
			[]any{"Scatter", "markers", "circle", "red", 3},
			Style{Type: Scatter, Mode: "markers", Symbol: "circle", Color: "red", Width: 3, Extended: true},
			false,
		},
		{
			"four elements keeps default width",
			[]any{"Scatter", "lines", nil, "blue"},
			Style{Type: Scatter, Mode: "lines", Color: "blue", Extended: true},
			false,
		},
		{"three elements ignore extras", []any{"Bar", "markers", "x"}, Style{Type: Bar}, false},
		{"empty", []any{}, Style{}, true},
		{"bad width", []any{"Scatter", "m", "s", "c", "wide"}, Style{}, true},
		{"bad type", 12, Style{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStyles(t *testing.T) {
	got, err := ParseStyles(map[string]any{"a": []any{"Bar"}, "b": "Line"})
	require.NoError(t, err)
	assert.Equal(t, Styles{"a": {Type: Bar}, "b": {Type: Line}}, got)

	_, err = ParseStyles(map[string]any{"a": 1})
	assert.Error(t, err)
}

func TestStyle_List(t *testing.T) {
	assert.Equal(t, []any{"Bar"}, Style{Type: Bar}.List())
	st := Style{Type: Scatter, Mode: "markers", Symbol: "circle", Color: "red", Width: 3, Extended: true}
	assert.Equal(t, []any{"Scatter", "markers", "circle", "red", 3.0}, st.List())
}

func TestResolveSeries_ExtendedStyle(t *testing.T) {
	styles := Styles{"a": {Type: Scatter, Mode: "markers", Symbol: "circle", Color: "red", Width: 3, Extended: true}}

	tests := []struct {
		name   string
		colors map[string]string
		want   string
	}{
		{"no colour table", nil, "red"},
		{"series entry alone is ignored", map[string]string{"a": "blue"}, "red"},
		{"column entry alone falls back to style", map[string]string{"a_px": "green"}, "red"},
		{"column entry gates series entry", map[string]string{"a_px": "green", "a": "blue"}, "blue"},
		{"empty column entry counts as absent", map[string]string{"a_px": "", "a": "blue"}, "red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, so := resolveSeries("a_px", "a", styles, tt.colors)
			assert.Equal(t, Scatter, st.Type)
			assert.Equal(t, tt.want, so.Color)
			assert.Equal(t, "markers", so.Mode)
			assert.Equal(t, "circle", so.Symbol)
			assert.Equal(t, 3.0, so.Width)
		})
	}
}

func TestResolveSeries_SameColumnAndSeriesName(t *testing.T) {
	styles := Styles{"a": {Type: Scatter, Mode: "markers", Symbol: "circle", Color: "red", Width: 3, Extended: true}}
	_, so := resolveSeries("a", "a", styles, map[string]string{"a": "blue"})
	assert.Equal(t, "blue", so.Color)
}

func TestResolveSeries_ShortStyleUsesTableOnly(t *testing.T) {
	_, so := resolveSeries("a", "a", Styles{"a": {Type: Bar}}, nil)
	assert.Empty(t, so.Color)
	assert.Empty(t, so.Mode)

	st, _ := resolveSeries("q", "q", nil, nil)
	assert.Equal(t, DefaultStyle, st)
}

func TestNewSeries_PerType(t *testing.T) {
	x, y := []any{1, 2}, []any{3, 4}
	opts := SeriesOptions{Color: "red", Mode: "markers", Symbol: "square", Width: 3, LegendGroup: "g"}

	bar := NewSeries(Bar, x, y, "b", opts)
	assert.Equal(t, "red", bar.Marker.Color)
	assert.Empty(t, bar.LegendGroup)
	assert.True(t, bar.ShowLegend)

	area := NewSeries(Area, x, y, "a", opts)
	assert.Equal(t, "red", area.Fill)
	assert.Equal(t, "markers", area.Mode)
	assert.Equal(t, "g", area.LegendGroup)

	dots := NewSeries(Dots, x, y, "d", opts)
	assert.Equal(t, "markers", dots.Mode)
	assert.Equal(t, "circle", dots.Marker.Symbol)
	assert.Equal(t, 3.0, dots.Marker.LineWidth)

	sc := NewSeries(Scatter, x, y, "s", SeriesOptions{Mode: "markers", Symbol: "circle", Color: "red", Width: 3})
	assert.Equal(t, "markers", sc.Mode)
	assert.Equal(t, "circle", sc.Marker.Symbol)
	assert.Equal(t, "red", sc.Marker.Color)
	assert.Equal(t, 3.0, sc.Marker.LineWidth)
	assert.False(t, sc.ConnectGaps)

	ln := NewSeries(Column, x, y, "l", SeriesOptions{Color: "green", HideLegend: true})
	assert.Equal(t, "lines", ln.Mode)
	assert.True(t, ln.ConnectGaps)
	assert.Equal(t, "green", ln.LineColor)
	assert.False(t, ln.ShowLegend)

	def := NewSeries(Scatter, x, y, "w", SeriesOptions{})
	assert.Equal(t, float64(DefaultLineWidth), def.Marker.LineWidth)
	assert.Equal(t, KindXY, def.Kind())
}

func TestPlot_StyleResolutionEndToEnd(t *testing.T) {
	c := New()
	err := c.Plot(testFrame(), "x", []string{"y1"}, PlotOptions{
		Y1Styles: Styles{"y1": {Type: Scatter, Mode: "markers", Symbol: "circle", Color: "red", Width: 3, Extended: true}},
	})
	require.NoError(t, err)
	s := c.Traces(1, 1)[0].Drawable.(*Series)
	assert.Equal(t, "markers", s.Mode)
	assert.Equal(t, "circle", s.Marker.Symbol)
	assert.Equal(t, 3.0, s.Marker.LineWidth)
	assert.Equal(t, "red", s.Marker.Color)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "3.14", FormatValue(3.14159, ".2f"))
	assert.Equal(t, "1235", FormatValue(1234.6, ",.0f"))
	assert.Equal(t, "abc", FormatValue("abc", ".2f"))
	assert.Equal(t, "7", FormatValue(7, ""))
	assert.Equal(t, "", FormatValue(nil, ".2f"))
}

func TestTable_TextRows(t *testing.T) {
	tbl := &Table{
		Header:  []string{"a", "b"},
		Cells:   [][]any{{1.234, 2.0}, {"x"}},
		Formats: []string{".1f"},
	}
	assert.Equal(t, [][]string{{"1.2", "x"}, {"2.0", ""}}, tbl.TextRows())
}
