package pages

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"slices"

	"github.com/spf13/cast"

	"dashkit/internal/chart"
	"dashkit/internal/frame"
	"dashkit/internal/gui"
	"dashkit/internal/plot"
)

const pricesChart = "prices"

// Charts shows generated prices: the picked series and the daily return on
// a secondary axis in the first row, volume bars in the second.
func (p *Pages) Charts(ctx context.Context, g *gui.GUI) error {
	f := SampleFrame(90)
	g.SetColorsAndTypes("sma5", gui.SeriesLook{Type: chart.Line, Color: "orange", Mode: "lines", Width: 2})
	g.SetColorsAndTypes("ret", gui.SeriesLook{Type: chart.Dots, Color: "gray"})
	g.SetColorsAndTypes("volume", gui.SeriesLook{Type: chart.Bar, Color: "SlateGray"})

	draw := func() {
		report(g, "draw", p.drawPrices(ctx, g, f))
	}
	redraw := func(string, any) { draw() }
	err := addAll(g, []widget{
		{"series", gui.Spec{
			Kind:     gui.SelMulti,
			Desc:     "Series",
			Options:  []string{"close", "sma5"},
			Default:  []string{"close", "sma5"},
			OnChange: redraw,
		}},
		{"logy", gui.Spec{Kind: gui.Checkbox, Desc: "Log scale", Default: false, OnChange: redraw}},
		{"draw", gui.Spec{Kind: gui.Button, Desc: "Draw", OnChange: redraw}},
		{"save", gui.Spec{Kind: gui.Button, Desc: "Save PNG", OnChange: func(string, any) {
			report(g, "save", p.savePrices(ctx, g))
		}}},
	})
	if err != nil {
		return err
	}
	for _, k := range []string{"chart", "link"} {
		if _, err := g.View(k); err != nil {
			return err
		}
	}
	err = g.Refresh(gui.Group("",
		gui.Leaf("h.controls", "series", "logy", "draw", "save"),
		gui.Leaf("v.out", "chart", "link", gui.LogKey),
	))
	if err != nil {
		return err
	}
	return p.drawPrices(ctx, g, f)
}

func (p *Pages) drawPrices(ctx context.Context, g *gui.GUI, f *frame.Frame) error {
	g.ClearChart(pricesChart)
	v, err := g.GetVal("series")
	if err != nil {
		return err
	}
	series := cast.ToStringSlice(v)
	if len(series) == 0 {
		g.Log("pick at least one series", false)
		return nil
	}
	_, err = g.AddChart(pricesChart, f, "date", series, []string{"ret"}, gui.ChartRequest{
		Row: 1, Col: 1,
		Desc: "Price", XTitle: "date", Y1Title: "price", Y2Title: "return %",
	})
	if err != nil {
		return err
	}
	_, err = g.AddChart(pricesChart, f, "date", []string{"volume"}, nil, gui.ChartRequest{
		Row: 2, Col: 1,
		Desc: "Volume", XTitle: "date", Y1Title: "shares",
	})
	if err != nil {
		return err
	}

	props := map[string]any{}
	if logy, _ := g.GetVal("logy"); cast.ToBool(logy) {
		props[chart.OptionLogY] = true
	}
	return g.PlotChart(ctx, pricesChart, "chart", gui.PlotRequest{
		Desc:    "Generated prices",
		SharedX: true,
		Width:   p.opts.Width,
		Height:  p.opts.Height,
		Props:   props,
	})
}

func (p *Pages) savePrices(ctx context.Context, g *gui.GUI) error {
	ch, ok := g.Chart(pricesChart)
	if !ok || ch.Figure() == nil {
		return errors.New("nothing drawn yet")
	}
	path, err := p.renderer.Save(ctx, ch.Figure(), filepath.Join(p.opts.OutDir, pricesChart), plot.FormatPNG)
	if err != nil {
		return err
	}
	g.Logf("saved %s", path)
	return g.ShowLink("link", path, filepath.Base(path))
}

// numericColumns returns the columns of f other than x holding numbers.
func numericColumns(f *frame.Frame, x string) []string {
	var out []string
	for _, name := range f.Columns() {
		if name == x {
			continue
		}
		c, _ := f.Column(name)
		if frame.IsTime(c.Values) {
			continue
		}
		if slices.ContainsFunc(frame.ToFloats(c.Values), func(v float64) bool { return !math.IsNaN(v) }) {
			out = append(out, name)
		}
	}
	return out
}
