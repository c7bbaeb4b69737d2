package pages

import (
	"context"

	"dashkit/internal/gui"
)

const tableChart = "summary"

// Table shows summary statistics of the generated prices as a grid and as
// a table cell next to the price chart.
func (p *Pages) Table(ctx context.Context, g *gui.GUI) error {
	f := SampleFrame(60)
	sum := Summary(f)
	for _, k := range []string{"grid", "chart"} {
		if _, err := g.View(k); err != nil {
			return err
		}
	}
	if err := g.Refresh(gui.Group("", gui.Leaf("v.1", "grid", "chart", gui.LogKey))); err != nil {
		return err
	}
	if err := g.ShowGrid("grid", sum); err != nil {
		return err
	}

	ch, err := g.AddChart(tableChart, f, "date", []string{"close"}, nil, gui.ChartRequest{
		Row: 1, Col: 1, Desc: "Close", XTitle: "date", Y1Title: "price",
	})
	if err != nil {
		return err
	}
	ch.PlotTable(sum, 1, 2, "Summary", []string{"", ",.2f", ",.2f", ",.2f", ",.2f"})
	g.Logf("%d rows summarised", f.Len())
	return g.PlotChart(ctx, tableChart, "chart", gui.PlotRequest{
		Desc:   "Summary",
		Width:  p.opts.Width,
		Height: p.opts.Height,
	})
}
