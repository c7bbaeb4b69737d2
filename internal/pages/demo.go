package pages

import (
	"context"

	"dashkit/internal/chart"
	"dashkit/internal/config"
)

// DefaultMenus opens every page from a single "Demo" menu. It is used when
// the configuration names no menus.
func DefaultMenus() []config.Menu {
	return []config.Menu{{
		Name: "Demo",
		Items: []config.MenuItem{
			{Name: "Charts", Module: Module, Function: FuncCharts},
			{Name: "Table", Module: Module, Function: FuncTable},
			{Name: "Controls", Module: Module, Function: FuncControls},
			{Name: "SQL", Module: Module, Function: FuncSQL},
		},
	}}
}

// DemoFigure builds the generated price chart without a GUI. With detail
// set it adds volume bars below and a summary table beside the prices.
// props are layout options, see chart.WithLayoutOptions.
func DemoFigure(ctx context.Context, width, height int, detail bool, props map[string]any, opts ...chart.Option) (*chart.Figure, error) {
	f := SampleFrame(90)
	styles := chart.Styles{
		"sma5":   {Type: chart.Line, Mode: "lines", Color: "orange", Width: 2, Extended: true},
		"volume": {Type: chart.Bar},
	}
	colors := map[string]string{"close": "steelblue", "volume": "SlateGray"}

	ch := chart.New(opts...)
	o := chart.PlotOptions{
		Y1Styles: styles, Y2Styles: styles, Colors: colors,
		Row: 1, Col: 1, Title: "Price", XTitle: "date", Y1Title: "price",
	}
	if err := ch.Plot(f, "date", []string{"close", "sma5"}, o); err != nil {
		return nil, err
	}
	if detail {
		o.Row, o.Title, o.Y1Title = 2, "Volume", "shares"
		if err := ch.Plot(f, "date", []string{"volume"}, o); err != nil {
			return nil, err
		}
		ch.PlotTable(Summary(f), 1, 2, "Summary", []string{"", ",.2f", ",.2f", ",.2f", ",.2f"})
	}
	return ch.Final(
		chart.WithContext(ctx),
		chart.WithTitle("Generated prices"),
		chart.WithSize(width, height),
		chart.WithSharedAxes(true, false),
		chart.WithLayoutOptions(props),
	)
}
