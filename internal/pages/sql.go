package pages

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"dashkit/internal/frame"
	"dashkit/internal/gui"
)

const sqlChart = "query"

// SQL runs a query against the configured SQLite file and shows the result
// as a grid, plotting its numeric columns against the first one.
func (p *Pages) SQL(ctx context.Context, g *gui.GUI) error {
	if p.opts.SQLite == "" {
		if err := g.Refresh(gui.Group("", gui.Leaf("v.1", gui.LogKey))); err != nil {
			return err
		}
		g.Log("no SQLite file configured (data.sqlite)", false)
		return nil
	}
	db, err := p.database()
	if err != nil {
		return err
	}

	run := func() {
		q, err := g.GetVal("query")
		if err != nil {
			report(g, "query", err)
			return
		}
		s, _ := q.(string)
		report(g, "query", p.runQuery(ctx, g, db, s))
	}
	err = addAll(g, []widget{
		{"query", gui.Spec{Kind: gui.Text, Desc: "Query", Default: p.opts.Query, Height: 3}},
		{"run", gui.Spec{Kind: gui.Button, Desc: "Run", OnChange: func(string, any) { run() }}},
	})
	if err != nil {
		return err
	}
	for _, k := range []string{"grid", "chart"} {
		if _, err := g.View(k); err != nil {
			return err
		}
	}
	err = g.Refresh(gui.Group("",
		gui.Leaf("h.q", "query", "run"),
		gui.Leaf("v.out", "grid", "chart", gui.LogKey),
	))
	if err != nil {
		return err
	}
	if p.opts.Query != "" {
		run()
	}
	return nil
}

// database opens the SQLite file on first use.
func (p *Pages) database() (*sql.DB, error) {
	if p.db != nil {
		return p.db, nil
	}
	db, err := frame.OpenSQLite(p.opts.SQLite)
	if err != nil {
		return nil, err
	}
	p.db = db
	return db, nil
}

func (p *Pages) runQuery(ctx context.Context, g *gui.GUI, db *sql.DB, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New("empty query")
	}
	f, err := frame.FromSQL(ctx, db, query)
	if err != nil {
		return err
	}
	g.Logf("%d rows", f.Len())
	if err := g.ShowGrid("grid", f); err != nil {
		return err
	}
	cols := f.Columns()
	if len(cols) < 2 || f.Len() < 2 {
		return nil
	}
	ys := numericColumns(f, cols[0])
	if len(ys) == 0 {
		return nil
	}
	g.ClearChart(sqlChart)
	if _, err := g.AddChart(sqlChart, f, cols[0], ys, nil, gui.ChartRequest{XTitle: cols[0]}); err != nil {
		return err
	}
	return g.PlotChart(ctx, sqlChart, "chart", gui.PlotRequest{
		Desc:   query,
		Width:  p.opts.Width,
		Height: p.opts.Height,
	})
}
