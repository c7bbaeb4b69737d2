// Package pages holds the page builders the menus open.
package pages

import (
	"database/sql"
	"fmt"
	"os"

	"dashkit/internal/gui"
	"dashkit/internal/menu"
	"dashkit/internal/plot"
)

// Module is the module name pages are registered under.
const Module = "pages"

// Registered page functions.
const (
	FuncCharts   = "charts"
	FuncTable    = "table"
	FuncControls = "controls"
	FuncSQL      = "sql"
)

// Options configures the pages.
type Options struct {
	// SQLite is the database file of the SQL page.
	SQLite string
	// Query is the initial query of the SQL page.
	Query string
	// OutDir receives exported images. Empty means the temp dir.
	OutDir string
	// Width and Height size exported images.
	Width, Height int
}

// Pages builds the demo pages.
type Pages struct {
	opts     Options
	renderer *plot.Renderer
	db       *sql.DB
}

// New creates the page builders.
func New(opts Options) *Pages {
	if opts.OutDir == "" {
		opts.OutDir = os.TempDir()
	}
	return &Pages{
		opts:     opts,
		renderer: plot.New(plot.WithSize(opts.Width, opts.Height)),
	}
}

// Register adds every page to r as "pages.<function>".
func (p *Pages) Register(r *menu.Registry) {
	r.Register(Module+"."+FuncCharts, p.Charts)
	r.Register(Module+"."+FuncTable, p.Table)
	r.Register(Module+"."+FuncControls, p.Controls)
	r.Register(Module+"."+FuncSQL, p.SQL)
}

// Close releases the SQLite connection.
func (p *Pages) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

type widget struct {
	key  string
	spec gui.Spec
}

func addAll(g *gui.GUI, ws []widget) error {
	for _, w := range ws {
		if _, err := g.Add(w.key, w.spec); err != nil {
			return err
		}
	}
	return nil
}

// report writes err to the page log pane and logger.
func report(g *gui.GUI, what string, err error) {
	if err == nil {
		return
	}
	g.Logger().Error(what, "error", err)
	g.Log(fmt.Sprintf("%s: %v", what, err), false)
}
