// Package menu runs the top menu and swaps pages as sub menus are picked.
package menu

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"dashkit/internal/config"
	"dashkit/internal/gui"
	"dashkit/internal/logging"
)

// Slots of the screen the top menu and the pages are displayed in.
const (
	TopSlot  = "menu"
	PageSlot = "page"
	// TopTabs is the key of the tab container holding one toggle group
	// per top menu.
	TopTabs = "tab.1"
)

// ToolkitFactory returns the toolkit drawing into slot.
type ToolkitFactory func(slot string) gui.Toolkit

// App is the application context: menus, pages and the live GUIs.
// It is used from the toolkit's event loop only.
type App struct {
	ctx     context.Context
	menus   []config.Menu
	pages   *Registry
	toolkit ToolkitFactory
	logger  *logging.Logger
	guiOpts []gui.Option
	layouts map[string]*gui.Node

	top     *gui.GUI
	page    *gui.GUI
	current [2]string
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithGUIOptions adds options to every page GUI.
func WithGUIOptions(opts ...gui.Option) Option {
	return func(a *App) { a.guiOpts = append(a.guiOpts, opts...) }
}

// WithLayouts replaces the layouts of the named pages, see LoadLayouts.
func WithLayouts(layouts map[string]*gui.Node) Option {
	return func(a *App) { a.layouts = layouts }
}

// New creates an App over the given menus and pages.
func New(menus []config.Menu, pages *Registry, toolkit ToolkitFactory, opts ...Option) *App {
	a := &App{
		ctx:     context.Background(),
		menus:   menus,
		pages:   pages,
		toolkit: toolkit,
		logger:  logging.NopLogger(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Start builds and displays the top menu: one toggle group per top menu,
// each in its own tab of TopTabs. Picking a toggle opens its page.
func (a *App) Start(ctx context.Context) error {
	a.ctx = ctx
	top := gui.New(TopSlot, a.toolkit(TopSlot), gui.WithLogger(a.logger))
	if err := top.SetupLogger(); err != nil {
		return err
	}
	entries := make([]gui.Entry, 0, len(a.menus))
	for _, m := range a.menus {
		_, err := top.Add(m.Name, gui.Spec{
			Kind:     gui.Toggle,
			Desc:     m.Name,
			Options:  m.ItemNames(),
			OnChange: a.onSubMenu,
		})
		if err != nil {
			return fmt.Errorf("top menu %q: %w", m.Name, err)
		}
		entries = append(entries, gui.Entry{Title: m.Name, Key: m.Name})
	}
	layout := gui.Group("",
		gui.Group("h.1", gui.Tabbed(TopTabs, entries...)),
		gui.Leaf("v.log", gui.LogKey),
	)
	if err := top.Refresh(layout); err != nil {
		return fmt.Errorf("show top menu: %w", err)
	}
	a.top = top
	a.logger.Info("menu started", "menus", len(a.menus))
	return nil
}

func (a *App) onSubMenu(top string, v any) {
	sub, ok := v.(string)
	if !ok || sub == "" {
		return
	}
	if err := a.Navigate(a.ctx, top, sub); err != nil {
		a.logger.Error("navigate", "top", top, "sub", sub, "error", err)
		a.top.Log(err.Error(), false)
	}
}

// Select picks sub in the toggles of top, which opens the page like a
// user click would.
func (a *App) Select(top, sub string) error {
	if a.top == nil {
		return fmt.Errorf("select %s/%s: menu not started", top, sub)
	}
	if err := a.top.SetVal(TopTabs, top); err != nil {
		return err
	}
	return a.top.SetVal(top, sub)
}

func (a *App) item(top, sub string) (config.MenuItem, error) {
	for _, m := range a.menus {
		if m.Name != top {
			continue
		}
		if it, ok := m.Item(sub); ok {
			return it, nil
		}
	}
	return config.MenuItem{}, fmt.Errorf("%w: no menu entry %s/%s", ErrPageNotFound, top, sub)
}

// Navigate opens the page of top/sub. Re-opening the current page does
// nothing. Otherwise the previous page GUI is closed and the page builder
// runs on a fresh one with its own log pane.
func (a *App) Navigate(ctx context.Context, top, sub string) error {
	ctx, span := otel.Tracer("dashkit/menu").Start(ctx, "menu.navigate")
	defer span.End()
	span.SetAttributes(attribute.String("menu.top", top), attribute.String("menu.sub", sub))

	if a.current == [2]string{top, sub} {
		return nil
	}
	it, err := a.item(top, sub)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	build, err := a.pages.Lookup(it.Page())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s/%s: %w", top, sub, err)
	}

	if a.page != nil {
		a.page.Close()
		a.page = nil
	}
	name := top + "." + sub
	logger := a.logger.WithPage(top, sub)
	opts := append([]gui.Option{gui.WithLogger(logger)}, a.guiOpts...)
	g := gui.New(name, a.toolkit(PageSlot), opts...)
	if err := g.SetupLogger(); err != nil {
		return err
	}
	a.page = g
	logger.Info("opening page", "page", it.Page())

	if err := build(ctx, g); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.Logf("page %s failed: %v", it.Page(), err)
		return fmt.Errorf("page %s: %w", it.Page(), err)
	}
	if l, ok := a.layouts[it.Page()]; ok {
		if err := g.Refresh(l); err != nil {
			return fmt.Errorf("page %s layout: %w", it.Page(), err)
		}
	}
	a.current = [2]string{top, sub}
	return nil
}

// Reload rebuilds the current page.
func (a *App) Reload(ctx context.Context) error {
	cur := a.current
	if cur == [2]string{} {
		return nil
	}
	a.current = [2]string{}
	return a.Navigate(ctx, cur[0], cur[1])
}

// SetLayouts replaces the page layouts and re-lays out the current page
// when its layout changed.
func (a *App) SetLayouts(layouts map[string]*gui.Node) error {
	a.layouts = layouts
	if a.page == nil || a.current == [2]string{} {
		return nil
	}
	it, err := a.item(a.current[0], a.current[1])
	if err != nil {
		return err
	}
	if l, ok := layouts[it.Page()]; ok {
		return a.page.Refresh(l)
	}
	return nil
}

// Current returns the open top and sub menu.
func (a *App) Current() (top, sub string) { return a.current[0], a.current[1] }

// Top returns the top menu GUI.
func (a *App) Top() *gui.GUI { return a.top }

// Page returns the open page GUI, or nil.
func (a *App) Page() *gui.GUI { return a.page }

// Close closes the page and the top menu.
func (a *App) Close() {
	if a.page != nil {
		a.page.Close()
		a.page = nil
	}
	if a.top != nil {
		a.top.Close()
		a.top = nil
	}
	a.current = [2]string{}
}
