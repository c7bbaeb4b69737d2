package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dashkit/internal/chart"
	"dashkit/internal/config"
	"dashkit/internal/gui"
	"dashkit/internal/logging"
	"dashkit/internal/menu"
	"dashkit/internal/pages"
	"dashkit/internal/telemetry"
	"dashkit/internal/tui"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var page, outDir string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive dashboard",
		Example: `  dashkit run -c dashkit.yaml
  dashkit run --page Demo/Charts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configFile, root.env)
			if err != nil {
				return err
			}
			return runApp(cmd.Context(), cfg, page, outDir)
		},
	}
	cmd.Flags().StringVar(&page, "page", "", "open a page on start, as top/sub")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for saved images (default temp dir)")
	return cmd
}

// setup is what a run needs besides the event loop.
type setup struct {
	logger *logging.Logger
	tp     *telemetry.Provider
	pages  *pages.Pages
}

func (s *setup) close(ctx context.Context) {
	if err := s.tp.Shutdown(ctx); err != nil {
		s.logger.Warn("telemetry shutdown", "error", err)
	}
	if s.pages != nil {
		s.pages.Close()
	}
	s.logger.Close()
}

func newSetup(ctx context.Context, cfg *config.Config, outDir string) (*setup, error) {
	logger, err := logging.NewFileLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	tp, err := telemetry.New(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		logger.Close()
		return nil, err
	}
	return &setup{
		logger: logger,
		tp:     tp,
		pages: pages.New(pages.Options{
			SQLite: cfg.Data.SQLite,
			Query:  cfg.Data.Query,
			OutDir: outDir,
			Width:  cfg.Chart.Width,
			Height: cfg.Chart.Height,
		}),
	}, nil
}

func runApp(ctx context.Context, cfg *config.Config, page, outDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := newSetup(ctx, cfg, outDir)
	if err != nil {
		return err
	}
	defer s.close(context.WithoutCancel(ctx))
	s.logger.Info("starting", "env", cfg.Env, "ui", cfg.UI.Type)

	reg := menu.NewRegistry()
	s.pages.Register(reg)
	menus := cfg.Menus
	if len(menus) == 0 {
		menus = pages.DefaultMenus()
	}

	appOpts := []menu.Option{
		menu.WithLogger(s.logger),
		menu.WithGUIOptions(gui.WithChartOptions(chart.WithVerbose(cfg.Chart.Verbose))),
	}
	if cfg.UI.LayoutFile != "" {
		layouts, err := menu.LoadLayouts(cfg.UI.LayoutFile)
		if err != nil {
			return err
		}
		appOpts = append(appOpts, menu.WithLayouts(layouts))
	}

	screen := tui.NewScreen(menu.TopSlot, menu.PageSlot)
	prog := tui.NewProgram(screen, tui.WithTitle("dashkit"))
	app := menu.New(menus, reg, func(slot string) gui.Toolkit {
		return screen.Toolkit(slot, tui.WithWidth(cfg.UI.Width))
	}, appOpts...)
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer app.Close()

	prog.Bind("SPC r", "reload page", func() {
		if err := app.Reload(ctx); err != nil {
			s.logger.Error("reload", "error", err)
		}
	})
	if page != "" {
		top, sub, ok := strings.Cut(page, "/")
		if !ok {
			return fmt.Errorf("--page %q: want top/sub", page)
		}
		if err := app.Select(top, sub); err != nil {
			return err
		}
	}

	if cfg.UI.LayoutFile != "" {
		w, err := menu.WatchLayouts(ctx, cfg.UI.LayoutFile, menu.DefaultDebounce, s.logger, func(l map[string]*gui.Node) {
			prog.Send(func() {
				if err := app.SetLayouts(l); err != nil {
					s.logger.Error("apply layouts", "error", err)
				}
			})
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}
	return prog.Run(ctx)
}
