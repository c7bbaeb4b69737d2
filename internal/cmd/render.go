package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashkit/internal/chart"
	"dashkit/internal/config"
	"dashkit/internal/jsonutil"
	"dashkit/internal/logging"
	"dashkit/internal/pages"
	"dashkit/internal/plot"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		format string
		simple bool
		props  string
	)
	cmd := &cobra.Command{
		Use:   "render [name]",
		Short: "Render the demo chart to a file",
		Long: `Render builds the generated price chart and writes it as png, jpeg,
svg or json. The extension is added when the name has none. SVG output
holds a single cell, so the detail cells are left out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configFile, root.env)
			if err != nil {
				return err
			}
			logger, err := logging.NewFileLogger(cfg.Logging.Dir, cfg.Logging.Level)
			if err != nil {
				return err
			}
			defer logger.Close()

			var layout map[string]any
			if props != "" {
				if err := jsonutil.UnmarshalWithContext([]byte(props), &layout, "parse --props"); err != nil {
					return err
				}
			}

			name := "dashkit"
			if len(args) == 1 {
				name = args[0]
			}
			format = plot.NormalizeFormat(format)
			detail := !simple && format != plot.FormatSVG
			fig, err := pages.DemoFigure(cmd.Context(), cfg.Chart.Width, cfg.Chart.Height, detail, layout,
				chart.WithLogger(logger), chart.WithVerbose(cfg.Chart.Verbose))
			if err != nil {
				return err
			}
			r := plot.New(plot.WithSize(cfg.Chart.Width, cfg.Chart.Height), plot.WithLogger(logger))
			path, err := r.Save(cmd.Context(), fig, name, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", plot.FormatPNG, fmt.Sprintf("output format %v", plot.Formats()))
	cmd.Flags().BoolVar(&simple, "simple", false, "only the price cell")
	cmd.Flags().StringVar(&props, "props", "", `layout options as JSON, e.g. {"logy": true}`)
	return cmd
}
