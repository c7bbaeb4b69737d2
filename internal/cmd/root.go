// Package cmd holds the dashkit command line.
package cmd

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	env        string
}

// NewRootCmd builds the dashkit command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "dashkit",
		Short: "Terminal dashboards of charts, tables and form widgets",
		Long: `dashkit composes dashboards from menus of pages. Each page lays out
widgets, tables and multi-cell charts; charts can also be rendered to
PNG, JPEG, SVG or JSON files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default $CONFIG_FILE)")
	root.PersistentFlags().StringVarP(&opts.env, "env", "e", "", "config environment section (default $CONFIG_ENV)")

	root.AddCommand(
		newRunCmd(opts),
		newRenderCmd(opts),
		newLayoutCmd(),
		newCheckCmd(opts),
	)
	return root
}
