package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dashkit/internal/config"
	"dashkit/internal/menu"
	"dashkit/internal/pages"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and its menu entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configFile, root.env)
			if err != nil {
				return err
			}
			reg := menu.NewRegistry()
			pages.New(pages.Options{}).Register(reg)
			menus := cfg.Menus
			if len(menus) == 0 {
				menus = pages.DefaultMenus()
			}

			out := cmd.OutOrStdout()
			var errs []error
			for _, m := range menus {
				for _, it := range m.Items {
					if _, err := reg.Lookup(it.Page()); err != nil {
						errs = append(errs, fmt.Errorf("%s/%s: %w", m.Name, it.Name, err))
						continue
					}
					fmt.Fprintf(out, "%s/%s -> %s\n", m.Name, it.Name, it.Page())
				}
			}
			if cfg.UI.LayoutFile != "" {
				layouts, err := menu.LoadLayouts(cfg.UI.LayoutFile)
				if err != nil {
					errs = append(errs, err)
				}
				for name := range layouts {
					if _, err := reg.Lookup(name); err != nil {
						errs = append(errs, fmt.Errorf("layout %s: %w", name, err))
					}
				}
			}
			return errors.Join(errs...)
		},
	}
}
