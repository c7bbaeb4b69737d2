package cmd

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"dashkit/internal/gui"
	"dashkit/internal/menu"
)

func newLayoutCmd() *cobra.Command {
	var perPage bool
	cmd := &cobra.Command{
		Use:   "layout FILE",
		Short: "Print the parsed layout tree of a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if perPage {
				layouts, err := menu.LoadLayouts(args[0])
				if err != nil {
					return err
				}
				for _, name := range slices.Sorted(maps.Keys(layouts)) {
					fmt.Fprintf(out, "%s:\n%s", name, layouts[name])
				}
				return nil
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			n, err := gui.ParseLayout(data)
			if err != nil {
				return err
			}
			fmt.Fprint(out, n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&perPage, "pages", false, "the file maps page names to layouts")
	return cmd
}
