package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	staticcatalog "respawn/internal/adapter/catalog/static"
)

func newCatalogCmd(opts *options) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate and print the objective catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.catalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asYAML {
				raw, err := staticcatalog.Marshal(c)
				if err != nil {
					return err
				}
				_, err = out.Write(raw)
				return err
			}

			fmt.Fprintln(out, Title.Render(fmt.Sprintf("Objective catalog (%d)", c.Len())))
			for _, o := range c.Entries() {
				targets := make([]string, 0, len(o.Targets))
				for _, t := range o.Targets {
					targets = append(targets, string(t))
				}
				fmt.Fprintf(out, "- %s %s %s\n", Key.Render(o.ID), o.Title,
					Muted.Render(fmt.Sprintf("[%s, %s, +%d xp, cooldown %d, targets %s]",
						o.Category, o.Rule.Kind, o.Reward, o.Cooldown, strings.Join(targets, "/"))))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the catalog as YAML")
	return cmd
}
