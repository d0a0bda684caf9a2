package root

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLevelsCmd(opts *options) *cobra.Command {
	var upTo, reward int
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Print the level curve, or the progression for a reward total",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := opts.rules()
			if err != nil {
				return err
			}
			curve := rules.Curve
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("xp") {
				if reward < 0 {
					return fmt.Errorf("--xp must not be negative")
				}
				p := curve.Progress(reward)
				fmt.Fprintln(out, labelValue("Level", p.Level))
				fmt.Fprintln(out, labelValue("Progress", fmt.Sprintf("%d/%d", p.ProgressInLevel, p.NextLevelThreshold)))
				return nil
			}

			if upTo < 1 {
				return fmt.Errorf("--up-to must be at least 1")
			}
			fmt.Fprintln(out, Title.Render("Level curve"))
			fmt.Fprintf(out, "%s %s %s\n", Key.Render(fmt.Sprintf("%-6s", "level")), Key.Render(fmt.Sprintf("%10s", "total xp")), Key.Render(fmt.Sprintf("%8s", "next")))
			for level := 1; level <= upTo; level++ {
				fmt.Fprintf(out, "%-6d %10d %8d\n", level, curve.Threshold(level), curve.Threshold(level+1)-curve.Threshold(level))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&upTo, "up-to", 10, "last level to print")
	cmd.Flags().IntVar(&reward, "xp", 0, "print the progression for this cumulative xp instead of the table")
	return cmd
}
