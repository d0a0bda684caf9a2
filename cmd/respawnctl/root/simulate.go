package root

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"respawn/internal/domain/player"
)

// scenario is the simulate input document.
type scenario struct {
	Input    player.DailyInput    `json:"input"`
	Previous player.PreviousState `json:"previous"`
	Manual   []string             `json:"manual"`
}

func newSimulateCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "simulate <scenario.json|->",
		Short: "Run one daily transition from a JSON scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readScenario(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			dec := json.NewDecoder(bytes.NewReader(raw))
			dec.DisallowUnknownFields()
			var sc scenario
			if err := dec.Decode(&sc); err != nil {
				return fmt.Errorf("decode scenario: %w", err)
			}

			rules, err := opts.rules()
			if err != nil {
				return err
			}
			svc, err := player.NewDayService(rules)
			if err != nil {
				return err
			}
			result := svc.ProcessDay(sc.Input, sc.Previous, sc.Manual)

			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			case "text":
				printDayState(cmd.OutOrStdout(), result)
				return nil
			default:
				return fmt.Errorf("unknown format %q (want json or text)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or text")
	return cmd
}

func readScenario(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return raw, nil
}

func printDayState(w io.Writer, s player.DayState) {
	fmt.Fprintln(w, Title.Render("Day result"))
	fmt.Fprintln(w, labelValue("Character", fmt.Sprintf("%s (%s)", s.Narrative.State, s.Narrative.Theme)))
	fmt.Fprintln(w, labelValue("Stats", fmt.Sprintf("health %d, energy %d, focus %d, resilience %d",
		s.Attributes.Health, s.Attributes.Energy, s.Attributes.Focus, s.Attributes.Resilience)))
	effects := make([]string, 0, len(s.Effects))
	for _, e := range s.Effects {
		effects = append(effects, string(e))
	}
	if len(effects) == 0 {
		fmt.Fprintln(w, labelValue("Effects", Muted.Render("none")))
	} else {
		fmt.Fprintln(w, labelValue("Effects", strings.Join(effects, ", ")))
	}

	done := make(map[string]bool, len(s.Objectives.Completed))
	for _, o := range s.Objectives.Completed {
		done[o.ID] = true
	}
	fmt.Fprintln(w, Key.Render("Quests:"))
	for _, o := range s.Objectives.Active {
		mark := Muted.Render("[ ]")
		if done[o.ID] {
			mark = Good.Render("[x]")
		}
		fmt.Fprintf(w, "  %s %s %s\n", mark, o.ID, Muted.Render(fmt.Sprintf("+%d xp", o.Reward)))
	}
	fmt.Fprintln(w, labelValue("XP gained", s.RewardEarned))
	fmt.Fprintln(w, labelValue("Level", fmt.Sprintf("%d (%d/%d, total %d)",
		s.Progression.Level, s.Progression.ProgressInLevel, s.Progression.NextLevelThreshold, s.Progression.CumulativeReward)))

	if s.Encounter != nil {
		e := s.Encounter
		status := string(e.Phase)
		switch {
		case e.Defeated():
			status = Good.Render(status)
		case e.Expired():
			status = Bad.Render(status)
		}
		fmt.Fprintln(w, labelValue("Boss", fmt.Sprintf("%s %d/%d hp, %d days left, %s", e.Name, e.Strength, e.MaxStrength, e.DaysRemaining, status)))
	}
	if s.Penalty != nil {
		fmt.Fprintln(w, labelValue("Penalty", Bad.Render(fmt.Sprintf("%s for %d day(s)", s.Penalty.Effect, s.Penalty.DurationDays))))
	}
}
