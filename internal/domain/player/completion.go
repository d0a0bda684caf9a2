package player

import "slices"

type CompletionResult struct {
	Completed []Objective `json:"completed"`
	Reward    int         `json:"reward"`
}

// EvaluateCompletion checks today's objectives against the input and the IDs
// the player confirmed by hand. Fields the input does not carry read as 0, so
// they fail min conditions and pass max conditions.
func EvaluateCompletion(active []Objective, input DailyInput, manual []string) CompletionResult {
	in := input.Clamped()
	out := CompletionResult{Completed: make([]Objective, 0, len(active))}
	for _, o := range active {
		if !isCompleted(o, in, manual) {
			continue
		}
		out.Completed = append(out.Completed, o)
		out.Reward += o.Reward
	}
	return out
}

func isCompleted(o Objective, in DailyInput, manual []string) bool {
	switch o.Rule.Kind {
	case CompletionManual:
		return slices.Contains(manual, o.ID)
	case CompletionInput:
		for _, c := range o.Rule.Conditions {
			if !c.Satisfied(in) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (c Condition) Satisfied(in DailyInput) bool {
	v := in.Field(c.Field)
	switch c.Bound {
	case BoundMax:
		return v <= c.Threshold
	case BoundMin:
		return v >= c.Threshold
	default:
		return false
	}
}
