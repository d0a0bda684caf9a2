package player

// ComputeAttributes derives today's attributes from base and the clamped
// input. All adjustments are additive, so their order does not matter.
func ComputeAttributes(input DailyInput, base Attributes) Attributes {
	in := input.Clamped()
	next := base

	switch {
	case in.SleepHours >= 7 && in.SleepHours <= 9:
		next.Energy += 10
		next.Focus += 5
	case in.SleepHours < 5:
		next.Energy -= 15
		next.Focus -= 10
	case in.SleepHours > 10:
		next.Energy -= 5
	}

	switch {
	case in.ScreenTime < 1:
		next.Focus += 10
	case in.ScreenTime > 4:
		next.Focus -= 10
	}

	if in.Exercise {
		next.Health += 10
		next.Energy += 5
	}

	if in.StressLevel >= 4 {
		next.Focus -= 10
		next.Health -= 5
	}

	if in.SleepHours >= 7 && in.Exercise {
		next.Resilience += 10
	}
	if in.StressLevel >= 4 && in.SleepHours < 6 {
		next.Resilience -= 10
	}

	switch {
	case in.WaterIntake < 2:
		next.Energy -= 5
	case in.WaterIntake >= 3:
		next.Energy += 5
	}

	return next.Clamped()
}
