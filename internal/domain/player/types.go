package player

import "math"

type Attribute string

const (
	AttributeHealth     Attribute = "health"
	AttributeEnergy     Attribute = "energy"
	AttributeFocus      Attribute = "focus"
	AttributeResilience Attribute = "resilience"
)

const (
	AttributeMin = 0
	AttributeMax = 100
)

func (a Attribute) IsValid() bool {
	switch a {
	case AttributeHealth, AttributeEnergy, AttributeFocus, AttributeResilience:
		return true
	default:
		return false
	}
}

type Attributes struct {
	Health     int `json:"health"`
	Energy     int `json:"energy"`
	Focus      int `json:"focus"`
	Resilience int `json:"resilience"`
}

func (a Attributes) Get(attr Attribute) int {
	switch attr {
	case AttributeHealth:
		return a.Health
	case AttributeEnergy:
		return a.Energy
	case AttributeFocus:
		return a.Focus
	case AttributeResilience:
		return a.Resilience
	default:
		return 0
	}
}

func (a Attributes) Clamped() Attributes {
	return Attributes{
		Health:     clampInt(a.Health, AttributeMin, AttributeMax),
		Energy:     clampInt(a.Energy, AttributeMin, AttributeMax),
		Focus:      clampInt(a.Focus, AttributeMin, AttributeMax),
		Resilience: clampInt(a.Resilience, AttributeMin, AttributeMax),
	}
}

// DailyInput is the raw self-reported data for one day. Out-of-range values
// are clamped, never rejected.
type DailyInput struct {
	SleepHours  float64 `json:"sleep_hours"`
	ScreenTime  float64 `json:"screen_time"`
	StressLevel float64 `json:"stress_level"`
	WaterIntake float64 `json:"water_intake"`
	Exercise    bool    `json:"exercise"`
}

const (
	InputSleepHours  = "sleep_hours"
	InputScreenTime  = "screen_time"
	InputStressLevel = "stress_level"
	InputWaterIntake = "water_intake"
	InputExercise    = "exercise"
)

const (
	MaxSleepHours  = 12
	MaxScreenTime  = 16
	MaxStressLevel = 5
	MaxWaterIntake = 6
)

func (in DailyInput) Clamped() DailyInput {
	return DailyInput{
		SleepHours:  clampFloat(in.SleepHours, 0, MaxSleepHours),
		ScreenTime:  clampFloat(in.ScreenTime, 0, MaxScreenTime),
		StressLevel: clampFloat(in.StressLevel, 0, MaxStressLevel),
		WaterIntake: clampFloat(in.WaterIntake, 0, MaxWaterIntake),
		Exercise:    in.Exercise,
	}
}

// Field reads an input value by its wire name. Unknown fields read as 0 and
// exercise reads as 1 when set.
func (in DailyInput) Field(name string) float64 {
	switch name {
	case InputSleepHours:
		return in.SleepHours
	case InputScreenTime:
		return in.ScreenTime
	case InputStressLevel:
		return in.StressLevel
	case InputWaterIntake:
		return in.WaterIntake
	case InputExercise:
		if in.Exercise {
			return 1
		}
		return 0
	default:
		return 0
	}
}

type CalendarEvent struct {
	Name     string `json:"name"`
	DaysLeft int    `json:"days_left"`
}

type Penalty struct {
	Effect        string `json:"effect"`
	EnergyPenalty int    `json:"energy_penalty"`
	FocusPenalty  int    `json:"focus_penalty"`
	DurationDays  int    `json:"duration_days"`
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
