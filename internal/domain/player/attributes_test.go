package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultBase() Attributes {
	return DefaultRules().Base
}

func TestComputeAttributes_RuleCases(t *testing.T) {
	cases := []struct {
		name  string
		input DailyInput
		want  Attributes
	}{
		{
			name:  "stressed short sleeper",
			input: DailyInput{SleepHours: 6, ScreenTime: 8, StressLevel: 4, WaterIntake: 2},
			want:  Attributes{Health: 45, Energy: 50, Focus: 30, Resilience: 50},
		},
		{
			name:  "balanced day",
			input: DailyInput{SleepHours: 7, ScreenTime: 3, StressLevel: 2, WaterIntake: 3, Exercise: true},
			want:  Attributes{Health: 60, Energy: 70, Focus: 55, Resilience: 60},
		},
		{
			name:  "ideal day",
			input: DailyInput{SleepHours: 8, ScreenTime: 0.5, WaterIntake: 4, Exercise: true},
			want:  Attributes{Health: 60, Energy: 70, Focus: 65, Resilience: 60},
		},
		{
			name:  "rough day",
			input: DailyInput{SleepHours: 3, ScreenTime: 10, StressLevel: 5, WaterIntake: 1},
			want:  Attributes{Health: 45, Energy: 30, Focus: 20, Resilience: 40},
		},
		{
			name:  "oversleep",
			input: DailyInput{SleepHours: 11, ScreenTime: 2, WaterIntake: 2},
			want:  Attributes{Health: 50, Energy: 45, Focus: 50, Resilience: 50},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeAttributes(tc.input, defaultBase()))
		})
	}
}

func TestComputeAttributes_ClampsRawInputs(t *testing.T) {
	extreme := DailyInput{SleepHours: -100, ScreenTime: 1e9, StressLevel: 99, WaterIntake: -3}
	got := ComputeAttributes(extreme, defaultBase())
	assert.Equal(t, Attributes{Health: 45, Energy: 30, Focus: 20, Resilience: 40}, got)

	nan := ComputeAttributes(DailyInput{SleepHours: math.NaN(), ScreenTime: math.Inf(1), StressLevel: math.Inf(-1)}, defaultBase())
	zeroSleep := ComputeAttributes(DailyInput{SleepHours: 0, ScreenTime: MaxScreenTime}, defaultBase())
	assert.Equal(t, zeroSleep, nan)
}

func TestComputeAttributes_StaysWithinBounds(t *testing.T) {
	inputs := []DailyInput{
		{SleepHours: 8, ScreenTime: 0, WaterIntake: 6, Exercise: true},
		{SleepHours: 0, ScreenTime: 16, StressLevel: 5, WaterIntake: 0},
		{SleepHours: math.MaxFloat64, ScreenTime: -math.MaxFloat64, StressLevel: math.NaN(), WaterIntake: math.Inf(1), Exercise: true},
	}
	bases := []Attributes{
		{Health: 100, Energy: 100, Focus: 100, Resilience: 100},
		{},
		defaultBase(),
	}
	for _, in := range inputs {
		for _, base := range bases {
			got := ComputeAttributes(in, base)
			for _, attr := range []Attribute{AttributeHealth, AttributeEnergy, AttributeFocus, AttributeResilience} {
				v := got.Get(attr)
				require.GreaterOrEqual(t, v, AttributeMin, "%s for %+v from %+v", attr, in, base)
				require.LessOrEqual(t, v, AttributeMax, "%s for %+v from %+v", attr, in, base)
			}
		}
	}

	top := ComputeAttributes(inputs[0], bases[0])
	assert.Equal(t, Attributes{Health: 100, Energy: 100, Focus: 100, Resilience: 100}, top)
	bottom := ComputeAttributes(inputs[1], bases[1])
	assert.Equal(t, Attributes{}, bottom)
}

func TestComputeAttributes_Deterministic(t *testing.T) {
	in := DailyInput{SleepHours: 6.5, ScreenTime: 4.5, StressLevel: 3, WaterIntake: 2.5, Exercise: true}
	first := ComputeAttributes(in, defaultBase())
	for i := 0; i < 10; i++ {
		require.Equal(t, first, ComputeAttributes(in, defaultBase()))
	}
}

func TestDailyInput_FieldDefaultsToZero(t *testing.T) {
	in := DailyInput{SleepHours: 7, Exercise: true}
	assert.Equal(t, 7.0, in.Field(InputSleepHours))
	assert.Equal(t, 1.0, in.Field(InputExercise))
	assert.Equal(t, 0.0, in.Field("meditation_minutes"))
}
