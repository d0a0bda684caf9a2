package player

type Mood string

const (
	MoodStressed  Mood = "stressed"
	MoodTired     Mood = "tired"
	MoodEnergetic Mood = "energetic"
	MoodNormal    Mood = "normal"
)

type Theme string

const (
	ThemeRain   Theme = "rain"
	ThemeNight  Theme = "night"
	ThemeSunny  Theme = "sunny"
	ThemeNormal Theme = "normal"
)

type NarrativeState struct {
	State Mood  `json:"character_state"`
	Theme Theme `json:"theme"`
}

type narrativeRule struct {
	name  string
	state NarrativeState
	match func(effects []Effect) bool
}

const narrativeFallback = "fallback"

// narrativePriority is evaluated top to bottom; the first match wins.
var narrativePriority = []narrativeRule{
	{
		name:  "stressed",
		state: NarrativeState{State: MoodStressed, Theme: ThemeRain},
		match: func(effects []Effect) bool {
			return hasEffect(effects, EffectLowResilience) || hasEffect(effects, EffectBurnoutRisk)
		},
	},
	{
		name:  "tired",
		state: NarrativeState{State: MoodTired, Theme: ThemeNight},
		match: func(effects []Effect) bool {
			return hasEffect(effects, EffectFatigue)
		},
	},
	{
		name:  "energetic",
		state: NarrativeState{State: MoodEnergetic, Theme: ThemeSunny},
		match: func(effects []Effect) bool {
			return hasEffect(effects, EffectHighEnergy) && hasEffect(effects, EffectHighFocus)
		},
	},
	{
		name:  "normal",
		state: NarrativeState{State: MoodNormal, Theme: ThemeNormal},
		match: func(effects []Effect) bool {
			for _, e := range effects {
				if e != EffectGoodHealth && e != EffectHighResilience {
					return false
				}
			}
			return true
		},
	},
}

var fallbackNarrative = NarrativeState{State: MoodNormal, Theme: ThemeNormal}

func SelectNarrative(effects []Effect) NarrativeState {
	state, _ := matchNarrative(effects)
	return state
}

// matchNarrative also reports which rule produced the state. Mixed effect sets
// that no rule claims (e.g. only low_focus) land on the fallback.
func matchNarrative(effects []Effect) (NarrativeState, string) {
	for _, rule := range narrativePriority {
		if rule.match(effects) {
			return rule.state, rule.name
		}
	}
	return fallbackNarrative, narrativeFallback
}
