package player

import "slices"

type Effect string

const (
	EffectFatigue        Effect = "fatigue"
	EffectHighEnergy     Effect = "high_energy"
	EffectLowFocus       Effect = "low_focus"
	EffectHighFocus      Effect = "high_focus"
	EffectBurnoutRisk    Effect = "burnout_risk"
	EffectGoodHealth     Effect = "good_health"
	EffectLowResilience  Effect = "low_resilience"
	EffectHighResilience Effect = "high_resilience"
)

// AllEffects is the closed set of effects in classification order.
var AllEffects = []Effect{
	EffectFatigue,
	EffectHighEnergy,
	EffectLowFocus,
	EffectHighFocus,
	EffectBurnoutRisk,
	EffectGoodHealth,
	EffectLowResilience,
	EffectHighResilience,
}

func (e Effect) IsValid() bool {
	return slices.Contains(AllEffects, e)
}

type EffectThresholds struct {
	Low  int
	High int
}

type effectBand struct {
	attr Attribute
	low  Effect
	high Effect
}

var effectBands = []effectBand{
	{attr: AttributeEnergy, low: EffectFatigue, high: EffectHighEnergy},
	{attr: AttributeFocus, low: EffectLowFocus, high: EffectHighFocus},
	{attr: AttributeHealth, low: EffectBurnoutRisk, high: EffectGoodHealth},
	{attr: AttributeResilience, low: EffectLowResilience, high: EffectHighResilience},
}

// ClassifyEffects checks each attribute independently; tags may co-occur.
func ClassifyEffects(attrs Attributes, th EffectThresholds) []Effect {
	attrs = attrs.Clamped()
	effects := make([]Effect, 0, 4)
	for _, band := range effectBands {
		v := attrs.Get(band.attr)
		if v < th.Low {
			effects = append(effects, band.low)
		}
		if v > th.High {
			effects = append(effects, band.high)
		}
	}
	return effects
}

func hasEffect(effects []Effect, e Effect) bool {
	return slices.Contains(effects, e)
}
