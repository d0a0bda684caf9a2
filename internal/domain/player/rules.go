package player

import (
	"errors"
	"fmt"
)

const (
	BaseAttributeValue = 50

	EffectLowThreshold  = 40
	EffectHighThreshold = 70
	WeakThreshold       = 40

	SupportFillCap = 3
	MaxObjectives  = 4

	FirstLevelIncrement = 100
	LevelIncrementStep  = 40

	EncounterStartStrength   = 100
	CalendarTriggerDays      = 3
	EncounterImproveDamage   = 30
	EncounterSteadyDamage    = 10
	EncounterDeclineRecovery = 15
	DefaultEncounterDays     = 3

	PenaltyEffectDemotivated = "demotivated"
	PenaltyEnergy            = 5
	PenaltyFocus             = 5
	PenaltyDurationDays      = 1
)

// WeakOrder is the fixed order in which weak attributes receive corrective
// objectives.
var WeakOrder = []Attribute{AttributeEnergy, AttributeFocus, AttributeResilience}

// TrendAttributes are compared day over day to score an encounter update.
var TrendAttributes = []Attribute{AttributeEnergy, AttributeFocus, AttributeResilience}

type EncounterRules struct {
	StartStrength       int
	CalendarTriggerDays int
	ImproveDamage       int
	SteadyDamage        int
	DeclineRecovery     int
	Penalty             Penalty
}

// Rules is the tuning and catalog for one process. Build it once, validate it,
// and hand it to NewDayService.
type Rules struct {
	Base               Attributes
	Effects            EffectThresholds
	WeakBelow          int
	SupportFillCap     int
	MaxObjectives      int
	Curve              LevelCurve
	Encounter          EncounterRules
	Catalog            Catalog
	MultiCycleCooldown bool
}

func DefaultRules() Rules {
	return Rules{
		Base: Attributes{
			Health:     BaseAttributeValue,
			Energy:     BaseAttributeValue,
			Focus:      BaseAttributeValue,
			Resilience: BaseAttributeValue,
		},
		Effects:        EffectThresholds{Low: EffectLowThreshold, High: EffectHighThreshold},
		WeakBelow:      WeakThreshold,
		SupportFillCap: SupportFillCap,
		MaxObjectives:  MaxObjectives,
		Curve:          LevelCurve{FirstIncrement: FirstLevelIncrement, IncrementStep: LevelIncrementStep},
		Encounter: EncounterRules{
			StartStrength:       EncounterStartStrength,
			CalendarTriggerDays: CalendarTriggerDays,
			ImproveDamage:       EncounterImproveDamage,
			SteadyDamage:        EncounterSteadyDamage,
			DeclineRecovery:     EncounterDeclineRecovery,
			Penalty: Penalty{
				Effect:        PenaltyEffectDemotivated,
				EnergyPenalty: PenaltyEnergy,
				FocusPenalty:  PenaltyFocus,
				DurationDays:  PenaltyDurationDays,
			},
		},
		Catalog: DefaultCatalog(),
	}
}

// WithCatalog returns a copy of r using c as the objective pool.
func (r Rules) WithCatalog(c Catalog) Rules {
	r.Catalog = c
	return r
}

var ErrInvalidRules = errors.New("invalid rules")

func (r Rules) Validate() error {
	if r.Base != r.Base.Clamped() {
		return fmt.Errorf("%w: base attributes out of range", ErrInvalidRules)
	}
	if r.Effects.Low > r.Effects.High {
		return fmt.Errorf("%w: effect low threshold above high threshold", ErrInvalidRules)
	}
	if r.MaxObjectives < 1 || r.SupportFillCap < 0 || r.SupportFillCap > r.MaxObjectives {
		return fmt.Errorf("%w: objective caps %d/%d", ErrInvalidRules, r.SupportFillCap, r.MaxObjectives)
	}
	if err := r.Curve.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	if r.Encounter.StartStrength <= 0 {
		return fmt.Errorf("%w: encounter start strength must be positive", ErrInvalidRules)
	}
	if r.Encounter.ImproveDamage < 0 || r.Encounter.SteadyDamage < 0 || r.Encounter.DeclineRecovery < 0 {
		return fmt.Errorf("%w: encounter deltas must not be negative", ErrInvalidRules)
	}
	return nil
}

// HistoryDepth is how many days of selections the generator needs to see.
func (r Rules) HistoryDepth() int {
	if !r.MultiCycleCooldown {
		return 1
	}
	return max(r.Catalog.MaxCooldown(), 1)
}
