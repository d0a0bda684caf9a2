package player

import (
	"encoding/json"
	"fmt"
)

type EncounterOrigin string

const (
	OriginAttribute EncounterOrigin = "attribute"
	OriginCalendar  EncounterOrigin = "calendar"
)

type EncounterPhase string

const (
	PhaseActive   EncounterPhase = "active"
	PhaseDefeated EncounterPhase = "defeated"
	PhaseExpired  EncounterPhase = "expired"
)

// Encounter is a multi-day challenge. Phase only moves forward:
// active -> defeated | expired.
type Encounter struct {
	Name          string
	Origin        EncounterOrigin
	Strength      int
	MaxStrength   int
	DaysRemaining int
	Phase         EncounterPhase
}

func (e Encounter) Active() bool   { return e.Phase == PhaseActive }
func (e Encounter) Defeated() bool { return e.Phase == PhaseDefeated }
func (e Encounter) Expired() bool  { return e.Phase == PhaseExpired }

type encounterJSON struct {
	Name          string          `json:"name"`
	Origin        EncounterOrigin `json:"type"`
	Strength      int             `json:"hp"`
	MaxStrength   int             `json:"max_hp"`
	DaysRemaining int             `json:"days_remaining"`
	Phase         EncounterPhase  `json:"phase,omitempty"`
	Active        bool            `json:"active"`
	Defeated      bool            `json:"defeated"`
}

func (e Encounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(encounterJSON{
		Name:          e.Name,
		Origin:        e.Origin,
		Strength:      e.Strength,
		MaxStrength:   e.MaxStrength,
		DaysRemaining: e.DaysRemaining,
		Phase:         e.Phase,
		Active:        e.Active(),
		Defeated:      e.Defeated(),
	})
}

// UnmarshalJSON accepts either a phase or the legacy active/defeated flags.
// Contradictory flags resolve to defeated.
func (e *Encounter) UnmarshalJSON(b []byte) error {
	var raw encounterJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	phase := raw.Phase
	if phase == "" {
		switch {
		case raw.Defeated:
			phase = PhaseDefeated
		case raw.Active:
			phase = PhaseActive
		default:
			phase = PhaseExpired
		}
	}
	switch phase {
	case PhaseActive, PhaseDefeated, PhaseExpired:
	default:
		return fmt.Errorf("unknown encounter phase %q", phase)
	}
	*e = Encounter{
		Name:          raw.Name,
		Origin:        raw.Origin,
		Strength:      raw.Strength,
		MaxStrength:   raw.MaxStrength,
		DaysRemaining: raw.DaysRemaining,
		Phase:         phase,
	}
	return nil
}

func NewEncounter(name string, origin EncounterOrigin, days int, rules EncounterRules) Encounter {
	if days < 0 {
		days = 0
	}
	return Encounter{
		Name:          name,
		Origin:        origin,
		Strength:      rules.StartStrength,
		MaxStrength:   rules.StartStrength,
		DaysRemaining: days,
		Phase:         PhaseActive,
	}
}

// SpawnFromCalendar returns a calendar encounter once the event is close
// enough, sized to the days left.
func SpawnFromCalendar(event CalendarEvent, rules EncounterRules) (Encounter, bool) {
	if event.DaysLeft > rules.CalendarTriggerDays {
		return Encounter{}, false
	}
	return NewEncounter(event.Name+" Stress", OriginCalendar, event.DaysLeft, rules), true
}

// TrendScore counts improved minus declined tracked attributes.
func TrendScore(prev, curr Attributes) int {
	score := 0
	for _, attr := range TrendAttributes {
		switch {
		case curr.Get(attr) > prev.Get(attr):
			score++
		case curr.Get(attr) < prev.Get(attr):
			score--
		}
	}
	return score
}

// Advance applies one day to an active encounter. Defeat wins over expiry
// when both happen in the same update. The penalty is returned only on the
// update that expires the encounter undefeated.
func (e Encounter) Advance(prev, curr Attributes, rules EncounterRules) (Encounter, *Penalty) {
	if !e.Active() {
		return e, nil
	}
	next := e
	switch trend := TrendScore(prev, curr); {
	case trend >= 1:
		next.Strength -= rules.ImproveDamage
	case trend == 0:
		next.Strength -= rules.SteadyDamage
	default:
		next.Strength += rules.DeclineRecovery
	}
	next.Strength = clampInt(next.Strength, 0, next.MaxStrength)
	next.DaysRemaining = max(next.DaysRemaining-1, 0)

	switch {
	case next.Strength <= 0:
		next.Phase = PhaseDefeated
	case next.DaysRemaining <= 0:
		next.Phase = PhaseExpired
		penalty := rules.Penalty
		return next, &penalty
	}
	return next, nil
}
