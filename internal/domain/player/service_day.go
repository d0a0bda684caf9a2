package player

import "slices"

// PreviousState is what the day transition reads from yesterday. Nil or empty
// parts fall back to the rules' defaults.
type PreviousState struct {
	Attributes         *Attributes    `json:"stats,omitempty"`
	CumulativeReward   int            `json:"total_xp"`
	Encounter          *Encounter     `json:"boss,omitempty"`
	RecentObjectiveIDs []string       `json:"recent_objective_ids,omitempty"`
	ObjectiveHistory   [][]string     `json:"objective_history,omitempty"`
	CalendarEvent      *CalendarEvent `json:"calendar_event,omitempty"`
}

type ObjectiveSet struct {
	Active    []Objective `json:"active"`
	Completed []Objective `json:"completed"`
}

// DayState is the full result of one day transition.
type DayState struct {
	Attributes       Attributes     `json:"stats"`
	Effects          []Effect       `json:"effects"`
	Narrative        NarrativeState `json:"character"`
	Objectives       ObjectiveSet   `json:"quests"`
	RewardEarned     int            `json:"xp_gained"`
	Progression      Progression    `json:"xp"`
	Trend            int            `json:"trend"`
	Encounter        *Encounter     `json:"boss"`
	EncounterSpawned bool           `json:"boss_spawned"`
	Penalty          *Penalty       `json:"penalty"`
}

type DayService struct {
	rules Rules
}

func NewDayService(rules Rules) (DayService, error) {
	if err := rules.Validate(); err != nil {
		return DayService{}, err
	}
	return DayService{rules: rules}, nil
}

func (s DayService) Rules() Rules {
	return s.rules
}

// ProcessDay is the daily transition. It has no side effects: the same input
// and previous state always yield the same DayState.
func (s DayService) ProcessDay(input DailyInput, prev PreviousState, manual []string) DayState {
	rules := s.rules

	prevAttrs := rules.Base
	if prev.Attributes != nil {
		prevAttrs = prev.Attributes.Clamped()
	}

	attrs := ComputeAttributes(input, rules.Base)
	effects := ClassifyEffects(attrs, rules.Effects)
	narrative := SelectNarrative(effects)

	active := GenerateObjectives(attrs, effects, RecentObjectives{
		Yesterday: prev.RecentObjectiveIDs,
		Earlier:   prev.ObjectiveHistory,
	}, rules)
	completion := EvaluateCompletion(active, input, manual)

	progression := rules.Curve.Progress(AddReward(prev.CumulativeReward, completion.Reward))

	encounter, spawned, penalty := s.advanceEncounter(prev, prevAttrs, attrs)

	return DayState{
		Attributes: attrs,
		Effects:    effects,
		Narrative:  narrative,
		Objectives: ObjectiveSet{
			Active:    active,
			Completed: completion.Completed,
		},
		RewardEarned:     completion.Reward,
		Progression:      progression,
		Trend:            TrendScore(prevAttrs, attrs),
		Encounter:        encounter,
		EncounterSpawned: spawned,
		Penalty:          penalty,
	}
}

// advanceEncounter spawns a calendar encounter when none is active and then
// applies today's update. A resolved encounter from yesterday is dropped.
func (s DayService) advanceEncounter(prev PreviousState, prevAttrs, attrs Attributes) (*Encounter, bool, *Penalty) {
	var current *Encounter
	if prev.Encounter != nil && prev.Encounter.Active() {
		e := *prev.Encounter
		current = &e
	}

	spawned := false
	if current == nil && prev.CalendarEvent != nil {
		if e, ok := SpawnFromCalendar(*prev.CalendarEvent, s.rules.Encounter); ok {
			current = &e
			spawned = true
		}
	}
	if current == nil {
		return nil, false, nil
	}

	next, penalty := current.Advance(prevAttrs, attrs, s.rules.Encounter)
	return &next, spawned, penalty
}

// NextRecent returns the recent-objective window to persist after today:
// today's IDs become yesterday's and the older days shift back, keeping depth
// days in total.
func NextRecent(prev PreviousState, today DayState, depth int) ([]string, [][]string) {
	recent := objectiveIDs(today.Objectives.Active)
	if depth <= 1 {
		return recent, nil
	}
	history := make([][]string, 0, depth-1)
	history = append(history, slices.Clone(prev.RecentObjectiveIDs))
	for _, day := range prev.ObjectiveHistory {
		if len(history) >= depth-1 {
			break
		}
		history = append(history, slices.Clone(day))
	}
	return recent, history
}
