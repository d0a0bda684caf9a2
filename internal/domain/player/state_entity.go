package player

import (
	"errors"
	"slices"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

var ErrInvalidDay = errors.New("invalid day")

// Aggregate is the persisted per-player snapshot between two days.
type Aggregate struct {
	PlayerID           string         `json:"player_id"`
	DisplayName        string         `json:"display_name,omitempty"`
	Attributes         *Attributes    `json:"stats,omitempty"`
	CumulativeReward   int            `json:"total_xp"`
	Encounter          *Encounter     `json:"boss,omitempty"`
	RecentObjectiveIDs []string       `json:"recent_objective_ids,omitempty"`
	ObjectiveHistory   [][]string     `json:"objective_history,omitempty"`
	CalendarEvent      *CalendarEvent `json:"calendar_event,omitempty"`
	LastDay            string         `json:"last_day,omitempty"`
	LastResult         *DayState      `json:"last_result,omitempty"`
	Version            int64          `json:"version"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func NewAggregate(playerID, displayName string, now time.Time) Aggregate {
	return Aggregate{
		PlayerID:    playerID,
		DisplayName: displayName,
		Version:     1,
		UpdatedAt:   now,
	}
}

func (a Aggregate) Previous() PreviousState {
	prev := PreviousState{
		CumulativeReward:   a.CumulativeReward,
		RecentObjectiveIDs: slices.Clone(a.RecentObjectiveIDs),
		ObjectiveHistory:   slices.Clone(a.ObjectiveHistory),
	}
	if a.Attributes != nil {
		attrs := *a.Attributes
		prev.Attributes = &attrs
	}
	if a.Encounter != nil {
		e := *a.Encounter
		prev.Encounter = &e
	}
	if a.CalendarEvent != nil {
		ev := *a.CalendarEvent
		prev.CalendarEvent = &ev
	}
	return prev
}

// Apply folds a processed day into the aggregate. The pending calendar event is
// consumed once it spawns an encounter and otherwise counts down one day; it
// is dropped after its day has passed.
func (a Aggregate) Apply(day string, result DayState, historyDepth int, now time.Time) Aggregate {
	prev := a.Previous()
	next := a

	attrs := result.Attributes
	next.Attributes = &attrs
	next.CumulativeReward = result.Progression.CumulativeReward
	next.Encounter = result.Encounter
	next.RecentObjectiveIDs, next.ObjectiveHistory = NextRecent(prev, result, historyDepth)

	switch {
	case a.CalendarEvent == nil:
	case result.EncounterSpawned && result.Encounter != nil && result.Encounter.Origin == OriginCalendar:
		next.CalendarEvent = nil
	case a.CalendarEvent.DaysLeft <= 0:
		next.CalendarEvent = nil
	default:
		ev := *a.CalendarEvent
		ev.DaysLeft--
		next.CalendarEvent = &ev
	}

	stored := result
	next.LastResult = &stored
	next.LastDay = day
	next.Version = a.Version + 1
	next.UpdatedAt = now
	return next
}

// ParseDay normalizes a YYYY-MM-DD day key.
func ParseDay(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse(DayLayout, raw)
	if err != nil {
		return "", ErrInvalidDay
	}
	return t.Format(DayLayout), nil
}

func DayOf(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
