package player

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_ApplyFoldsDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := newService(t)
	agg := NewAggregate("p1", "Ada", now)

	result := svc.ProcessDay(DailyInput{SleepHours: 8, WaterIntake: 3, Exercise: true}, agg.Previous(), []string{"short_walk"})
	next := agg.Apply("2026-03-01", result, 1, now.Add(time.Hour))

	require.NotNil(t, next.Attributes)
	assert.Equal(t, result.Attributes, *next.Attributes)
	assert.Equal(t, result.Progression.CumulativeReward, next.CumulativeReward)
	assert.Equal(t, ids(result.Objectives.Active), next.RecentObjectiveIDs)
	assert.Equal(t, "2026-03-01", next.LastDay)
	assert.Equal(t, int64(2), next.Version)
	assert.Equal(t, now.Add(time.Hour), next.UpdatedAt)
	require.NotNil(t, next.LastResult)
	assert.Equal(t, result, *next.LastResult)

	assert.Nil(t, agg.Attributes)
	assert.Equal(t, int64(1), agg.Version)
}

func TestAggregate_CalendarEventLifecycle(t *testing.T) {
	now := time.Now().UTC()
	svc := newService(t)

	agg := NewAggregate("p1", "", now)
	agg.CalendarEvent = &CalendarEvent{Name: "Exam", DaysLeft: 5}

	day1 := agg.Apply("2026-03-01", svc.ProcessDay(DailyInput{}, agg.Previous(), nil), 1, now)
	require.NotNil(t, day1.CalendarEvent)
	assert.Equal(t, 4, day1.CalendarEvent.DaysLeft)
	assert.Equal(t, 5, agg.CalendarEvent.DaysLeft)

	day2 := day1.Apply("2026-03-02", svc.ProcessDay(DailyInput{}, day1.Previous(), nil), 1, now)
	require.NotNil(t, day2.CalendarEvent)
	assert.Equal(t, 3, day2.CalendarEvent.DaysLeft)

	result := svc.ProcessDay(DailyInput{}, day2.Previous(), nil)
	require.True(t, result.EncounterSpawned)
	day3 := day2.Apply("2026-03-03", result, 1, now)
	assert.Nil(t, day3.CalendarEvent)
	require.NotNil(t, day3.Encounter)
	assert.Equal(t, "Exam Stress", day3.Encounter.Name)
}

func TestAggregate_PastCalendarEventIsDropped(t *testing.T) {
	now := time.Now().UTC()
	agg := NewAggregate("p1", "", now)
	active := NewEncounter("Burnout Beast", OriginAttribute, 3, DefaultRules().Encounter)
	agg.Encounter = &active
	agg.CalendarEvent = &CalendarEvent{Name: "Exam", DaysLeft: 0}

	result := newService(t).ProcessDay(DailyInput{}, agg.Previous(), nil)
	next := agg.Apply("2026-03-01", result, 1, now)

	assert.False(t, result.EncounterSpawned)
	assert.Nil(t, next.CalendarEvent)
}

func TestAggregate_PreviousIsDeepCopy(t *testing.T) {
	agg := NewAggregate("p1", "", time.Now())
	agg.Attributes = &Attributes{Health: 10}
	agg.RecentObjectiveIDs = []string{"water_3l"}

	prev := agg.Previous()
	prev.Attributes.Health = 99
	prev.RecentObjectiveIDs[0] = "plan_day"

	assert.Equal(t, 10, agg.Attributes.Health)
	assert.Equal(t, "water_3l", agg.RecentObjectiveIDs[0])
}

func TestAggregate_JSONRoundTripKeepsEncounter(t *testing.T) {
	agg := NewAggregate("p1", "Ada", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	e := NewEncounter("Exam Stress", OriginCalendar, 2, DefaultRules().Encounter)
	agg.Encounter = &e

	raw, err := json.Marshal(agg)
	require.NoError(t, err)
	var back Aggregate
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, agg.Encounter, back.Encounter)
	assert.Equal(t, agg.PlayerID, back.PlayerID)
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay(" 2026-02-28 ")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", day)

	for _, raw := range []string{"", "2026-2-28", "2026-02-30", "yesterday"} {
		_, err := ParseDay(raw)
		assert.ErrorIs(t, err, ErrInvalidDay, raw)
	}

	assert.Equal(t, "2026-03-01", DayOf(time.Date(2026, 3, 2, 1, 30, 0, 0, time.FixedZone("CEST", 2*3600))))
}
