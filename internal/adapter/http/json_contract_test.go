package httpadapter

import (
	"encoding/json"
	"strings"
	"testing"

	"respawn/internal/app/day"
	"respawn/internal/app/status"
	"respawn/internal/domain/player"
)

func TestResponseJSONUsesSnakeCase(t *testing.T) {
	svc, err := player.NewDayService(player.DefaultRules())
	if err != nil {
		t.Fatalf("day service: %v", err)
	}
	e := player.NewEncounter("Exam Stress", player.OriginCalendar, 3, player.DefaultRules().Encounter)
	result := svc.ProcessDay(player.DailyInput{SleepHours: 7, WaterIntake: 3}, player.PreviousState{Encounter: &e}, nil)

	cases := []struct {
		name    string
		payload any
		want    []string
		notWant []string
	}{
		{
			name:    "day",
			payload: day.Response{Day: "2026-03-01", Result: result, Version: 2},
			want:    []string{`"stats"`, `"effects"`, `"character_state"`, `"quests"`, `"xp_for_next_level"`, `"xp_progress_in_level"`, `"total_xp"`, `"boss"`, `"max_hp"`, `"days_remaining"`, `"penalty"`},
			notWant: []string{`"Attributes"`, `"CumulativeReward"`, `"Encounter"`},
		},
		{
			name:    "status",
			payload: status.Response{PlayerID: "p1", Attributes: player.DefaultRules().Base, Progression: player.DefaultRules().Curve.Progress(0)},
			want:    []string{`"player_id"`, `"stats"`, `"xp"`, `"calendar_event"`, `"version"`},
			notWant: []string{`"PlayerID"`, `"LastResult"`},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.payload)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			s := string(b)
			for _, key := range tc.want {
				if !strings.Contains(s, key) {
					t.Fatalf("expected key %s in %s", key, s)
				}
			}
			for _, key := range tc.notWant {
				if strings.Contains(s, key) {
					t.Fatalf("unexpected key %s in %s", key, s)
				}
			}
		})
	}
}
