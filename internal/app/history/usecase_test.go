package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"respawn/internal/app/ports"
	"respawn/internal/domain/player"
)

func record(day string, reward, trend int, mood player.Mood, enc *player.Encounter) ports.DayRecord {
	return ports.DayRecord{
		PlayerID: "p1",
		Day:      day,
		Result: player.DayState{
			Attributes:   player.Attributes{Health: 50, Energy: 60, Focus: 40, Resilience: 50},
			Narrative:    player.NarrativeState{State: mood},
			RewardEarned: reward,
			Trend:        trend,
			Encounter:    enc,
			Objectives:   player.ObjectiveSet{Completed: []player.Objective{{ID: "water_3l"}}},
		},
		ProcessedAt: time.Unix(1700000000, 0),
	}
}

func TestUseCase_FiltersByDayWindow(t *testing.T) {
	repo := fakeRepo{records: []ports.DayRecord{
		record("2026-03-04", 10, 1, player.MoodNormal, nil),
		record("2026-03-03", 20, -1, player.MoodTired, nil),
		record("2026-03-02", 30, 3, player.MoodNormal, nil),
		record("2026-03-01", 40, 0, player.MoodStressed, nil),
	}}

	uc := UseCase{Days: repo}
	out, err := uc.Execute(context.Background(), Request{PlayerID: "p1", From: "2026-03-02", To: "2026-03-03"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Days) != 2 || out.Days[0].Day != "2026-03-03" || out.Days[1].Day != "2026-03-02" {
		t.Fatalf("unexpected window %+v", out.Days)
	}
	if out.Summary.RewardEarned != 50 || out.Summary.CompletedCount != 2 || out.Summary.AverageTrend != 1 {
		t.Fatalf("unexpected summary %+v", out.Summary)
	}
	if out.Summary.MoodCounts["tired"] != 1 || out.Summary.MoodCounts["normal"] != 1 {
		t.Fatalf("unexpected mood counts %+v", out.Summary.MoodCounts)
	}
}

func TestUseCase_LimitAndEncounterOutcomes(t *testing.T) {
	won := player.Encounter{Phase: player.PhaseDefeated}
	lost := player.Encounter{Phase: player.PhaseExpired}
	repo := fakeRepo{records: []ports.DayRecord{
		record("2026-03-03", 0, 0, player.MoodNormal, &won),
		record("2026-03-02", 0, 0, player.MoodNormal, &lost),
		record("2026-03-01", 0, 0, player.MoodNormal, nil),
	}}

	out, err := UseCase{Days: repo}.Execute(context.Background(), Request{PlayerID: "p1", Limit: 2})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(out.Days))
	}
	if out.Summary.EncountersWon != 1 || out.Summary.EncountersLost != 1 {
		t.Fatalf("unexpected encounter summary %+v", out.Summary)
	}
	if out.Summary.AverageSnapshot.Energy != 60 {
		t.Fatalf("unexpected average %+v", out.Summary.AverageSnapshot)
	}
}

func TestUseCase_RejectsBadRequests(t *testing.T) {
	uc := UseCase{Days: fakeRepo{}}
	cases := []Request{
		{},
		{PlayerID: "p1", Limit: -1},
		{PlayerID: "p1", From: "yesterday"},
		{PlayerID: "p1", From: "2026-03-05", To: "2026-03-01"},
	}
	for _, req := range cases {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest for %+v, got %v", req, err)
		}
	}
}

func TestUseCase_EmptyHistory(t *testing.T) {
	out, err := UseCase{Days: fakeRepo{}}.Execute(context.Background(), Request{PlayerID: "p1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Days) != 0 || out.Summary.Days != 0 {
		t.Fatalf("expected empty history, got %+v", out)
	}
}

func TestUseCase_PassesWindowAndLimitToRepository(t *testing.T) {
	var queries []ports.DayQuery
	repo := fakeRepo{queries: &queries}
	uc := UseCase{Days: repo}

	if _, err := uc.Execute(context.Background(), Request{PlayerID: "p1", Limit: 7}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if _, err := uc.Execute(context.Background(), Request{PlayerID: "p1", From: "2026-03-01", To: " 2026-03-09 "}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if _, err := uc.Execute(context.Background(), Request{PlayerID: "p1", Limit: MaxLimit + 50}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	want := []ports.DayQuery{
		{Limit: 7},
		{From: "2026-03-01", To: "2026-03-09", Limit: MaxLimit},
		{Limit: MaxLimit},
	}
	if len(queries) != len(want) {
		t.Fatalf("expected %d queries, got %+v", len(want), queries)
	}
	for i := range want {
		if queries[i] != want[i] {
			t.Fatalf("query %d: expected %+v, got %+v", i, want[i], queries[i])
		}
	}
}

type fakeRepo struct {
	records []ports.DayRecord
	queries *[]ports.DayQuery
}

func (r fakeRepo) GetByDay(_ context.Context, _, _ string) (*ports.DayRecord, error) {
	return nil, ports.ErrNotFound
}

func (r fakeRepo) Save(_ context.Context, _ ports.DayRecord) error {
	return nil
}

func (r fakeRepo) ListByPlayerID(_ context.Context, _ string, q ports.DayQuery) ([]ports.DayRecord, error) {
	if r.queries != nil {
		*r.queries = append(*r.queries, q)
	}
	out := make([]ports.DayRecord, 0, len(r.records))
	for _, rec := range r.records {
		if (q.From != "" && rec.Day < q.From) || (q.To != "" && rec.Day > q.To) {
			continue
		}
		out = append(out, rec)
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

var _ ports.DayRecordRepository = fakeRepo{}
