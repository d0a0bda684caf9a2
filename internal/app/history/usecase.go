package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"respawn/internal/app/ports"
	"respawn/internal/domain/player"
)

const MaxLimit = 366

var ErrInvalidRequest = errors.New("invalid history request")

type UseCase struct {
	Days ports.DayRecordRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.PlayerID) == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	from, err := optionalDay(req.From)
	if err != nil {
		return Response{}, err
	}
	to, err := optionalDay(req.To)
	if err != nil {
		return Response{}, err
	}
	if from != "" && to != "" && from > to {
		return Response{}, fmt.Errorf("%w: from after to", ErrInvalidRequest)
	}
	limit := req.Limit
	if limit == 0 || limit > MaxLimit {
		limit = MaxLimit
	}

	records, err := u.Days.ListByPlayerID(ctx, req.PlayerID, ports.DayQuery{From: from, To: to, Limit: limit})
	if err != nil {
		return Response{}, err
	}

	out := Response{Days: make([]Entry, 0, len(records))}
	for _, rec := range records {
		out.Days = append(out.Days, Entry{
			Day:         rec.Day,
			Input:       rec.Input,
			Manual:      rec.Manual,
			Result:      rec.Result,
			ProcessedAt: rec.ProcessedAt.Unix(),
		})
	}
	out.Summary = summarize(records)
	return out, nil
}

func optionalDay(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	day, err := player.ParseDay(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return day, nil
}

func summarize(records []ports.DayRecord) Summary {
	s := Summary{Days: len(records), MoodCounts: map[string]int{}}
	if len(records) == 0 {
		return s
	}
	var trend int
	var sum player.Attributes
	for _, rec := range records {
		r := rec.Result
		s.RewardEarned += r.RewardEarned
		s.CompletedCount += len(r.Objectives.Completed)
		s.MoodCounts[string(r.Narrative.State)]++
		trend += r.Trend
		if r.Encounter != nil {
			switch {
			case r.Encounter.Defeated():
				s.EncountersWon++
			case r.Encounter.Expired():
				s.EncountersLost++
			}
		}
		sum.Health += r.Attributes.Health
		sum.Energy += r.Attributes.Energy
		sum.Focus += r.Attributes.Focus
		sum.Resilience += r.Attributes.Resilience
	}
	n := len(records)
	s.AverageTrend = float64(trend) / float64(n)
	s.AverageSnapshot = player.Attributes{
		Health:     sum.Health / n,
		Energy:     sum.Energy / n,
		Focus:      sum.Focus / n,
		Resilience: sum.Resilience / n,
	}
	return s
}
