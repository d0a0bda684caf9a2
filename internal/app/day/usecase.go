package day

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"respawn/internal/app/ports"
	"respawn/internal/domain/player"
)

var (
	ErrInvalidRequest = errors.New("invalid day request")
	ErrDayOutOfOrder  = errors.New("day precedes last processed day")
)

// UseCase submits one day for a player. A day is processed at most once;
// resubmitting it returns the stored result.
type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.PlayerStateRepository
	DayRepo   ports.DayRecordRepository
	Metrics   ports.DayMetrics
	Service   player.DayService
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.PlayerID == "" {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	day := player.DayOf(now)
	if strings.TrimSpace(req.Day) != "" {
		parsed, err := player.ParseDay(req.Day)
		if err != nil {
			return Response{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		day = parsed
	}
	manual := normalizeManual(req.Manual)

	var (
		out       Response
		leveledUp bool
	)
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := u.DayRepo.GetByDay(txCtx, req.PlayerID, day)
		if err == nil && rec != nil {
			out = Response{Day: rec.Day, Replayed: true, Result: rec.Result, Version: rec.Version}
			return nil
		}
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		state, err := u.StateRepo.GetByPlayerID(txCtx, req.PlayerID)
		if err != nil {
			return err
		}
		if state.LastDay != "" && day <= state.LastDay {
			return ErrDayOutOfOrder
		}

		rules := u.Service.Rules()
		result := u.Service.ProcessDay(req.Input, state.Previous(), manual)
		next := state.Apply(day, result, rules.HistoryDepth(), now)
		if err := u.StateRepo.SaveWithVersion(txCtx, next, state.Version); err != nil {
			return err
		}
		if err := u.DayRepo.Save(txCtx, ports.DayRecord{
			PlayerID:    req.PlayerID,
			Day:         day,
			Input:       req.Input.Clamped(),
			Manual:      manual,
			Result:      result,
			Version:     next.Version,
			ProcessedAt: now,
		}); err != nil {
			return err
		}

		leveledUp = result.Progression.Level > rules.Curve.LevelFor(state.CumulativeReward)
		out = Response{Day: day, Result: result, Version: next.Version}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			switch {
			case errors.Is(err, ports.ErrConflict):
				u.Metrics.RecordConflict()
			case errors.Is(err, ErrDayOutOfOrder), errors.Is(err, ports.ErrNotFound):
			default:
				u.Metrics.RecordFailure()
			}
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		if out.Replayed {
			u.Metrics.RecordReplayed()
		} else {
			u.Metrics.RecordProcessed(out.Result.Narrative.State, leveledUp)
		}
	}
	return out, nil
}

func normalizeManual(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
