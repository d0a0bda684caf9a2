package calendar

import (
	"context"
	"errors"
	"strings"
	"time"

	"respawn/internal/app/ports"
	"respawn/internal/domain/player"
)

const MaxDaysLeft = 365

var ErrInvalidRequest = errors.New("invalid calendar request")

type Request struct {
	PlayerID string
	// Clear removes the pending event; Name and DaysLeft are ignored.
	Clear    bool
	Name     string
	DaysLeft int
}

type Response struct {
	CalendarEvent *player.CalendarEvent `json:"calendar_event"`
	Version       int64                 `json:"version"`
}

// UseCase sets or clears the one pending calendar event. The next day
// submitted within the trigger window spawns an encounter from it.
type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.PlayerStateRepository
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.Name = strings.TrimSpace(req.Name)
	if req.PlayerID == "" {
		return Response{}, ErrInvalidRequest
	}
	if !req.Clear && (req.Name == "" || req.DaysLeft < 0 || req.DaysLeft > MaxDaysLeft) {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.StateRepo.GetByPlayerID(txCtx, req.PlayerID)
		if err != nil {
			return err
		}
		next := state
		if req.Clear {
			next.CalendarEvent = nil
		} else {
			next.CalendarEvent = &player.CalendarEvent{Name: req.Name, DaysLeft: req.DaysLeft}
		}
		next.Version = state.Version + 1
		next.UpdatedAt = nowFn().UTC()
		if err := u.StateRepo.SaveWithVersion(txCtx, next, state.Version); err != nil {
			return err
		}
		out = Response{CalendarEvent: next.CalendarEvent, Version: next.Version}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}
