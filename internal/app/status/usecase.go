package status

import (
	"context"
	"errors"
	"strings"

	"respawn/internal/app/ports"
	"respawn/internal/domain/player"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	StateRepo ports.PlayerStateRepository
	Rules     player.Rules
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.PlayerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	state, err := u.StateRepo.GetByPlayerID(ctx, req.PlayerID)
	if err != nil {
		return Response{}, err
	}
	attrs := u.Rules.Base
	if state.Attributes != nil {
		attrs = state.Attributes.Clamped()
	}
	return Response{
		PlayerID:      state.PlayerID,
		DisplayName:   state.DisplayName,
		Attributes:    attrs,
		Progression:   u.Rules.Curve.Progress(state.CumulativeReward),
		Encounter:     state.Encounter,
		CalendarEvent: state.CalendarEvent,
		LastDay:       state.LastDay,
		LastResult:    state.LastResult,
		Version:       state.Version,
	}, nil
}
