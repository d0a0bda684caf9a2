package encounter

import (
	"context"
	"errors"
	"strings"
	"time"

	"respawn/internal/app/ports"
	"respawn/internal/domain/player"
)

const (
	DefaultName = "Burnout Beast"
	MaxDays     = 14
)

var (
	ErrInvalidRequest  = errors.New("invalid encounter request")
	ErrEncounterActive = errors.New("encounter already active")
)

type Request struct {
	PlayerID string
	Name     string
	// Days defaults to player.DefaultEncounterDays when zero.
	Days int
}

type Response struct {
	Encounter player.Encounter `json:"boss"`
	Version   int64            `json:"version"`
}

// UseCase summons an attribute-origin encounter on demand. Only one encounter
// can be active per player.
type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.PlayerStateRepository
	Rules     player.EncounterRules
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.Name = strings.TrimSpace(req.Name)
	if req.PlayerID == "" || req.Days < 0 || req.Days > MaxDays {
		return Response{}, ErrInvalidRequest
	}
	if req.Name == "" {
		req.Name = DefaultName
	}
	if req.Days == 0 {
		req.Days = player.DefaultEncounterDays
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
		if state.Encounter != nil && state.Encounter.Active() {
			return ErrEncounterActive
		}
		e := player.NewEncounter(req.Name, player.OriginAttribute, req.Days, u.Rules)
		next := state
		next.Encounter = &e
		next.Version = state.Version + 1
		next.UpdatedAt = nowFn().UTC()
		if err := u.StateRepo.SaveWithVersion(txCtx, next, state.Version); err != nil {
			return err
		}
		out = Response{Encounter: e, Version: next.Version}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}
