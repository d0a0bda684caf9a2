package memory

import (
	"context"

	"respawn/internal/app/ports"
	"respawn/internal/domain/player"
)

type PlayerStateRepo struct {
	store *Store
}

func NewPlayerStateRepo(store *Store) PlayerStateRepo {
	return PlayerStateRepo{store: store}
}

func (r PlayerStateRepo) GetByPlayerID(ctx context.Context, playerID string) (player.Aggregate, error) {
	var (
		state player.Aggregate
		ok    bool
	)
	r.store.read(ctx, func() {
		state, ok = r.store.state[playerID]
	})
	if !ok {
		return player.Aggregate{}, ports.ErrNotFound
	}
	return state, nil
}

func (r PlayerStateRepo) SaveWithVersion(ctx context.Context, state player.Aggregate, expectedVersion int64) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.state[state.PlayerID]
		if !ok {
			if expectedVersion != 0 {
				return ports.ErrConflict
			}
			r.store.state[state.PlayerID] = state
			return nil
		}
		if current.Version != expectedVersion {
			return ports.ErrConflict
		}
		r.store.state[state.PlayerID] = state
		return nil
	})
}
