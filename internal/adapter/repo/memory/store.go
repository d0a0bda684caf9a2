package memory

import (
	"context"
	"maps"
	"sync"

	"respawn/internal/app/ports"
	"respawn/internal/domain/player"
)

type txKey struct{}

// Store holds every in-memory table behind one lock. Repos called inside
// TxManager.RunInTx already hold it.
type Store struct {
	mu          sync.RWMutex
	state       map[string]player.Aggregate
	days        map[string]map[string]ports.DayRecord
	credentials map[string]ports.CredentialRecord
}

func NewStore() *Store {
	return &Store{
		state:       make(map[string]player.Aggregate),
		days:        make(map[string]map[string]ports.DayRecord),
		credentials: make(map[string]ports.CredentialRecord),
	}
}

func (s *Store) SeedState(state player.Aggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[state.PlayerID] = state
}

func (s *Store) read(ctx context.Context, fn func()) {
	if inTx(ctx) {
		fn()
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if inTx(ctx) {
		return fn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

type tables struct {
	state       map[string]player.Aggregate
	days        map[string]map[string]ports.DayRecord
	credentials map[string]ports.CredentialRecord
}

// snapshot copies the tables. Repos replace whole values, so copying the
// maps is enough. Callers hold mu.
func (s *Store) snapshot() tables {
	days := make(map[string]map[string]ports.DayRecord, len(s.days))
	for playerID, byDay := range s.days {
		days[playerID] = maps.Clone(byDay)
	}
	return tables{
		state:       maps.Clone(s.state),
		days:        days,
		credentials: maps.Clone(s.credentials),
	}
}

func (s *Store) restore(t tables) {
	s.state = t.state
	s.days = t.days
	s.credentials = t.credentials
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}
