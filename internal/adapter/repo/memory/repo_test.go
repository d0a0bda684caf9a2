package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"respawn/internal/app/ports"
	"respawn/internal/domain/player"
)

var (
	_ ports.PlayerStateRepository = PlayerStateRepo{}
	_ ports.DayRecordRepository   = DayRecordRepo{}
	_ ports.CredentialRepository  = CredentialRepo{}
	_ ports.TxManager             = TxManager{}
)

func TestPlayerStateRepo_OptimisticVersion(t *testing.T) {
	store := NewStore()
	repo := NewPlayerStateRepo(store)
	ctx := context.Background()

	if _, err := repo.GetByPlayerID(ctx, "p1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	seed := player.NewAggregate("p1", "Ada", time.Unix(0, 0))
	if err := repo.SaveWithVersion(ctx, seed, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict on missing row with version 1, got %v", err)
	}
	if err := repo.SaveWithVersion(ctx, seed, 0); err != nil {
		t.Fatalf("seed: %v", err)
	}

	next := seed
	next.Version = 2
	if err := repo.SaveWithVersion(ctx, next, 1); err != nil {
		t.Fatalf("save v2: %v", err)
	}
	if err := repo.SaveWithVersion(ctx, next, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected stale save to conflict, got %v", err)
	}
	got, err := repo.GetByPlayerID(ctx, "p1")
	if err != nil || got.Version != 2 {
		t.Fatalf("expected version 2, got %d err=%v", got.Version, err)
	}
}

func TestDayRecordRepo_NewestFirstAndUnique(t *testing.T) {
	store := NewStore()
	repo := NewDayRecordRepo(store)
	ctx := context.Background()

	for _, day := range []string{"2026-03-02", "2026-03-01", "2026-03-03"} {
		if err := repo.Save(ctx, ports.DayRecord{PlayerID: "p1", Day: day}); err != nil {
			t.Fatalf("save %s: %v", day, err)
		}
	}
	if err := repo.Save(ctx, ports.DayRecord{PlayerID: "p1", Day: "2026-03-01"}); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected duplicate day conflict, got %v", err)
	}

	got, err := repo.ListByPlayerID(ctx, "p1", ports.DayQuery{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Day != "2026-03-03" || got[1].Day != "2026-03-02" {
		t.Fatalf("unexpected order %+v", got)
	}
	window, err := repo.ListByPlayerID(ctx, "p1", ports.DayQuery{From: "2026-03-02", Limit: 1})
	if err != nil {
		t.Fatalf("list window: %v", err)
	}
	if len(window) != 1 || window[0].Day != "2026-03-03" {
		t.Fatalf("unexpected window %+v", window)
	}
	window, err = repo.ListByPlayerID(ctx, "p1", ports.DayQuery{To: "2026-03-02"})
	if err != nil {
		t.Fatalf("list window: %v", err)
	}
	if len(window) != 2 || window[0].Day != "2026-03-02" || window[1].Day != "2026-03-01" {
		t.Fatalf("unexpected window %+v", window)
	}
	if rec, err := repo.GetByDay(ctx, "p2", "2026-03-01"); rec != nil || !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected not found for other player, got %v", err)
	}
}

func TestCredentialRepo_EmailIsCaseInsensitive(t *testing.T) {
	repo := NewCredentialRepo(NewStore())
	ctx := context.Background()

	if err := repo.Create(ctx, ports.CredentialRecord{PlayerID: "p1", Email: "ada@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, ports.CredentialRecord{PlayerID: "p2", Email: "ADA@example.com"}); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	got, err := repo.GetByEmail(ctx, "Ada@Example.com")
	if err != nil || got.PlayerID != "p1" {
		t.Fatalf("expected p1, got %+v err=%v", got, err)
	}
}

func TestTxManager_NestedCallsDoNotDeadlock(t *testing.T) {
	store := NewStore()
	tx := NewTxManager(store)
	repo := NewPlayerStateRepo(store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tx.RunInTx(context.Background(), func(ctx context.Context) error {
				return tx.RunInTx(ctx, func(ctx context.Context) error {
					state, err := repo.GetByPlayerID(ctx, "p1")
					if errors.Is(err, ports.ErrNotFound) {
						return repo.SaveWithVersion(ctx, player.NewAggregate("p1", "", time.Unix(0, 0)), 0)
					}
					next := state
					next.Version++
					return repo.SaveWithVersion(ctx, next, state.Version)
				})
			})
		}()
	}
	wg.Wait()

	got, err := repo.GetByPlayerID(context.Background(), "p1")
	if err != nil || got.Version != 8 {
		t.Fatalf("expected 8 serialized writes, got version %d err=%v", got.Version, err)
	}
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	store := NewStore()
	tx := NewTxManager(store)
	creds := NewCredentialRepo(store)
	days := NewDayRecordRepo(store)
	states := NewPlayerStateRepo(store)
	ctx := context.Background()

	if err := states.SaveWithVersion(ctx, player.NewAggregate("p1", "Ada", time.Unix(0, 0)), 0); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := days.Save(ctx, ports.DayRecord{PlayerID: "p1", Day: "2026-03-01"}); err != nil {
		t.Fatalf("seed day: %v", err)
	}

	boom := errors.New("state write failed")
	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := creds.Create(ctx, ports.CredentialRecord{PlayerID: "p2", Email: "bo@example.com"}); err != nil {
			return err
		}
		if err := days.Save(ctx, ports.DayRecord{PlayerID: "p1", Day: "2026-03-02"}); err != nil {
			return err
		}
		next := player.NewAggregate("p1", "Renamed", time.Unix(1, 0))
		next.Version = 2
		if err := states.SaveWithVersion(ctx, next, 1); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected tx error, got %v", err)
	}

	if _, err := creds.GetByEmail(ctx, "bo@example.com"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected credential rolled back, got %v", err)
	}
	if _, err := days.GetByDay(ctx, "p1", "2026-03-02"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected day record rolled back, got %v", err)
	}
	if got, _ := days.ListByPlayerID(ctx, "p1", ports.DayQuery{}); len(got) != 1 {
		t.Fatalf("expected the seeded day to survive, got %+v", got)
	}
	state, err := states.GetByPlayerID(ctx, "p1")
	if err != nil || state.Version != 1 || state.DisplayName != "Ada" {
		t.Fatalf("expected state rolled back to version 1, got %+v err=%v", state, err)
	}
}
