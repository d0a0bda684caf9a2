package memory

import (
	"context"
	"sort"

	"respawn/internal/app/ports"
)

type DayRecordRepo struct {
	store *Store
}

func NewDayRecordRepo(store *Store) DayRecordRepo {
	return DayRecordRepo{store: store}
}

func (r DayRecordRepo) GetByDay(ctx context.Context, playerID, day string) (*ports.DayRecord, error) {
	var (
		rec ports.DayRecord
		ok  bool
	)
	r.store.read(ctx, func() {
		rec, ok = r.store.days[playerID][day]
	})
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &rec, nil
}

func (r DayRecordRepo) Save(ctx context.Context, record ports.DayRecord) error {
	return r.store.write(ctx, func() error {
		days, ok := r.store.days[record.PlayerID]
		if !ok {
			days = make(map[string]ports.DayRecord)
			r.store.days[record.PlayerID] = days
		}
		if _, exists := days[record.Day]; exists {
			return ports.ErrConflict
		}
		days[record.Day] = record
		return nil
	})
}

func (r DayRecordRepo) ListByPlayerID(ctx context.Context, playerID string, q ports.DayQuery) ([]ports.DayRecord, error) {
	var out []ports.DayRecord
	r.store.read(ctx, func() {
		out = make([]ports.DayRecord, 0, len(r.store.days[playerID]))
		for _, rec := range r.store.days[playerID] {
			if q.From != "" && rec.Day < q.From {
				continue
			}
			if q.To != "" && rec.Day > q.To {
				continue
			}
			out = append(out, rec)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}
