package inmemory

import (
	"sync"

	"respawn/internal/domain/player"
)

type Snapshot struct {
	DayTotal     uint64            `json:"day_total"`
	DayProcessed uint64            `json:"day_processed"`
	DayReplayed  uint64            `json:"day_replayed"`
	DayConflict  uint64            `json:"day_conflict"`
	DayFailure   uint64            `json:"day_failure"`
	LevelUps     uint64            `json:"level_ups"`
	ByMood       map[string]uint64 `json:"by_character_state"`
}

type Recorder struct {
	mu        sync.Mutex
	processed uint64
	replayed  uint64
	conflict  uint64
	failure   uint64
	levelUps  uint64
	byMood    map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byMood: map[string]uint64{},
	}
}

func (r *Recorder) RecordProcessed(mood player.Mood, leveledUp bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed++
	r.byMood[string(mood)]++
	if leveledUp {
		r.levelUps++
	}
}

func (r *Recorder) RecordReplayed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replayed++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		DayProcessed: r.processed,
		DayReplayed:  r.replayed,
		DayConflict:  r.conflict,
		DayFailure:   r.failure,
		DayTotal:     r.processed + r.replayed + r.conflict + r.failure,
		LevelUps:     r.levelUps,
		ByMood:       make(map[string]uint64, len(r.byMood)),
	}
	for k, v := range r.byMood {
		out.ByMood[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
