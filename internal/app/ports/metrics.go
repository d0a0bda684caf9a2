package ports

import "respawn/internal/domain/player"

type DayMetrics interface {
	RecordProcessed(mood player.Mood, leveledUp bool)
	RecordReplayed()
	RecordConflict()
	RecordFailure()
}
