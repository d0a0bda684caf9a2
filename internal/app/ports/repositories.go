package ports

import (
	"context"
	"time"

	"respawn/internal/domain/player"
)

// DayRecord is the stored outcome of one submitted day. Replaying a day
// returns the record instead of recomputing it.
type DayRecord struct {
	PlayerID    string
	Day         string
	Input       player.DailyInput
	Manual      []string
	Result      player.DayState
	Version     int64
	ProcessedAt time.Time
}

type PlayerStateRepository interface {
	GetByPlayerID(ctx context.Context, playerID string) (player.Aggregate, error)
	SaveWithVersion(ctx context.Context, state player.Aggregate, expectedVersion int64) error
}

// DayQuery selects day records. From and To are inclusive YYYY-MM-DD bounds,
// empty means open. Limit <= 0 means all.
type DayQuery struct {
	From  string
	To    string
	Limit int
}

type DayRecordRepository interface {
	GetByDay(ctx context.Context, playerID, day string) (*DayRecord, error)
	Save(ctx context.Context, record DayRecord) error
	// ListByPlayerID returns the records matching q, newest day first.
	ListByPlayerID(ctx context.Context, playerID string, q DayQuery) ([]DayRecord, error)
}

type CredentialRecord struct {
	PlayerID     string
	Email        string
	PasswordHash []byte
	Status       string
	CreatedAt    time.Time
}

type CredentialRepository interface {
	Create(ctx context.Context, credential CredentialRecord) error
	GetByEmail(ctx context.Context, email string) (CredentialRecord, error)
}
