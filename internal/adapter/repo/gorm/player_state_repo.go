package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"respawn/internal/adapter/repo/gorm/model"
	"respawn/internal/app/ports"
	"respawn/internal/domain/player"

	"gorm.io/gorm"
)

type PlayerStateRepo struct {
	db *gorm.DB
}

func NewPlayerStateRepo(db *gorm.DB) PlayerStateRepo {
	return PlayerStateRepo{db: db}
}

func (r PlayerStateRepo) GetByPlayerID(ctx context.Context, playerID string) (player.Aggregate, error) {
	var m model.PlayerState
	if err := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return player.Aggregate{}, ports.ErrNotFound
		}
		return player.Aggregate{}, err
	}
	return toAggregate(m)
}

func (r PlayerStateRepo) SaveWithVersion(ctx context.Context, state player.Aggregate, expectedVersion int64) error {
	m, err := fromAggregate(state)
	if err != nil {
		return err
	}
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		if err := db.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	// Select lists every column so nil JSON payloads are written as NULL.
	res := db.Model(&model.PlayerState{}).
		Where("player_id = ? AND version = ?", state.PlayerID, expectedVersion).
		Select("display_name", "attributes", "cumulative_reward", "encounter", "recent_objective_ids",
			"objective_history", "calendar_event", "last_day", "last_result", "version", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func fromAggregate(state player.Aggregate) (model.PlayerState, error) {
	m := model.PlayerState{
		PlayerID:         state.PlayerID,
		DisplayName:      state.DisplayName,
		CumulativeReward: int64(state.CumulativeReward),
		LastDay:          state.LastDay,
		Version:          state.Version,
		UpdatedAt:        state.UpdatedAt.UTC(),
	}
	var err error
	if m.Attributes, err = encodeOptional(state.Attributes); err != nil {
		return model.PlayerState{}, fmt.Errorf("encode attributes: %w", err)
	}
	if m.Encounter, err = encodeOptional(state.Encounter); err != nil {
		return model.PlayerState{}, fmt.Errorf("encode encounter: %w", err)
	}
	if m.CalendarEvent, err = encodeOptional(state.CalendarEvent); err != nil {
		return model.PlayerState{}, fmt.Errorf("encode calendar event: %w", err)
	}
	if m.LastResult, err = encodeOptional(state.LastResult); err != nil {
		return model.PlayerState{}, fmt.Errorf("encode last result: %w", err)
	}
	if m.RecentObjectiveIDs, err = encodeList(state.RecentObjectiveIDs); err != nil {
		return model.PlayerState{}, fmt.Errorf("encode recent objectives: %w", err)
	}
	if m.ObjectiveHistory, err = encodeList(state.ObjectiveHistory); err != nil {
		return model.PlayerState{}, fmt.Errorf("encode objective history: %w", err)
	}
	return m, nil
}

func toAggregate(m model.PlayerState) (player.Aggregate, error) {
	out := player.Aggregate{
		PlayerID:         m.PlayerID,
		DisplayName:      m.DisplayName,
		CumulativeReward: int(m.CumulativeReward),
		LastDay:          m.LastDay,
		Version:          m.Version,
		UpdatedAt:        m.UpdatedAt,
	}
	if err := decodeOptional(m.Attributes, &out.Attributes); err != nil {
		return player.Aggregate{}, fmt.Errorf("decode attributes: %w", err)
	}
	if err := decodeOptional(m.Encounter, &out.Encounter); err != nil {
		return player.Aggregate{}, fmt.Errorf("decode encounter: %w", err)
	}
	if err := decodeOptional(m.CalendarEvent, &out.CalendarEvent); err != nil {
		return player.Aggregate{}, fmt.Errorf("decode calendar event: %w", err)
	}
	if err := decodeOptional(m.LastResult, &out.LastResult); err != nil {
		return player.Aggregate{}, fmt.Errorf("decode last result: %w", err)
	}
	if err := decodeOptional(m.RecentObjectiveIDs, &out.RecentObjectiveIDs); err != nil {
		return player.Aggregate{}, fmt.Errorf("decode recent objectives: %w", err)
	}
	if err := decodeOptional(m.ObjectiveHistory, &out.ObjectiveHistory); err != nil {
		return player.Aggregate{}, fmt.Errorf("decode objective history: %w", err)
	}
	return out, nil
}

func encodeOptional[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func encodeList[T any](v []T) ([]byte, error) {
	if v == nil {
		v = []T{}
	}
	return json.Marshal(v)
}

func decodeOptional(raw []byte, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
