package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"respawn/internal/adapter/repo/gorm/model"
	"respawn/internal/app/ports"

	"gorm.io/gorm"
)

type DayRecordRepo struct {
	db *gorm.DB
}

func NewDayRecordRepo(db *gorm.DB) DayRecordRepo {
	return DayRecordRepo{db: db}
}

func (r DayRecordRepo) GetByDay(ctx context.Context, playerID, day string) (*ports.DayRecord, error) {
	var row model.DayRecord
	err := getDBFromCtx(ctx, r.db).
		Where("player_id = ? AND day = ?", playerID, day).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	rec, err := toDayRecord(row)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r DayRecordRepo) Save(ctx context.Context, record ports.DayRecord) error {
	input, err := json.Marshal(record.Input)
	if err != nil {
		return fmt.Errorf("marshal day input: %w", err)
	}
	manual, err := encodeList(record.Manual)
	if err != nil {
		return fmt.Errorf("marshal manual completions: %w", err)
	}
	result, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("marshal day result: %w", err)
	}
	row := model.DayRecord{
		PlayerID:    record.PlayerID,
		Day:         record.Day,
		Input:       input,
		Manual:      manual,
		Result:      result,
		Version:     record.Version,
		ProcessedAt: record.ProcessedAt.UTC(),
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r DayRecordRepo) ListByPlayerID(ctx context.Context, playerID string, q ports.DayQuery) ([]ports.DayRecord, error) {
	db := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID)
	if q.From != "" {
		db = db.Where("day >= ?", q.From)
	}
	if q.To != "" {
		db = db.Where("day <= ?", q.To)
	}
	db = db.Order("day DESC")
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	var rows []model.DayRecord
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.DayRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := toDayRecord(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func toDayRecord(row model.DayRecord) (ports.DayRecord, error) {
	rec := ports.DayRecord{
		PlayerID:    row.PlayerID,
		Day:         row.Day,
		Version:     row.Version,
		ProcessedAt: row.ProcessedAt,
	}
	if err := json.Unmarshal(row.Input, &rec.Input); err != nil {
		return ports.DayRecord{}, fmt.Errorf("unmarshal day input: %w", err)
	}
	if err := decodeOptional(row.Manual, &rec.Manual); err != nil {
		return ports.DayRecord{}, fmt.Errorf("unmarshal manual completions: %w", err)
	}
	if err := json.Unmarshal(row.Result, &rec.Result); err != nil {
		return ports.DayRecord{}, fmt.Errorf("unmarshal day result: %w", err)
	}
	return rec, nil
}
