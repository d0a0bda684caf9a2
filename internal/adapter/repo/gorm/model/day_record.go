package model

import "time"

const TableNameDayRecord = "day_records"

type DayRecord struct {
	PlayerID    string    `gorm:"column:player_id;primaryKey" json:"player_id"`
	Day         string    `gorm:"column:day;primaryKey" json:"day"`
	Input       []byte    `gorm:"column:input;type:jsonb;not null" json:"input"`
	Manual      []byte    `gorm:"column:manual;type:jsonb;not null" json:"manual"`
	Result      []byte    `gorm:"column:result;type:jsonb;not null" json:"result"`
	Version     int64     `gorm:"column:version;not null" json:"version"`
	ProcessedAt time.Time `gorm:"column:processed_at;not null" json:"processed_at"`
}

func (*DayRecord) TableName() string {
	return TableNameDayRecord
}
