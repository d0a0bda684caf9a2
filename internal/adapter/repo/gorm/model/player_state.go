package model

import "time"

const TableNamePlayerState = "player_states"

type PlayerState struct {
	PlayerID           string    `gorm:"column:player_id;primaryKey" json:"player_id"`
	DisplayName        string    `gorm:"column:display_name;not null" json:"display_name"`
	Attributes         []byte    `gorm:"column:attributes;type:jsonb" json:"attributes"`
	CumulativeReward   int64     `gorm:"column:cumulative_reward;not null" json:"cumulative_reward"`
	Encounter          []byte    `gorm:"column:encounter;type:jsonb" json:"encounter"`
	RecentObjectiveIDs []byte    `gorm:"column:recent_objective_ids;type:jsonb;not null" json:"recent_objective_ids"`
	ObjectiveHistory   []byte    `gorm:"column:objective_history;type:jsonb;not null" json:"objective_history"`
	CalendarEvent      []byte    `gorm:"column:calendar_event;type:jsonb" json:"calendar_event"`
	LastDay            string    `gorm:"column:last_day;not null" json:"last_day"`
	LastResult         []byte    `gorm:"column:last_result;type:jsonb" json:"last_result"`
	Version            int64     `gorm:"column:version;not null" json:"version"`
	UpdatedAt          time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (*PlayerState) TableName() string {
	return TableNamePlayerState
}
