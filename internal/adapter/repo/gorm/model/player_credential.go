package model

import "time"

const TableNamePlayerCredential = "player_credentials"

type PlayerCredential struct {
	PlayerID     string    `gorm:"column:player_id;primaryKey" json:"player_id"`
	Email        string    `gorm:"column:email;not null" json:"email"`
	PasswordHash []byte    `gorm:"column:password_hash;not null" json:"password_hash"`
	Status       string    `gorm:"column:status;not null" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (*PlayerCredential) TableName() string {
	return TableNamePlayerCredential
}
