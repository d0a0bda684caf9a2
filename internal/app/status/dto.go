package status

import "respawn/internal/domain/player"

type Request struct {
	PlayerID string
}

type Response struct {
	PlayerID      string                `json:"player_id"`
	DisplayName   string                `json:"display_name,omitempty"`
	Attributes    player.Attributes     `json:"stats"`
	Progression   player.Progression    `json:"xp"`
	Encounter     *player.Encounter     `json:"boss"`
	CalendarEvent *player.CalendarEvent `json:"calendar_event"`
	LastDay       string                `json:"last_day,omitempty"`
	LastResult    *player.DayState      `json:"last_result,omitempty"`
	Version       int64                 `json:"version"`
}
