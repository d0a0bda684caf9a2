package day

import "respawn/internal/domain/player"

type Request struct {
	PlayerID string
	// Day is a YYYY-MM-DD key. Empty means today in UTC.
	Day    string
	Input  player.DailyInput
	Manual []string
}

type Response struct {
	Day      string          `json:"day"`
	Replayed bool            `json:"replayed"`
	Result   player.DayState `json:"result"`
	Version  int64           `json:"version"`
}
