package history

import "respawn/internal/domain/player"

type Request struct {
	PlayerID string
	Limit    int
	// From and To bound the day keys inclusively. Empty means open.
	From string
	To   string
}

type Entry struct {
	Day         string            `json:"day"`
	Input       player.DailyInput `json:"input"`
	Manual      []string          `json:"manual_completions"`
	Result      player.DayState   `json:"result"`
	ProcessedAt int64             `json:"processed_at"`
}

type Response struct {
	Days    []Entry `json:"days"`
	Summary Summary `json:"summary"`
}

type Summary struct {
	Days            int               `json:"days"`
	RewardEarned    int               `json:"xp_gained"`
	CompletedCount  int               `json:"quests_completed"`
	EncountersWon   int               `json:"bosses_defeated"`
	EncountersLost  int               `json:"bosses_expired"`
	AverageTrend    float64           `json:"average_trend"`
	MoodCounts      map[string]int    `json:"character_states"`
	AverageSnapshot player.Attributes `json:"average_stats"`
}
