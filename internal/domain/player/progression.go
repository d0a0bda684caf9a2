package player

import (
	"errors"
	"math"
)

// MaxCumulativeReward bounds the reward total so thresholds never overflow.
const MaxCumulativeReward = 1 << 62

type Progression struct {
	Level              int `json:"level"`
	CumulativeReward   int `json:"total_xp"`
	NextLevelThreshold int `json:"xp_for_next_level"`
	ProgressInLevel    int `json:"xp_progress_in_level"`
}

// LevelCurve: reaching level 2 costs FirstIncrement and every later level
// costs IncrementStep more than the one before.
type LevelCurve struct {
	FirstIncrement int
	IncrementStep  int
}

func (c LevelCurve) Validate() error {
	if c.FirstIncrement <= 0 {
		return errors.New("level curve first increment must be positive")
	}
	if c.IncrementStep < 0 {
		return errors.New("level curve step must not be negative")
	}
	return nil
}

// Threshold is the cumulative reward needed to reach level. Level 1 and below
// need 0. Values past MaxCumulativeReward saturate to math.MaxInt.
func (c LevelCurve) Threshold(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	approx := float64(n)*float64(c.FirstIncrement) + float64(c.IncrementStep)*float64(n)*float64(n-1)/2
	if approx > MaxCumulativeReward {
		return math.MaxInt
	}
	total := n * c.FirstIncrement
	if c.IncrementStep > 0 {
		total += c.IncrementStep * triangular(n-1)
	}
	return total
}

// LevelFor returns the highest level whose threshold is covered by reward.
func (c LevelCurve) LevelFor(reward int) int {
	reward = clampInt(reward, 0, MaxCumulativeReward)
	if reward < c.Threshold(2) {
		return 1
	}
	level := c.estimateLevel(reward)
	for level > 1 && c.Threshold(level) > reward {
		level--
	}
	for c.Threshold(level+1) <= reward {
		level++
	}
	return level
}

// estimateLevel solves step/2*n^2 + (first-step/2)*n = reward for n = level-1.
func (c LevelCurve) estimateLevel(reward int) int {
	r := float64(reward)
	a := float64(c.IncrementStep) / 2
	b := float64(c.FirstIncrement) - a
	var n float64
	if a == 0 {
		n = r / b
	} else {
		n = (-b + math.Sqrt(b*b+4*a*r)) / (2 * a)
	}
	if n < 0 || math.IsNaN(n) {
		n = 0
	}
	return int(n) + 1
}

// AddReward adds earned to total, both clamped to [0, MaxCumulativeReward],
// saturating at MaxCumulativeReward.
func AddReward(total, earned int) int {
	total = clampInt(total, 0, MaxCumulativeReward)
	earned = clampInt(earned, 0, MaxCumulativeReward)
	if earned > MaxCumulativeReward-total {
		return MaxCumulativeReward
	}
	return total + earned
}

func (c LevelCurve) Progress(reward int) Progression {
	reward = clampInt(reward, 0, MaxCumulativeReward)
	level := c.LevelFor(reward)
	return Progression{
		Level:              level,
		CumulativeReward:   reward,
		NextLevelThreshold: c.Threshold(level + 1),
		ProgressInLevel:    reward - c.Threshold(level),
	}
}

// triangular returns 1+2+...+k without forming k*(k+1) first.
func triangular(k int) int {
	if k%2 == 0 {
		return (k / 2) * (k + 1)
	}
	return k * ((k + 1) / 2)
}
