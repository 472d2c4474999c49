package game

import "time"

var lineScores = [...]int{0, 100, 300, 500, 800}

// ScoreFor returns the points awarded for clearing lines rows in a single
// lock. Counts outside 0..4 score nothing.
func ScoreFor(lines int) int {
	if lines < 0 || lines >= len(lineScores) {
		return 0
	}
	return lineScores[lines]
}

// LevelFor derives the level from a score: one level per 1000 points,
// starting at 1.
func LevelFor(score int) int {
	return score/1000 + 1
}

// TickInterval is the gravity period a driver should use at level, given a
// base rate in ticks per second. The rate is baseRate + level.
func TickInterval(level, baseRate int) time.Duration {
	rate := baseRate + level
	if rate < 1 {
		rate = 1
	}
	return time.Second / time.Duration(rate)
}
