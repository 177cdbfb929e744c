package mastery

import "github.com/abhisek/ziggy/internal/problemgen"

// Accuracy thresholds for moving between levels.
const (
	LevelUpAccuracy   = 0.8
	LevelDownAccuracy = 0.5
)

// UpdateLevel returns the domain level after a mission with correct answers
// out of total. Accuracy of at least 80% moves up a level, 50% or less moves
// down one, and anything between keeps the level. Levels stay within 1-5. A
// total of zero is treated as one.
func UpdateLevel(level, correct, total int) int {
	accuracy := float64(correct) / float64(max(1, total))
	switch {
	case accuracy >= LevelUpAccuracy:
		level++
	case accuracy <= LevelDownAccuracy:
		level--
	}
	return min(max(level, problemgen.MinLevel), problemgen.MaxLevel)
}
