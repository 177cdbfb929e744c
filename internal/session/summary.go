package session

import (
	"time"

	"github.com/abhisek/ziggy/internal/problemgen"
)

// Result is the outcome of a completed mission, shown on the results screen.
type Result struct {
	SessionID   string
	Module      problemgen.Domain
	Correct     int
	Total       int
	Gems        int
	LevelBefore int
	LevelAfter  int
	TotalGems   int
	Duration    time.Duration
}

// Accuracy returns the share of questions answered correctly.
func (r Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// LevelChange returns +1, 0 or -1.
func (r Result) LevelChange() int {
	return r.LevelAfter - r.LevelBefore
}
