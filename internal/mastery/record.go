package mastery

import (
	"slices"
	"time"

	"github.com/abhisek/ziggy/internal/problemgen"
)

// Record is the mastery state of one subskill.
type Record struct {
	Subskill        string
	Status          Status
	StreakCorrect   int
	TotalAttempts   int
	CorrectAttempts int
	// Difficulty is the subskill's own level, raised once when it is mastered.
	Difficulty int
	// ReviewQueue holds the ids of missed questions, without duplicates.
	ReviewQueue []string
	LastSeen    *time.Time
}

// NewRecord returns the record of a subskill that has never been seen.
func NewRecord(subskill string) Record {
	return Record{
		Subskill:    subskill,
		Status:      StatusUnseen,
		Difficulty:  problemgen.MinLevel,
		ReviewQueue: []string{},
	}
}

// Update returns rec after one answer to questionID. A correct answer grows
// the streak and masters the subskill on reaching MasteryStreak; a wrong one
// resets the streak, moves an unseen subskill to learning and queues the
// question for review. rec is not modified.
func Update(rec Record, wasCorrect bool, questionID string, now time.Time) Record {
	out := rec
	out.ReviewQueue = slices.Clone(rec.ReviewQueue)
	if out.ReviewQueue == nil {
		out.ReviewQueue = []string{}
	}
	if out.Difficulty < problemgen.MinLevel {
		out.Difficulty = problemgen.MinLevel
	}

	out.TotalAttempts++
	seen := now
	out.LastSeen = &seen

	if wasCorrect {
		out.CorrectAttempts++
		out.StreakCorrect++
		if out.StreakCorrect >= MasteryStreak && out.Status != StatusMastered {
			out.Status = StatusMastered
			out.Difficulty = min(out.Difficulty+1, problemgen.MaxLevel)
		}
		return out
	}

	out.StreakCorrect = 0
	if out.Status == StatusUnseen {
		out.Status = StatusLearning
	}
	if questionID != "" && !slices.Contains(out.ReviewQueue, questionID) {
		out.ReviewQueue = append(out.ReviewQueue, questionID)
	}
	return out
}

// Accuracy returns the share of correct attempts, or 0 before any attempt.
func (r Record) Accuracy() float64 {
	if r.TotalAttempts == 0 {
		return 0
	}
	return float64(r.CorrectAttempts) / float64(r.TotalAttempts)
}
