package session

import (
	"time"

	"github.com/abhisek/ziggy/internal/problemgen"
)

// DefaultMissionSize is the number of questions in a mission when the
// learner has not chosen one.
const DefaultMissionSize = 10

// MissionSizes are the sizes offered on the setup screen.
var MissionSizes = []int{5, 10, 15}

// DefaultAutoAdvance is how long a correct answer stays on screen before
// the next question.
const DefaultAutoAdvance = 5 * time.Second

// Plan is the ordered list of questions chosen for a mission.
type Plan struct {
	Domain     problemgen.Domain
	Difficulty int
	Size       int
	Day        string
	Seed       string

	// QuestionIDs holds min(Size, pool) ids in serving order.
	QuestionIDs []string

	// FellBack is true when the exact-difficulty pool was too small and the
	// whole domain was used instead.
	FellBack bool
}
