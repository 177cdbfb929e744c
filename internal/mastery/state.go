package mastery

// Status represents a subskill's position in the mastery lifecycle.
type Status string

const (
	StatusUnseen   Status = "unseen"
	StatusLearning Status = "learning"
	StatusMastered Status = "mastered"
)

// MasteryStreak is the run of correct first attempts that masters a subskill.
const MasteryStreak = 3

// StateTransition records a status change for display and event logging.
type StateTransition struct {
	Subskill string
	From     Status
	To       Status
}
