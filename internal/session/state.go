package session

import (
	"time"

	"github.com/abhisek/ziggy/internal/problemgen"
)

// Phase is the position of a mission in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePresenting
	PhaseAwaitingFirstAnswer
	PhaseAwaitingRetry
	PhaseCorrect
	PhaseIncorrectFinal
	PhaseAdvancing
	PhaseCompleted
	PhaseQuit
	PhaseTimeUp
)

var phaseNames = map[Phase]string{
	PhaseIdle:                "idle",
	PhasePresenting:          "presenting",
	PhaseAwaitingFirstAnswer: "awaiting-first-answer",
	PhaseAwaitingRetry:       "awaiting-retry",
	PhaseCorrect:             "correct",
	PhaseIncorrectFinal:      "incorrect-final",
	PhaseAdvancing:           "advancing",
	PhaseCompleted:           "completed",
	PhaseQuit:                "quit",
	PhaseTimeUp:              "time-up",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// AcceptsAnswers reports whether a choice may be submitted in this phase.
func (p Phase) AcceptsAnswers() bool {
	return p == PhaseAwaitingFirstAnswer || p == PhaseAwaitingRetry
}

// Terminal reports whether the mission has ended.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseQuit || p == PhaseTimeUp
}

// View is an immutable snapshot of the engine for rendering.
type View struct {
	// Seq increases with every event; a larger Seq is a newer view.
	Seq uint64

	SessionID string
	Phase     Phase
	Domain    problemgen.Domain
	Level     int

	// Index is the zero-based position of Question in the mission.
	Index    int
	Total    int
	Question *problemgen.Question

	// Hint is set once the hint has been revealed.
	Hint string
	// RevealedAnswer is set after a second wrong attempt.
	RevealedAnswer string
	LastChoice     string
	LastCorrect    bool

	CorrectCount int
	GemCount     int

	// AutoAdvanceIn counts down the seconds until the next question.
	AutoAdvanceIn int

	TimerStatus TimerStatus
	Remaining   time.Duration

	// Result is set once the mission has completed.
	Result *Result
}

// EventKind identifies what happened in the engine.
type EventKind int

const (
	EventQuestion EventKind = iota
	EventAnswered
	EventHint
	EventAutoAdvanceTick
	EventTick
	EventTimeWarning
	EventTimeUp
	EventCompleted
	EventQuit
	EventError
)

// Event is delivered to the listener after every state change.
type Event struct {
	Kind EventKind
	View View

	// Mastery is set when an answer changed a subskill's status.
	Mastery *MasteryChange

	// Err is set on EventError, raised by timer callbacks that fail to
	// persist.
	Err error
}

// MasteryChange describes a subskill status change caused by an answer.
type MasteryChange struct {
	Subskill string
	From     string
	To       string
}

// Listener receives engine events. It is called outside the engine lock, in
// order, and must not block for long.
type Listener func(Event)
