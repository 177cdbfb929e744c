package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/ziggy/internal/problemgen"
)

// ErrCorruptRecord is returned when a stored record fails schema validation
// or a record about to be written is invalid.
var ErrCorruptRecord = errors.New("corrupt record")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Profile is created on first run.
type Profile struct {
	Nickname string `json:"nickname"`
}

// Colors are the theme colors chosen in settings.
type Colors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// Settings are the learner's preferences.
type Settings struct {
	Theme              string `json:"theme"`
	Colors             Colors `json:"colors"`
	Avatar             string `json:"avatar"`
	SoundOn            bool   `json:"soundOn"`
	ChildName          string `json:"childName"`
	DefaultMissionSize int    `json:"defaultMissionSize"`
	AutoAdvanceSpeed   int    `json:"autoAdvanceSpeed"` // seconds
}

// DefaultSettings are returned when no settings have been saved.
func DefaultSettings() Settings {
	return Settings{
		Theme: "space",
		Colors: Colors{
			Primary:   "#6366F1",
			Secondary: "#EC4899",
			Accent:    "#10B981",
		},
		Avatar:             "astronaut-1",
		SoundOn:            true,
		ChildName:          "Student",
		DefaultMissionSize: 10,
		AutoAdvanceSpeed:   5,
	}
}

// Levels holds the current difficulty level of each domain.
type Levels struct {
	Numeracy    int `json:"numeracy"`
	Reading     int `json:"reading"`
	Conventions int `json:"conventions"`
	Writing     int `json:"writing"`
}

// Get returns the level of d, or 1 for an unknown domain.
func (l Levels) Get(d problemgen.Domain) int {
	switch d {
	case problemgen.Numeracy:
		return l.Numeracy
	case problemgen.Reading:
		return l.Reading
	case problemgen.Conventions:
		return l.Conventions
	case problemgen.Writing:
		return l.Writing
	default:
		return problemgen.MinLevel
	}
}

// Set returns a copy of l with the level of d replaced.
func (l Levels) Set(d problemgen.Domain, level int) Levels {
	switch d {
	case problemgen.Numeracy:
		l.Numeracy = level
	case problemgen.Reading:
		l.Reading = level
	case problemgen.Conventions:
		l.Conventions = level
	case problemgen.Writing:
		l.Writing = level
	}
	return l
}

// Progress is the learner's long-lived progress.
type Progress struct {
	Levels    Levels    `json:"levels"`
	TotalGems int       `json:"totalGems"`
	CreatedAt time.Time `json:"createdAt"`
}

// Question outcomes persisted with a session so resume restores the screen
// the learner left.
const (
	OutcomePending   = ""
	OutcomeRetry     = "retry"
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
)

// SessionRecord is the persisted state of an in-progress mission.
type SessionRecord struct {
	SessionID    string            `json:"sessionId"`
	Module       problemgen.Domain `json:"module"`
	MissionSize  int               `json:"missionSize"`
	Level        int               `json:"level"`
	QuestionIDs  []string          `json:"questionIds"`
	QIndex       int               `json:"qIndex"`
	CorrectCount int               `json:"correctCount"`
	GemCount     int               `json:"gemCount"`
	BankVersion  string            `json:"bankVersion"`
	StartedAt    time.Time         `json:"startedAt"`
	ElapsedMs    int64             `json:"elapsedMs"`
	Outcome      string            `json:"outcome,omitempty"`
	HintShown    bool              `json:"hintShown,omitempty"`
}

// SubskillRecord is the persisted mastery state of one subskill.
type SubskillRecord struct {
	Status               string     `json:"status"`
	StreakCorrect        int        `json:"streakCorrect"`
	TotalAttempts        int        `json:"totalAttempts"`
	CorrectAttempts      int        `json:"correctAttempts"`
	Difficulty           int        `json:"difficulty"`
	ScheduledReviewQueue []string   `json:"scheduledReviewQueue"`
	LastSeen             *time.Time `json:"lastSeen,omitempty"`
}

// MasteryData holds every subskill record, keyed by subskill id.
type MasteryData struct {
	Subskills map[string]SubskillRecord `json:"subskills"`
}

// RecordRepo reads and writes the learner's records. Getters of records with
// defaults never return a not-found error.
type RecordRepo interface {
	// GetProfile returns nil if no profile has been created.
	GetProfile(ctx context.Context) (*Profile, error)
	SetProfile(ctx context.Context, p Profile) error

	GetSettings(ctx context.Context) (Settings, error)
	SetSettings(ctx context.Context, s Settings) error

	GetProgress(ctx context.Context) (Progress, error)
	SetProgress(ctx context.Context, p Progress) error

	// GetSession returns nil if no mission is in progress.
	GetSession(ctx context.Context) (*SessionRecord, error)
	SetSession(ctx context.Context, s SessionRecord) error
	// ClearSession removes the session record. Clearing twice is not an error.
	ClearSession(ctx context.Context) error

	GetMastery(ctx context.Context) (MasteryData, error)
	SetMastery(ctx context.Context, m MasteryData) error

	// SetSessionAndMastery writes both records atomically.
	SetSessionAndMastery(ctx context.Context, s SessionRecord, m MasteryData) error
	// CompleteSession writes progress and removes the session atomically.
	CompleteSession(ctx context.Context, p Progress) error

	// ResetProgress removes progress, mastery and the session atomically.
	ResetProgress(ctx context.Context) error
}

// SessionEventData captures a mission lifecycle event.
type SessionEventData struct {
	SessionID       string
	Action          string // "start", "resume", "quit", "timeup", "end"
	Module          string
	Level           int
	QuestionsServed int
	CorrectAnswers  int
	GemsEarned      int
	DurationSecs    float64
}

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID     string
	QuestionID    string
	Module        string
	Subskill      string
	Difficulty    int
	Attempt       int // 1 or 2
	LearnerAnswer string
	CorrectAnswer string
	Correct       bool
	TimeMs        int64
}

// GemEventData captures a gem award.
type GemEventData struct {
	SessionID  string
	QuestionID string
	Kind       string
	Amount     int
	Reason     string
}

// MasteryEventData captures a subskill status change.
type MasteryEventData struct {
	SessionID  string
	Subskill   string
	FromStatus string
	ToStatus   string
}

// GemEventRecord is a gem event read back from the log.
type GemEventRecord struct {
	SessionID  string
	QuestionID string
	Kind       string
	Amount     int
	Reason     string
	Sequence   int64
	Timestamp  time.Time
}

// SessionSummaryRecord is a completed mission read back from the log.
type SessionSummaryRecord struct {
	SessionID       string
	Module          string
	Level           int
	Timestamp       time.Time
	QuestionsServed int
	CorrectAnswers  int
	GemsEarned      int
	DurationSecs    float64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendGemEvent(ctx context.Context, data GemEventData) error
	AppendMasteryEvent(ctx context.Context, data MasteryEventData) error

	// QueryGemEvents returns gem events, newest first.
	QueryGemEvents(ctx context.Context, opts QueryOpts) ([]GemEventRecord, error)

	// QuerySessionSummaries returns completed missions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// SubskillAccuracy returns the share of correct answers and the number
	// of answers recorded for a subskill.
	SubskillAccuracy(ctx context.Context, subskill string) (float64, int, error)
}
