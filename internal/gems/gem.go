package gems

import "time"

// GemAward represents gems earned for one question.
type GemAward struct {
	Type       GemType
	Amount     int
	SessionID  string
	QuestionID string
	Reason     string
	AwardedAt  time.Time
}

// NewAward builds the award of type t for a question.
func NewAward(t GemType, sessionID, questionID string, now time.Time) GemAward {
	return GemAward{
		Type:       t,
		Amount:     t.Amount(),
		SessionID:  sessionID,
		QuestionID: questionID,
		Reason:     t.DisplayName(),
		AwardedAt:  now,
	}
}
