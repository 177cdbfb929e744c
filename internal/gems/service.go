package gems

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/ziggy/internal/store"
)

// Service records gem awards in the event log.
type Service struct {
	eventRepo store.EventRepo
	log       logrus.FieldLogger

	// SessionGems accumulates gems awarded during the current session.
	SessionGems []GemAward
}

// NewService creates a gem service. eventRepo may be nil, in which case
// awards are only accumulated in memory.
func NewService(eventRepo store.EventRepo, log logrus.FieldLogger) *Service {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Service{eventRepo: eventRepo, log: log}
}

// Record appends award to the session tally and the event log. A failed
// append is logged and otherwise ignored: the gem total itself lives in the
// session record.
func (s *Service) Record(ctx context.Context, award GemAward) {
	s.SessionGems = append(s.SessionGems, award)
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.AppendGemEvent(ctx, store.GemEventData{
		SessionID:  award.SessionID,
		QuestionID: award.QuestionID,
		Kind:       string(award.Type),
		Amount:     award.Amount,
		Reason:     award.Reason,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id":  award.SessionID,
			"question_id": award.QuestionID,
		}).WithError(err).Warn("append gem event")
	}
}

// SessionTotal returns the gems accumulated this session.
func (s *Service) SessionTotal() int {
	total := 0
	for _, a := range s.SessionGems {
		total += a.Amount
	}
	return total
}

// ResetSession clears the session gem accumulator. Called at session start.
func (s *Service) ResetSession() {
	s.SessionGems = nil
}
