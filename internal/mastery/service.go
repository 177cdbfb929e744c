package mastery

import (
	"maps"
	"slices"
	"sort"
	"time"

	"github.com/abhisek/ziggy/internal/store"
)

// Service holds the mastery records of every subskill seen so far. It is not
// safe for concurrent use; the session engine owns its copy and swaps in a
// Clone once the updated state has been persisted.
type Service struct {
	records map[string]Record
}

// NewService creates a mastery service from persisted data. A nil snapshot
// starts with no records.
func NewService(data *store.MasteryData) *Service {
	s := &Service{records: make(map[string]Record)}
	if data == nil {
		return s
	}
	for id, rec := range data.Subskills {
		s.records[id] = fromStore(id, rec)
	}
	return s
}

// Get returns the record of subskill, or a fresh unseen record.
func (s *Service) Get(subskill string) Record {
	if rec, ok := s.records[subskill]; ok {
		return rec
	}
	return NewRecord(subskill)
}

// RecordAnswer applies one answer to subskill. Returns a StateTransition if
// the answer changed the subskill's status, nil otherwise.
func (s *Service) RecordAnswer(subskill string, correct bool, questionID string, now time.Time) *StateTransition {
	before := s.Get(subskill)
	after := Update(before, correct, questionID, now)
	s.records[subskill] = after

	if before.Status == after.Status {
		return nil
	}
	return &StateTransition{Subskill: subskill, From: before.Status, To: after.Status}
}

// Clone returns an independent copy of the service.
func (s *Service) Clone() *Service {
	c := &Service{records: make(map[string]Record, len(s.records))}
	for id, rec := range s.records {
		rec.ReviewQueue = slices.Clone(rec.ReviewQueue)
		c.records[id] = rec
	}
	return c
}

// All returns every known record sorted by subskill.
func (s *Service) All() []Record {
	ids := slices.Collect(maps.Keys(s.records))
	sort.Strings(ids)
	out := make([]Record, len(ids))
	for i, id := range ids {
		out[i] = s.records[id]
	}
	return out
}

// MasteredCount returns the number of mastered subskills.
func (s *Service) MasteredCount() int {
	n := 0
	for _, rec := range s.records {
		if rec.Status == StatusMastered {
			n++
		}
	}
	return n
}

// Snapshot exports the records in their persisted form.
func (s *Service) Snapshot() store.MasteryData {
	data := store.MasteryData{Subskills: make(map[string]store.SubskillRecord, len(s.records))}
	for id, rec := range s.records {
		data.Subskills[id] = toStore(rec)
	}
	return data
}

func fromStore(id string, rec store.SubskillRecord) Record {
	r := Record{
		Subskill:        id,
		Status:          Status(rec.Status),
		StreakCorrect:   rec.StreakCorrect,
		TotalAttempts:   rec.TotalAttempts,
		CorrectAttempts: rec.CorrectAttempts,
		Difficulty:      rec.Difficulty,
		ReviewQueue:     slices.Clone(rec.ScheduledReviewQueue),
		LastSeen:        rec.LastSeen,
	}
	// Ensure defaults.
	if r.Status == "" {
		r.Status = StatusUnseen
	}
	if r.ReviewQueue == nil {
		r.ReviewQueue = []string{}
	}
	return r
}

func toStore(r Record) store.SubskillRecord {
	queue := slices.Clone(r.ReviewQueue)
	if queue == nil {
		queue = []string{}
	}
	return store.SubskillRecord{
		Status:               string(r.Status),
		StreakCorrect:        r.StreakCorrect,
		TotalAttempts:        r.TotalAttempts,
		CorrectAttempts:      r.CorrectAttempts,
		Difficulty:           r.Difficulty,
		ScheduledReviewQueue: queue,
		LastSeen:             r.LastSeen,
	}
}
