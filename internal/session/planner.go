package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/ziggy/internal/bank"
	"github.com/abhisek/ziggy/internal/problemgen"
	"github.com/abhisek/ziggy/internal/rng"
)

// ErrEmptyPool is returned when a domain has no questions at all.
var ErrEmptyPool = errors.New("no questions available")

// Planner selects the questions of a mission.
type Planner interface {
	// BuildPlan chooses size questions of domain d at difficulty for day.
	// The same arguments on the same day always give the same plan.
	BuildPlan(d problemgen.Domain, difficulty, size int, day time.Time) (*Plan, error)
}

// BankPlanner selects questions from a question bank.
type BankPlanner struct {
	Bank *bank.Bank
	Log  logrus.FieldLogger
}

// NewPlanner creates a BankPlanner. log may be nil.
func NewPlanner(b *bank.Bank, log logrus.FieldLogger) *BankPlanner {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &BankPlanner{Bank: b, Log: log}
}

// BuildPlan shuffles the exact-difficulty pool with a seed derived from its
// arguments and takes the first size ids. A pool smaller than size is
// replaced by every question of the domain.
func (p *BankPlanner) BuildPlan(d problemgen.Domain, difficulty, size int, day time.Time) (*Plan, error) {
	if size < 1 {
		return nil, fmt.Errorf("mission size %d: must be positive", size)
	}

	pool := p.Bank.ByDomainDifficulty(d, difficulty)
	fellBack := false
	if len(pool) < size {
		p.Log.WithFields(logrus.Fields{
			"domain":     d,
			"difficulty": difficulty,
			"pool":       len(pool),
			"size":       size,
		}).Debug("difficulty pool too small, using whole domain")
		pool = p.Bank.ByDomain(d)
		fellBack = true
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%s: %w", d, ErrEmptyPool)
	}

	stamp := DayStamp(day)
	seed := PlanSeed(d, difficulty, size, stamp)
	ids := rng.Shuffle(rng.New(seed), bank.IDs(pool))

	return &Plan{
		Domain:      d,
		Difficulty:  difficulty,
		Size:        size,
		Day:         stamp,
		Seed:        seed,
		QuestionIDs: ids[:min(size, len(ids))],
		FellBack:    fellBack,
	}, nil
}

// DayStamp formats t's local calendar date as YYYY-MM-DD.
func DayStamp(t time.Time) string {
	return t.Format("2006-01-02")
}

// PlanSeed returns the RNG key of a mission plan.
func PlanSeed(d problemgen.Domain, difficulty, size int, day string) string {
	return fmt.Sprintf("%s|L%d|N%d|%s", d, difficulty, size, day)
}
