// Package bank holds the immutable, indexed collection of generated
// questions that missions are drawn from.
package bank

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/abhisek/ziggy/internal/problemgen"
)

// Version identifies the generation templates. Bump the major version
// whenever ids or question content change, so persisted sessions built
// against an older bank are discarded instead of resolved to different
// questions.
const Version = "v2.0.0"

type levelKey struct {
	domain problemgen.Domain
	level  int
}

// Bank is an immutable question collection. All methods are safe for
// concurrent use. Returned slices are shared and must not be modified.
type Bank struct {
	version  string
	all      []*problemgen.Question
	byID     map[string]*problemgen.Question
	byDomain map[problemgen.Domain][]*problemgen.Question
	byLevel  map[levelKey][]*problemgen.Question
}

// New indexes questions into a Bank. Every question is checked with the
// default validator chain and duplicate ids are rejected.
func New(version string, questions ...*problemgen.Question) (*Bank, error) {
	b := &Bank{
		version:  version,
		all:      make([]*problemgen.Question, 0, len(questions)),
		byID:     make(map[string]*problemgen.Question, len(questions)),
		byDomain: make(map[problemgen.Domain][]*problemgen.Question),
		byLevel:  make(map[levelKey][]*problemgen.Question),
	}

	validators := problemgen.DefaultConfig().Validators
	for _, q := range questions {
		if err := problemgen.Validate(q, validators); err != nil {
			return nil, fmt.Errorf("bank: %w", err)
		}
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("bank: duplicate question id %q", q.ID)
		}
		b.all = append(b.all, q)
		b.byID[q.ID] = q
		b.byDomain[q.Domain] = append(b.byDomain[q.Domain], q)
		k := levelKey{q.Domain, q.Difficulty}
		b.byLevel[k] = append(b.byLevel[k], q)
	}
	return b, nil
}

// Generate builds the full procedural bank.
func Generate() (*Bank, error) {
	qs, err := problemgen.New(problemgen.DefaultConfig()).GenerateAll()
	if err != nil {
		return nil, fmt.Errorf("bank: %w", err)
	}
	return New(Version, qs...)
}

var (
	defaultOnce sync.Once
	defaultBank *Bank
)

// Default returns the process-wide bank, generating it on first use.
// It panics if the built-in families produce an invalid question.
func Default() *Bank {
	defaultOnce.Do(func() {
		b, err := Generate()
		if err != nil {
			panic(err)
		}
		defaultBank = b
	})
	return defaultBank
}

// Version returns the bank's semantic version.
func (b *Bank) Version() string { return b.version }

// Len returns the number of questions.
func (b *Bank) Len() int { return len(b.all) }

// All returns every question in generation order.
func (b *Bank) All() []*problemgen.Question { return b.all }

// ByDomain returns the questions of d in generation order.
func (b *Bank) ByDomain(d problemgen.Domain) []*problemgen.Question {
	return b.byDomain[d]
}

// ByDomainDifficulty returns the questions of d at exactly level.
func (b *Bank) ByDomainDifficulty(d problemgen.Domain, level int) []*problemgen.Question {
	return b.byLevel[levelKey{d, level}]
}

// ByID looks up a question.
func (b *Bank) ByID(id string) (*problemgen.Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Resolve maps ids to questions, failing on the first unknown id.
func (b *Bank) Resolve(ids []string) ([]*problemgen.Question, error) {
	out := make([]*problemgen.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := b.byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown question id %q", id)
		}
		out = append(out, q)
	}
	return out, nil
}

// Subskills returns the distinct subskills of d, sorted.
func (b *Bank) Subskills(d problemgen.Domain) []string {
	tags := lo.Uniq(lo.Map(b.byDomain[d], func(q *problemgen.Question, _ int) string { return q.Subskill }))
	sort.Strings(tags)
	return tags
}

// IDs returns the ids of qs in order.
func IDs(qs []*problemgen.Question) []string {
	return lo.Map(qs, func(q *problemgen.Question, _ int) string { return q.ID })
}
