package problemgen

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"github.com/abhisek/ziggy/internal/rng"
)

// maxExtraAttempts bounds calls to an ExtraFunc so a generator that keeps
// returning duplicates cannot stall bank construction.
const maxExtraAttempts = 50

// ExtraFunc produces one more distractor candidate on demand. It may return
// duplicates or the correct answer; BuildChoices discards both.
type ExtraFunc func(correct string) string

// ChoiceSet is the output of BuildChoices.
type ChoiceSet struct {
	Choices       []string
	CorrectAnswer string
}

// BuildChoices returns exactly four distinct options in shuffled order, one
// of which is correct. Distractors are taken in order, skipping blanks,
// repeats and the correct answer; extra fills any gap, and suffixed copies
// of the correct answer ("7 (1)") are the last resort. It never fails.
func BuildChoices(r *rng.Rand, correct string, distractors []string, extra ExtraFunc) ChoiceSet {
	cs := newCandidateSet(correct)
	for _, d := range distractors {
		if cs.full() {
			break
		}
		cs.add(d)
	}
	cs.fill(extra, func(k int) string { return fmt.Sprintf("%s (%d)", correct, k) })

	choices := rng.Shuffle(r, cs.items)[:ChoiceCount]

	if !lo.Contains(choices, correct) {
		choices[r.Int(0, ChoiceCount-1)] = correct
		fixed := newCandidateSet(correct)
		for _, c := range choices {
			fixed.add(c)
		}
		fixed.fill(extra, func(k int) string { return fmt.Sprintf("%s-%d", correct, k) })
		choices = rng.Shuffle(r, fixed.items)[:ChoiceCount]
	}

	return ChoiceSet{Choices: choices, CorrectAnswer: correct}
}

// candidateSet is an insertion-ordered set seeded with the correct answer.
type candidateSet struct {
	correct string
	items   []string
	seen    map[string]bool
}

func newCandidateSet(correct string) *candidateSet {
	return &candidateSet{
		correct: correct,
		items:   []string{correct},
		seen:    map[string]bool{correct: true},
	}
}

func (c *candidateSet) full() bool { return len(c.items) >= ChoiceCount }

func (c *candidateSet) add(s string) {
	if s == "" || c.seen[s] || c.full() {
		return
	}
	c.seen[s] = true
	c.items = append(c.items, s)
}

// fill tops the set up from extra, then from pad(1), pad(2), ...
func (c *candidateSet) fill(extra ExtraFunc, pad func(k int) string) {
	for guard := 0; extra != nil && !c.full() && guard < maxExtraAttempts; guard++ {
		c.add(extra(c.correct))
	}
	for k := 1; !c.full(); k++ {
		c.add(pad(k))
	}
}

// ints formats integer candidates, dropping negative values.
func ints(values ...int) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v >= 0 {
			out = append(out, strconv.Itoa(v))
		}
	}
	return out
}

// atoi parses a candidate produced by this package. Non-numeric input yields 0.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
