package problemgen

import "fmt"

// Domain is one of the four subjects a mission can cover.
type Domain string

const (
	Numeracy    Domain = "numeracy"
	Reading     Domain = "reading"
	Conventions Domain = "conventions"
	Writing     Domain = "writing"
)

// Difficulty bounds shared by every family.
const (
	MinLevel = 1
	MaxLevel = 5
)

// ChoiceCount is the number of options every question carries.
const ChoiceCount = 4

// AllDomains returns the domains in menu order.
func AllDomains() []Domain {
	return []Domain{Numeracy, Reading, Conventions, Writing}
}

// ParseDomain converts a user-supplied name to a Domain.
func ParseDomain(s string) (Domain, error) {
	for _, d := range AllDomains() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown domain %q (want numeracy, reading, conventions or writing)", s)
}

// DisplayName returns the label shown to learners.
func (d Domain) DisplayName() string {
	switch d {
	case Numeracy:
		return "Numeracy"
	case Reading:
		return "Reading"
	case Conventions:
		return "Grammar"
	case Writing:
		return "Writing"
	default:
		return string(d)
	}
}

// Icon returns the display icon for the domain.
func (d Domain) Icon() string {
	switch d {
	case Numeracy:
		return "🔢"
	case Reading:
		return "📖"
	case Conventions:
		return "✍️"
	case Writing:
		return "📝"
	default:
		return "✦"
	}
}

// Question is a generated multiple-choice item. Questions are immutable once
// generated; the bank hands out shared pointers, so callers must not modify them.
type Question struct {
	// ID is stable for a given generation seed, e.g. "q-num-addsub-L1-0001".
	ID string

	// Domain is the subject the question belongs to.
	Domain Domain

	// Subskill tags the generating family for mastery tracking, e.g. "num-add-sub".
	Subskill string

	// Family is the name of the generating family, e.g. "add-sub".
	Family string

	// Difficulty is the level the question was generated for (1-5).
	Difficulty int

	// Prompt is the text shown to the learner. May contain newlines.
	Prompt string

	// Choices holds exactly four distinct options in display order.
	Choices []string

	// CorrectAnswer is the text of the correct option.
	CorrectAnswer string

	// Hint is shown after a first wrong attempt or on request. May be empty.
	Hint string

	// Explanation is shown once the question is resolved. May be empty.
	Explanation string
}

// CorrectIndex returns the position of the correct answer in Choices, or -1.
func (q *Question) CorrectIndex() int {
	for i, c := range q.Choices {
		if c == q.CorrectAnswer {
			return i
		}
	}
	return -1
}
