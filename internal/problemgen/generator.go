package problemgen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/ziggy/internal/rng"
)

// maxRedraws bounds how often a family is rebuilt when it repeats a
// question already emitted at the same level. Every family can produce
// well over QuestionsPerFamily distinct questions per level, so running
// out means a template pool was cut too far.
const maxRedraws = 500

// Generator builds the procedural question bank. It is deterministic: two
// generators with equal configs produce identical questions in identical
// order.
type Generator struct {
	config Config
}

// New creates a Generator. A non-positive QuestionsPerFamily falls back to
// the default.
func New(cfg Config) *Generator {
	if cfg.QuestionsPerFamily <= 0 {
		cfg.QuestionsPerFamily = QuestionsPerFamily
	}
	return &Generator{config: cfg}
}

// Families returns the question families of a domain in generation order.
func Families(d Domain) []Family {
	switch d {
	case Numeracy:
		return numeracyFamilies
	case Reading:
		return readingFamilies
	case Conventions:
		return conventionsFamilies
	case Writing:
		return writingFamilies
	default:
		return nil
	}
}

// GenerateAll returns every question for every domain and level.
func (g *Generator) GenerateAll() ([]*Question, error) {
	var all []*Question
	for _, d := range AllDomains() {
		qs, err := g.GenerateDomain(d)
		if err != nil {
			return nil, err
		}
		all = append(all, qs...)
	}
	return all, nil
}

// GenerateDomain returns the questions of d for levels 1 through 5.
func (g *Generator) GenerateDomain(d Domain) ([]*Question, error) {
	var out []*Question
	for level := MinLevel; level <= MaxLevel; level++ {
		qs, err := g.GenerateLevel(d, level)
		if err != nil {
			return nil, err
		}
		out = append(out, qs...)
	}
	return out, nil
}

// GenerateLevel returns the questions of d at one level. Each family draws
// from its own stream seeded "<domain>/<family>/L<level>", and the ID
// counter runs across the families of the level. A draw that repeats an
// earlier question of the level (same prompt, same options) is rebuilt
// from the same stream.
func (g *Generator) GenerateLevel(d Domain, level int) ([]*Question, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, fmt.Errorf("level %d out of range %d-%d", level, MinLevel, MaxLevel)
	}
	families := Families(d)
	if len(families) == 0 {
		return nil, fmt.Errorf("no question families for domain %q", d)
	}

	out := make([]*Question, 0, len(families)*g.config.QuestionsPerFamily)
	seen := make(map[string]bool)
	n := 0
	for _, f := range families {
		r := rng.New(fmt.Sprintf("%s/%s/L%d", d, f.Name, level))
		for i := 0; i < g.config.QuestionsPerFamily; i++ {
			n++
			dr, cs, err := drawUnique(f, level, r, seen)
			if err != nil {
				return nil, fmt.Errorf("generating %s/%s level %d: %w", d, f.Name, level, err)
			}
			q := &Question{
				ID:            makeID(f.Prefix, level, n),
				Domain:        d,
				Subskill:      f.Subskill,
				Family:        f.Name,
				Difficulty:    level,
				Prompt:        dr.prompt,
				Choices:       cs.Choices,
				CorrectAnswer: cs.CorrectAnswer,
				Hint:          dr.hint,
				Explanation:   dr.explanation,
			}
			if err := Validate(q, g.config.Validators); err != nil {
				return nil, fmt.Errorf("generating %s/%s level %d: %w", d, f.Name, level, err)
			}
			out = append(out, q)
		}
	}
	return out, nil
}

// drawUnique builds questions from f until one is not yet in seen, then
// records it.
func drawUnique(f Family, level int, r *rng.Rand, seen map[string]bool) (draft, ChoiceSet, error) {
	for attempt := 0; attempt <= maxRedraws; attempt++ {
		dr := f.build(level, r)
		cs := BuildChoices(r, dr.correct, dr.distractors, dr.extra)
		key := QuestionKey(dr.prompt, cs.Choices)
		if !seen[key] {
			seen[key] = true
			return dr, cs, nil
		}
	}
	return draft{}, ChoiceSet{}, fmt.Errorf("no new question after %d redraws", maxRedraws)
}

// QuestionKey identifies a question by content: its prompt and its set of
// options, ignoring their order.
func QuestionKey(prompt string, choices []string) string {
	sorted := slices.Sorted(slices.Values(choices))
	return prompt + "\x00" + strings.Join(sorted, "\x00")
}

// makeID formats a stable question ID such as "q-num-addsub-L1-0001".
func makeID(prefix string, level, n int) string {
	return fmt.Sprintf("%s-L%d-%04d", prefix, level, n)
}
