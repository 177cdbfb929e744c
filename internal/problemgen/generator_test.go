package problemgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ziggy/internal/rng"
)

func generateAll(t *testing.T) []*Question {
	t.Helper()
	qs, err := New(DefaultConfig()).GenerateAll()
	require.NoError(t, err)
	return qs
}

func TestGenerateAll_ChoiceIntegrity(t *testing.T) {
	v := &ChoiceValidator{}
	for _, q := range generateAll(t) {
		if err := v.Validate(q); err != nil {
			t.Fatalf("%s: %v", q.ID, err)
		}
		assert.GreaterOrEqual(t, q.CorrectIndex(), 0, q.ID)
	}
}

func TestGenerateAll_VolumeAndCoverage(t *testing.T) {
	qs := generateAll(t)
	require.Len(t, qs, 4*5*6*QuestionsPerFamily)

	perDomain := map[Domain]int{}
	perLevel := map[Domain]map[int]int{}
	subskills := map[Domain]map[string]bool{}
	for _, q := range qs {
		perDomain[q.Domain]++
		if perLevel[q.Domain] == nil {
			perLevel[q.Domain] = map[int]int{}
			subskills[q.Domain] = map[string]bool{}
		}
		perLevel[q.Domain][q.Difficulty]++
		subskills[q.Domain][q.Subskill] = true
	}

	for _, d := range AllDomains() {
		assert.GreaterOrEqual(t, perDomain[d], 500, "domain %s", d)
		for level := MinLevel; level <= MaxLevel; level++ {
			assert.GreaterOrEqual(t, perLevel[d][level], 60, "domain %s level %d", d, level)
		}
		assert.GreaterOrEqual(t, len(subskills[d]), 6, "domain %s subskills", d)
	}
}

func TestGenerateAll_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, q := range generateAll(t) {
		if seen[q.ID] {
			t.Fatalf("duplicate id %s", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestGenerateAll_NoRepeatedQuestionWithinLevel(t *testing.T) {
	type levelKey struct {
		domain Domain
		level  int
	}
	seen := map[levelKey]map[string]string{}
	for _, q := range generateAll(t) {
		k := levelKey{q.Domain, q.Difficulty}
		if seen[k] == nil {
			seen[k] = map[string]string{}
		}
		key := QuestionKey(q.Prompt, q.Choices)
		if first, dup := seen[k][key]; dup {
			t.Errorf("%s repeats %s", q.ID, first)
			continue
		}
		seen[k][key] = q.ID
	}
}

func TestGenerateAll_PromptVariety(t *testing.T) {
	prompts := map[Domain]map[string]bool{}
	for _, q := range generateAll(t) {
		if prompts[q.Domain] == nil {
			prompts[q.Domain] = map[string]bool{}
		}
		prompts[q.Domain][q.Prompt] = true
	}
	for _, d := range AllDomains() {
		assert.GreaterOrEqual(t, len(prompts[d]), 200, "unique prompts in %s", d)
	}
}

func TestQuestionKey_IgnoresChoiceOrder(t *testing.T) {
	a := QuestionKey("What is 2 + 2?", []string{"4", "3", "5", "6"})
	b := QuestionKey("What is 2 + 2?", []string{"6", "5", "4", "3"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, QuestionKey("What is 2 + 2?", []string{"4", "3", "5", "7"}))
	assert.NotEqual(t, a, QuestionKey("What is 3 + 1?", []string{"4", "3", "5", "6"}))
}

func TestDrawUnique_GivesUpOnExhaustedFamily(t *testing.T) {
	f := Family{Name: "fixed", build: func(int, *rng.Rand) draft {
		return draft{prompt: "Pick b.", correct: "b", distractors: []string{"a", "c", "d"}}
	}}
	r := rng.New("fixed/L1")
	seen := map[string]bool{}

	_, cs, err := drawUnique(f, 1, r, seen)
	require.NoError(t, err)
	assert.Len(t, cs.Choices, ChoiceCount)

	_, _, err = drawUnique(f, 1, r, seen)
	assert.ErrorContains(t, err, "redraws")
}

func TestGenerateAll_Deterministic(t *testing.T) {
	a := generateAll(t)
	b := generateAll(t)
	require.Equal(t, len(a), len(b))
	for i := range a {
		if !assert.Equal(t, *a[i], *b[i]) {
			t.FailNow()
		}
	}
}

func TestGenerateLevel_IDFormat(t *testing.T) {
	qs, err := New(DefaultConfig()).GenerateLevel(Numeracy, 1)
	require.NoError(t, err)
	require.Len(t, qs, 6*QuestionsPerFamily)

	assert.Equal(t, "q-num-addsub-L1-0001", qs[0].ID)
	assert.Equal(t, "q-num-addsub-L1-0020", qs[19].ID)
	// The counter continues across families within a level.
	assert.Equal(t, "q-num-pattern-L1-0021", qs[20].ID)
	assert.Equal(t, "q-num-frac-L1-0120", qs[119].ID)

	for _, q := range qs {
		assert.Equal(t, 1, q.Difficulty)
		assert.True(t, strings.HasPrefix(q.ID, "q-num-"), q.ID)
	}
}

func TestGenerateLevel_OutOfRange(t *testing.T) {
	g := New(DefaultConfig())
	_, err := g.GenerateLevel(Reading, 0)
	assert.Error(t, err)
	_, err = g.GenerateLevel(Reading, 6)
	assert.Error(t, err)
	_, err = g.GenerateLevel(Domain("art"), 1)
	assert.Error(t, err)
}

func TestGenerateLevel_ValidatorFailureIsReported(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Validators = append(cfg.Validators, rejectAll{})
	_, err := New(cfg).GenerateLevel(Writing, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reject-all")
}

func TestNew_DefaultsQuestionsPerFamily(t *testing.T) {
	qs, err := New(Config{}).GenerateLevel(Conventions, 3)
	require.NoError(t, err)
	assert.Len(t, qs, 6*QuestionsPerFamily)
}

func TestFamilies_SixPerDomain(t *testing.T) {
	for _, d := range AllDomains() {
		fams := Families(d)
		assert.Len(t, fams, 6, "domain %s", d)
		prefixes := map[string]bool{}
		for _, f := range fams {
			assert.False(t, prefixes[f.Prefix], "duplicate prefix %s", f.Prefix)
			prefixes[f.Prefix] = true
		}
	}
	assert.Nil(t, Families("art"))
}

func TestGenerateLevel_MoneyChangeIsPositive(t *testing.T) {
	for level := MinLevel; level <= MaxLevel; level++ {
		qs, err := New(DefaultConfig()).GenerateLevel(Numeracy, level)
		require.NoError(t, err)
		for _, q := range qs {
			if q.Family != "money" {
				continue
			}
			assert.NotEqual(t, "$0.00", q.CorrectAnswer, q.ID)
			assert.True(t, strings.HasPrefix(q.CorrectAnswer, "$"), q.ID)
		}
	}
}

func TestGenerateLevel_PartsOfSpeechNounExcludesName(t *testing.T) {
	for level := MinLevel; level <= MaxLevel; level++ {
		qs, err := New(DefaultConfig()).GenerateLevel(Conventions, level)
		require.NoError(t, err)
		for _, q := range qs {
			if q.Family != "parts-of-speech" || !strings.Contains(q.Prompt, "is a noun?") {
				continue
			}
			for _, c := range q.Choices {
				assert.NotContains(t, convNames, c, q.ID)
			}
		}
	}
}

func TestGenerateLevel_GrammarHasOneCorrectSentence(t *testing.T) {
	mistakes := []string{"tooked", " take ", "to to ", "walkeded"}
	found := 0
	for level := MinLevel; level <= MaxLevel; level++ {
		qs, err := New(DefaultConfig()).GenerateLevel(Conventions, level)
		require.NoError(t, err)
		for _, q := range qs {
			if q.Family != "grammar" || q.Prompt != "Which sentence is correct?" {
				continue
			}
			found++
			for _, c := range q.Choices {
				if c == q.CorrectAnswer {
					continue
				}
				hasMistake := false
				for _, m := range mistakes {
					if strings.Contains(c, m) {
						hasMistake = true
					}
				}
				assert.True(t, hasMistake, "%s: %q reads as correct too", q.ID, c)
			}
		}
	}
	assert.Positive(t, found)
}

type rejectAll struct{}

func (rejectAll) Name() string { return "reject-all" }

func (r rejectAll) Validate(*Question) *ValidationError {
	return &ValidationError{Validator: r.Name(), Message: "no"}
}
