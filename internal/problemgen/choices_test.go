package problemgen

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ziggy/internal/rng"
)

func TestBuildChoices_UsesDistractors(t *testing.T) {
	cs := BuildChoices(rng.New("choices"), "7", []string{"8", "6", "9", "5"}, nil)

	require.Len(t, cs.Choices, ChoiceCount)
	assert.Equal(t, "7", cs.CorrectAnswer)
	assert.ElementsMatch(t, []string{"7", "8", "6", "9"}, cs.Choices)
}

func TestBuildChoices_SkipsCorrectBlankAndRepeats(t *testing.T) {
	cs := BuildChoices(rng.New("skip"), "7", []string{"7", "", "8", "8", "9", "7", "10"}, nil)

	assert.ElementsMatch(t, []string{"7", "8", "9", "10"}, cs.Choices)
}

func TestBuildChoices_PadsWhenDistractorsRunOut(t *testing.T) {
	cs := BuildChoices(rng.New("pad"), "7", []string{"8"}, nil)

	assert.ElementsMatch(t, []string{"7", "8", "7 (1)", "7 (2)"}, cs.Choices)
}

func TestBuildChoices_ExtraFillsGap(t *testing.T) {
	next := 20
	extra := func(string) string {
		next++
		return strconv.Itoa(next)
	}
	cs := BuildChoices(rng.New("extra"), "7", []string{"8"}, extra)

	assert.ElementsMatch(t, []string{"7", "8", "21", "22"}, cs.Choices)
}

func TestBuildChoices_MisbehavingExtraIsBounded(t *testing.T) {
	calls := 0
	extra := func(correct string) string {
		calls++
		return correct
	}
	cs := BuildChoices(rng.New("stuck"), "yes", nil, extra)

	assert.Equal(t, maxExtraAttempts, calls)
	assert.ElementsMatch(t, []string{"yes", "yes (1)", "yes (2)", "yes (3)"}, cs.Choices)
}

func TestBuildChoices_Deterministic(t *testing.T) {
	a := BuildChoices(rng.New("same"), "b", []string{"a", "c", "d"}, nil)
	b := BuildChoices(rng.New("same"), "b", []string{"a", "c", "d"}, nil)
	assert.Equal(t, a, b)
}

func TestBuildChoices_AlwaysValid(t *testing.T) {
	v := &ChoiceValidator{}
	r := rng.New("many")
	for i := 0; i < 200; i++ {
		correct := strconv.Itoa(r.Int(0, 5))
		distractors := []string{strconv.Itoa(r.Int(0, 5)), strconv.Itoa(r.Int(0, 5)), strconv.Itoa(r.Int(0, 5))}
		cs := BuildChoices(r, correct, distractors, func(string) string { return strconv.Itoa(r.Int(0, 5)) })

		q := &Question{ID: "q", Choices: cs.Choices, CorrectAnswer: cs.CorrectAnswer}
		if err := v.Validate(q); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
	}
}

func TestInts_DropsNegatives(t *testing.T) {
	assert.Equal(t, []string{"1", "0", "3"}, ints(1, -1, 0, 3, -2))
}
