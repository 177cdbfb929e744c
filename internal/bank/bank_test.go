package bank

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ziggy/internal/problemgen"
)

func question(id string, d problemgen.Domain, level int, subskill string) *problemgen.Question {
	return &problemgen.Question{
		ID:            id,
		Domain:        d,
		Subskill:      subskill,
		Difficulty:    level,
		Prompt:        "Which one is right?",
		Choices:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "b",
	}
}

func TestNew_Indexes(t *testing.T) {
	b, err := New("v9.0.0",
		question("r1", problemgen.Reading, 1, "read-detail"),
		question("r2", problemgen.Reading, 2, "read-vocab"),
		question("n1", problemgen.Numeracy, 1, "num-money"),
		question("r3", problemgen.Reading, 1, "read-detail"),
	)
	require.NoError(t, err)

	assert.Equal(t, "v9.0.0", b.Version())
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, []string{"r1", "r2", "r3"}, IDs(b.ByDomain(problemgen.Reading)))
	assert.Equal(t, []string{"r1", "r3"}, IDs(b.ByDomainDifficulty(problemgen.Reading, 1)))
	assert.Empty(t, b.ByDomainDifficulty(problemgen.Writing, 1))
	assert.Equal(t, []string{"read-detail", "read-vocab"}, b.Subskills(problemgen.Reading))

	q, ok := b.ByID("n1")
	require.True(t, ok)
	assert.Equal(t, problemgen.Numeracy, q.Domain)
	_, ok = b.ByID("missing")
	assert.False(t, ok)
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	_, err := New(Version,
		question("x", problemgen.Reading, 1, "read-detail"),
		question("x", problemgen.Reading, 2, "read-detail"),
	)
	assert.ErrorContains(t, err, "duplicate")
}

func TestNew_RejectsInvalidQuestion(t *testing.T) {
	bad := question("x", problemgen.Reading, 1, "read-detail")
	bad.Choices = []string{"a", "a", "c", "d"}
	_, err := New(Version, bad)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	b, err := New(Version,
		question("a", problemgen.Writing, 1, "write-next"),
		question("b", problemgen.Writing, 1, "write-next"),
	)
	require.NoError(t, err)

	qs, err := b.Resolve([]string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, IDs(qs))

	_, err = b.Resolve([]string{"a", "zzz"})
	assert.ErrorContains(t, err, "zzz")
}

func TestDefault_FullBank(t *testing.T) {
	b := Default()
	assert.Same(t, b, Default())
	assert.Equal(t, Version, b.Version())
	assert.Equal(t, 2400, b.Len())

	for _, d := range problemgen.AllDomains() {
		assert.Len(t, b.ByDomain(d), 600, "domain %s", d)
		assert.Len(t, b.Subskills(d), 6, "domain %s", d)
		for level := problemgen.MinLevel; level <= problemgen.MaxLevel; level++ {
			assert.Len(t, b.ByDomainDifficulty(d, level), 120, "domain %s level %d", d, level)
		}
	}

	q, ok := b.ByID("q-num-addsub-L1-0001")
	require.True(t, ok)
	assert.Equal(t, "add-sub", q.Family)
}

func TestDefault_MissionPoolsHoldNoRepeats(t *testing.T) {
	b := Default()
	for _, d := range problemgen.AllDomains() {
		for level := problemgen.MinLevel; level <= problemgen.MaxLevel; level++ {
			pool := b.ByDomainDifficulty(d, level)
			keys := lo.Map(pool, func(q *problemgen.Question, _ int) string {
				return problemgen.QuestionKey(q.Prompt, q.Choices)
			})
			assert.Len(t, lo.Uniq(keys), len(pool), "domain %s level %d", d, level)
		}
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)

	require.Equal(t, a.Len(), b.Len())
	for i, q := range a.All() {
		assert.Equal(t, *q, *b.All()[i])
	}
}
