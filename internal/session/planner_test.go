package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ziggy/internal/bank"
	"github.com/abhisek/ziggy/internal/problemgen"
)

var day = time.Date(2026, 10, 14, 9, 30, 0, 0, time.Local)

func TestBuildPlan_Deterministic(t *testing.T) {
	p := NewPlanner(bank.Default(), nil)

	a, err := p.BuildPlan(problemgen.Numeracy, 2, 10, day)
	require.NoError(t, err)
	b, err := p.BuildPlan(problemgen.Numeracy, 2, 10, day.Add(3*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, a.QuestionIDs, b.QuestionIDs)
	assert.Len(t, a.QuestionIDs, 10)
	assert.False(t, a.FellBack)
	assert.Equal(t, "numeracy|L2|N10|2026-10-14", a.Seed)

	for _, id := range a.QuestionIDs {
		q, ok := bank.Default().ByID(id)
		require.True(t, ok)
		assert.Equal(t, 2, q.Difficulty)
		assert.Equal(t, problemgen.Numeracy, q.Domain)
	}
}

func TestBuildPlan_DayChangesOrder(t *testing.T) {
	p := NewPlanner(bank.Default(), nil)

	a, err := p.BuildPlan(problemgen.Reading, 1, 15, day)
	require.NoError(t, err)
	b, err := p.BuildPlan(problemgen.Reading, 1, 15, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.NotEqual(t, a.QuestionIDs, b.QuestionIDs)
}

func TestBuildPlan_Unique(t *testing.T) {
	p := NewPlanner(bank.Default(), nil)
	plan, err := p.BuildPlan(problemgen.Writing, 5, 15, day)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, id := range plan.QuestionIDs {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
}

func TestBuildPlan_FallsBackToDomain(t *testing.T) {
	full := bank.Default()
	l1 := full.ByDomainDifficulty(problemgen.Conventions, 1)[:3]
	l2 := full.ByDomainDifficulty(problemgen.Conventions, 2)[:10]
	small, err := bank.New(bank.Version, append(append([]*problemgen.Question{}, l1...), l2...)...)
	require.NoError(t, err)

	plan, err := NewPlanner(small, nil).BuildPlan(problemgen.Conventions, 1, 5, day)
	require.NoError(t, err)

	assert.True(t, plan.FellBack)
	assert.Len(t, plan.QuestionIDs, 5)
}

func TestBuildPlan_Errors(t *testing.T) {
	p := NewPlanner(bank.Default(), nil)

	_, err := p.BuildPlan(problemgen.Numeracy, 1, 0, day)
	assert.Error(t, err)

	empty, err := bank.New(bank.Version)
	require.NoError(t, err)
	_, err = NewPlanner(empty, nil).BuildPlan(problemgen.Numeracy, 1, 5, day)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestDayStamp(t *testing.T) {
	assert.Equal(t, "2026-10-14", DayStamp(day))
	assert.Equal(t, "reading|L3|N5|2026-01-02", PlanSeed(problemgen.Reading, 3, 5, "2026-01-02"))
}
