package mastery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 10, 14, 16, 0, 0, 0, time.UTC)

func TestNewRecord(t *testing.T) {
	r := NewRecord("num-money")
	assert.Equal(t, StatusUnseen, r.Status)
	assert.Equal(t, 1, r.Difficulty)
	assert.Empty(t, r.ReviewQueue)
	assert.Nil(t, r.LastSeen)
	assert.Zero(t, r.Accuracy())
}

func TestUpdate_StreakMasters(t *testing.T) {
	r := NewRecord("num-money")

	r = Update(r, true, "q1", t0)
	r = Update(r, true, "q2", t0)
	assert.Equal(t, StatusUnseen, r.Status)
	assert.Equal(t, 2, r.StreakCorrect)

	r = Update(r, true, "q3", t0)
	assert.Equal(t, StatusMastered, r.Status)
	assert.Equal(t, 3, r.StreakCorrect)
	assert.Equal(t, 2, r.Difficulty)

	// Further correct answers do not raise difficulty again.
	r = Update(r, true, "q4", t0)
	assert.Equal(t, StatusMastered, r.Status)
	assert.Equal(t, 2, r.Difficulty)
	assert.Equal(t, 4, r.TotalAttempts)
	assert.Equal(t, 4, r.CorrectAttempts)
}

func TestUpdate_WrongAnswer(t *testing.T) {
	r := NewRecord("read-vocab")
	r = Update(r, true, "q1", t0)
	r = Update(r, false, "q2", t0)

	assert.Equal(t, StatusLearning, r.Status)
	assert.Zero(t, r.StreakCorrect)
	assert.Equal(t, []string{"q2"}, r.ReviewQueue)
	assert.Equal(t, 2, r.TotalAttempts)
	assert.Equal(t, 1, r.CorrectAttempts)
	assert.InDelta(t, 0.5, r.Accuracy(), 1e-9)

	// The same question is queued once.
	r = Update(r, false, "q2", t0)
	assert.Equal(t, []string{"q2"}, r.ReviewQueue)
}

func TestUpdate_WrongAnswerKeepsMastered(t *testing.T) {
	r := NewRecord("conv-capitals")
	for i := 0; i < 3; i++ {
		r = Update(r, true, "q", t0)
	}
	r = Update(r, false, "q9", t0)
	assert.Equal(t, StatusMastered, r.Status)
	assert.Zero(t, r.StreakCorrect)
}

func TestUpdate_DifficultyCapped(t *testing.T) {
	r := NewRecord("write-verbs")
	r.Difficulty = 5
	for i := 0; i < 3; i++ {
		r = Update(r, true, "q", t0)
	}
	assert.Equal(t, 5, r.Difficulty)
}

func TestUpdate_LeavesInputUntouched(t *testing.T) {
	r := NewRecord("read-detail")
	r.ReviewQueue = []string{"a"}
	_ = Update(r, false, "b", t0)
	assert.Equal(t, []string{"a"}, r.ReviewQueue)
	assert.Zero(t, r.TotalAttempts)
}

func TestUpdate_LastSeen(t *testing.T) {
	r := Update(NewRecord("x"), true, "q", t0)
	if assert.NotNil(t, r.LastSeen) {
		assert.True(t, r.LastSeen.Equal(t0))
	}
}

func TestUpdateLevel(t *testing.T) {
	tests := []struct {
		level, correct, total int
		want                  int
	}{
		{1, 8, 10, 2},  // exactly 80%
		{1, 10, 10, 2}, // perfect
		{5, 10, 10, 5}, // capped
		{2, 7, 10, 2},  // between thresholds
		{2, 6, 10, 2},
		{3, 5, 10, 2}, // exactly 50%
		{1, 0, 10, 1}, // floored
		{3, 0, 0, 2},  // empty mission counts as 0%
		{4, 4, 5, 5},
		{2, 2, 3, 2}, // 66%
	}
	for _, tc := range tests {
		if got := UpdateLevel(tc.level, tc.correct, tc.total); got != tc.want {
			t.Errorf("UpdateLevel(%d, %d, %d) = %d, want %d", tc.level, tc.correct, tc.total, got, tc.want)
		}
	}
}
