package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents_SharedSequence(t *testing.T) {
	s := openTestStore(t)
	events := s.Events()
	ctx := context.Background()

	require.NoError(t, events.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "start", Module: "numeracy", Level: 1}))
	require.NoError(t, events.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID: "s1", QuestionID: "q1", Module: "numeracy", Subskill: "num-money",
		Difficulty: 1, Attempt: 1, LearnerAnswer: "$1.00", CorrectAnswer: "$1.00", Correct: true,
	}))
	require.NoError(t, events.AppendGemEvent(ctx, GemEventData{SessionID: "s1", QuestionID: "q1", Kind: "correct", Amount: 25, Reason: "Correct answer"}))

	var seqs []int64
	for _, table := range []string{"session_events", "answer_events", "gem_events"} {
		var seq int64
		require.NoError(t, s.DB().QueryRow("SELECT sequence FROM "+table).Scan(&seq))
		seqs = append(seqs, seq)
	}
	assert.Equal(t, []int64{1, 2, 3}, seqs)
}

func TestEvents_QueryGemEvents(t *testing.T) {
	events := openTestStore(t).Events()
	ctx := context.Background()

	for i, amount := range []int{25, 5, 25} {
		require.NoError(t, events.AppendGemEvent(ctx, GemEventData{
			SessionID: "s1", QuestionID: string(rune('a' + i)), Kind: "correct", Amount: amount,
		}))
	}

	all, err := events.QueryGemEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].QuestionID, "newest first")
	assert.Equal(t, int64(3), all[0].Sequence)
	assert.True(t, all[0].Timestamp.Equal(testNow))

	limited, err := events.QueryGemEvents(ctx, QueryOpts{Limit: 1, Before: 3})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "b", limited[0].QuestionID)

	after, err := events.QueryGemEvents(ctx, QueryOpts{After: 1})
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestEvents_SessionSummaries(t *testing.T) {
	events := openTestStore(t).Events()
	ctx := context.Background()

	require.NoError(t, events.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "start", Module: "reading", Level: 2}))
	require.NoError(t, events.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Action: "end", Module: "reading", Level: 2,
		QuestionsServed: 10, CorrectAnswers: 8, GemsEarned: 210, DurationSecs: 300,
	}))
	require.NoError(t, events.AppendSessionEvent(ctx, SessionEventData{SessionID: "s2", Action: "quit", Module: "writing", Level: 1}))

	summaries, err := events.QuerySessionSummaries(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "s1", summaries[0].SessionID)
	assert.Equal(t, 8, summaries[0].CorrectAnswers)
	assert.Equal(t, 210, summaries[0].GemsEarned)
	assert.Equal(t, 300.0, summaries[0].DurationSecs)
}

func TestEvents_SubskillAccuracy(t *testing.T) {
	events := openTestStore(t).Events()
	ctx := context.Background()

	acc, n, err := events.SubskillAccuracy(ctx, "conv-spelling")
	require.NoError(t, err)
	assert.Zero(t, acc)
	assert.Zero(t, n)

	for _, correct := range []bool{true, false, true, true} {
		require.NoError(t, events.AppendAnswerEvent(ctx, AnswerEventData{
			SessionID: "s1", QuestionID: "q", Module: "conventions", Subskill: "conv-spelling",
			Difficulty: 1, Attempt: 1, Correct: correct,
		}))
	}

	acc, n, err = events.SubskillAccuracy(ctx, "conv-spelling")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.InDelta(t, 0.75, acc, 1e-9)
}

func TestEvents_MasteryEvent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Events().AppendMasteryEvent(context.Background(), MasteryEventData{
		SessionID: "s1", Subskill: "write-verbs", FromStatus: "learning", ToStatus: "mastered",
	}))

	var to string
	require.NoError(t, s.DB().QueryRow("SELECT to_status FROM mastery_events WHERE subskill = 'write-verbs'").Scan(&to))
	assert.Equal(t, "mastered", to)
}
