package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ziggy/internal/problemgen"
)

func testSession() SessionRecord {
	return SessionRecord{
		SessionID:    "11111111-2222-3333-4444-555555555555",
		Module:       problemgen.Reading,
		MissionSize:  3,
		Level:        2,
		QuestionIDs:  []string{"q-read-detail-L2-0001", "q-read-detail-L2-0002", "q-read-vocab-L2-0041"},
		QIndex:       1,
		CorrectCount: 1,
		GemCount:     25,
		BankVersion:  "v2.0.0",
		StartedAt:    testNow,
		ElapsedMs:    61_000,
		Outcome:      OutcomeRetry,
	}
}

func TestRecords_Defaults(t *testing.T) {
	repo := openTestStore(t).Records()
	ctx := context.Background()

	p, err := repo.GetProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)

	settings, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
	assert.Equal(t, "space", settings.Theme)
	assert.Equal(t, Colors{Primary: "#6366F1", Secondary: "#EC4899", Accent: "#10B981"}, settings.Colors)
	assert.Equal(t, "astronaut-1", settings.Avatar)
	assert.True(t, settings.SoundOn)
	assert.Equal(t, "Student", settings.ChildName)
	assert.Equal(t, 10, settings.DefaultMissionSize)
	assert.Equal(t, 5, settings.AutoAdvanceSpeed)

	progress, err := repo.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, Levels{1, 1, 1, 1}, progress.Levels)
	assert.Zero(t, progress.TotalGems)
	assert.True(t, progress.CreatedAt.Equal(testNow))

	sess, err := repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	m, err := repo.GetMastery(ctx)
	require.NoError(t, err)
	assert.Empty(t, m.Subskills)
	assert.NotNil(t, m.Subskills)
}

func TestRecords_RoundTrip(t *testing.T) {
	repo := openTestStore(t).Records()
	ctx := context.Background()

	require.NoError(t, repo.SetProfile(ctx, Profile{Nickname: "Mina"}))
	p, err := repo.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mina", p.Nickname)

	settings := DefaultSettings()
	settings.ChildName = "Mina"
	settings.SoundOn = false
	settings.DefaultMissionSize = 15
	require.NoError(t, repo.SetSettings(ctx, settings))
	gotSettings, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, gotSettings)

	progress := Progress{Levels: Levels{2, 3, 1, 5}, TotalGems: 140, CreatedAt: testNow}
	require.NoError(t, repo.SetProgress(ctx, progress))
	gotProgress, err := repo.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, progress.Levels, gotProgress.Levels)
	assert.Equal(t, 140, gotProgress.TotalGems)
	assert.True(t, gotProgress.CreatedAt.Equal(testNow))

	sess := testSession()
	require.NoError(t, repo.SetSession(ctx, sess))
	gotSess, err := repo.GetSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, gotSess)
	assert.Equal(t, sess.QuestionIDs, gotSess.QuestionIDs)
	assert.Equal(t, sess.QIndex, gotSess.QIndex)
	assert.Equal(t, sess.Outcome, gotSess.Outcome)
	assert.Equal(t, sess.ElapsedMs, gotSess.ElapsedMs)

	seen := testNow.Add(time.Minute)
	mastery := MasteryData{Subskills: map[string]SubskillRecord{
		"read-detail": {Status: "learning", TotalAttempts: 2, CorrectAttempts: 1, StreakCorrect: 1, Difficulty: 1,
			ScheduledReviewQueue: []string{"q-read-detail-L2-0001"}, LastSeen: &seen},
		"read-vocab": {Status: "unseen", Difficulty: 1},
	}}
	require.NoError(t, repo.SetMastery(ctx, mastery))
	gotMastery, err := repo.GetMastery(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"q-read-detail-L2-0001"}, gotMastery.Subskills["read-detail"].ScheduledReviewQueue)
	assert.Equal(t, []string{}, gotMastery.Subskills["read-vocab"].ScheduledReviewQueue)
	assert.True(t, gotMastery.Subskills["read-detail"].LastSeen.Equal(seen))
}

func TestRecords_ClearSessionIdempotent(t *testing.T) {
	repo := openTestStore(t).Records()
	ctx := context.Background()

	require.NoError(t, repo.ClearSession(ctx))

	require.NoError(t, repo.SetSession(ctx, testSession()))
	require.NoError(t, repo.ClearSession(ctx))
	require.NoError(t, repo.ClearSession(ctx))

	sess, err := repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestRecords_ResetProgress(t *testing.T) {
	repo := openTestStore(t).Records()
	ctx := context.Background()

	require.NoError(t, repo.SetProfile(ctx, Profile{Nickname: "Leo"}))
	require.NoError(t, repo.SetProgress(ctx, Progress{Levels: Levels{4, 4, 4, 4}, TotalGems: 999, CreatedAt: testNow}))
	require.NoError(t, repo.SetSession(ctx, testSession()))
	require.NoError(t, repo.SetMastery(ctx, MasteryData{Subskills: map[string]SubskillRecord{
		"num-money": {Status: "mastered", Difficulty: 2},
	}}))

	require.NoError(t, repo.ResetProgress(ctx))

	progress, err := repo.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, Levels{1, 1, 1, 1}, progress.Levels)
	assert.Zero(t, progress.TotalGems)

	sess, err := repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	m, err := repo.GetMastery(ctx)
	require.NoError(t, err)
	assert.Empty(t, m.Subskills)

	// The profile survives a progress reset.
	p, err := repo.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Leo", p.Nickname)
}

func TestRecords_RejectInvalidWrites(t *testing.T) {
	repo := openTestStore(t).Records()
	ctx := context.Background()

	bad := testSession()
	bad.QuestionIDs = nil
	err := repo.SetSession(ctx, bad)
	assert.True(t, errors.Is(err, ErrCorruptRecord), "got %v", err)

	bad = testSession()
	bad.Level = 6
	assert.ErrorIs(t, repo.SetSession(ctx, bad), ErrCorruptRecord)

	bad = testSession()
	bad.Outcome = "maybe"
	assert.ErrorIs(t, repo.SetSession(ctx, bad), ErrCorruptRecord)

	settings := DefaultSettings()
	settings.Colors.Primary = "blue"
	assert.ErrorIs(t, repo.SetSettings(ctx, settings), ErrCorruptRecord)

	settings = DefaultSettings()
	settings.ChildName = "A name that is far too long"
	assert.ErrorIs(t, repo.SetSettings(ctx, settings), ErrCorruptRecord)

	assert.ErrorIs(t, repo.SetProgress(ctx, Progress{Levels: Levels{0, 1, 1, 1}, CreatedAt: testNow}), ErrCorruptRecord)

	assert.ErrorIs(t, repo.SetMastery(ctx, MasteryData{Subskills: map[string]SubskillRecord{
		"x": {Status: "expert", Difficulty: 1},
	}}), ErrCorruptRecord)

	sess, err := repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess, "rejected writes must not be stored")
}

func TestRecords_CorruptReadIsAnError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().Exec(`INSERT INTO records (key, value, updated_at) VALUES ('progress', '{"levels": 3}', 0)`)
	require.NoError(t, err)
	_, err = s.Records().GetProgress(ctx)
	assert.ErrorIs(t, err, ErrCorruptRecord)

	_, err = s.DB().Exec(`INSERT INTO records (key, value, updated_at) VALUES ('session', 'not json', 0)`)
	require.NoError(t, err)
	_, err = s.Records().GetSession(ctx)
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestLevels_GetSet(t *testing.T) {
	l := Levels{1, 2, 3, 4}
	assert.Equal(t, 3, l.Get(problemgen.Conventions))
	l2 := l.Set(problemgen.Writing, 5)
	assert.Equal(t, 5, l2.Get(problemgen.Writing))
	assert.Equal(t, 4, l.Get(problemgen.Writing), "Set returns a copy")
	assert.Equal(t, 1, l.Get("art"))
}

func TestRecords_SetSessionAndMastery(t *testing.T) {
	repo := openTestStore(t).Records()
	ctx := context.Background()

	m := MasteryData{Subskills: map[string]SubskillRecord{"read-detail": {Status: "learning", Difficulty: 1}}}
	require.NoError(t, repo.SetSessionAndMastery(ctx, testSession(), m))

	sess, err := repo.GetSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	got, err := repo.GetMastery(ctx)
	require.NoError(t, err)
	assert.Equal(t, "learning", got.Subskills["read-detail"].Status)

	// An invalid mastery record rolls back the session write too.
	next := testSession()
	next.QIndex = 2
	bad := MasteryData{Subskills: map[string]SubskillRecord{"read-detail": {Status: "bogus", Difficulty: 1}}}
	assert.ErrorIs(t, repo.SetSessionAndMastery(ctx, next, bad), ErrCorruptRecord)

	sess, err = repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.QIndex)
}

func TestRecords_CompleteSession(t *testing.T) {
	repo := openTestStore(t).Records()
	ctx := context.Background()

	require.NoError(t, repo.SetSession(ctx, testSession()))
	require.NoError(t, repo.CompleteSession(ctx, Progress{Levels: Levels{1, 3, 1, 1}, TotalGems: 75, CreatedAt: testNow}))

	sess, err := repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	p, err := repo.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Levels.Reading)
	assert.Equal(t, 75, p.TotalGems)
}

func TestNewProgress_AcceptedByStore(t *testing.T) {
	repo := openTestStore(t).Records()
	ctx := context.Background()

	p := NewProgress(testNow)
	p.TotalGems = 40
	require.NoError(t, repo.SetProgress(ctx, p))

	got, err := repo.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, Levels{1, 1, 1, 1}, got.Levels)
	assert.Equal(t, 40, got.TotalGems)
}
