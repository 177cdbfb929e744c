package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.insert(ctx, "session_events",
		"session_id, action, module, level, questions_served, correct_answers, gems_earned, duration_secs",
		data.SessionID, data.Action, data.Module, data.Level,
		data.QuestionsServed, data.CorrectAnswers, data.GemsEarned, data.DurationSecs)
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.insert(ctx, "answer_events",
		"session_id, question_id, module, subskill, difficulty, attempt, learner_answer, correct_answer, correct, time_ms",
		data.SessionID, data.QuestionID, data.Module, data.Subskill, data.Difficulty, data.Attempt,
		data.LearnerAnswer, data.CorrectAnswer, data.Correct, data.TimeMs)
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	where, args := rangeClause(opts)
	if where == "" {
		where = " WHERE action = 'end'"
	} else {
		where += " AND action = 'end'"
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, module, level, timestamp, questions_served, correct_answers, gems_earned, duration_secs
		FROM session_events`+where+` ORDER BY sequence DESC`+limitClause(opts), args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		var ts int64
		if err := rows.Scan(&rec.SessionID, &rec.Module, &rec.Level, &ts,
			&rec.QuestionsServed, &rec.CorrectAnswers, &rec.GemsEarned, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return records, nil
}

func (r *eventRepo) SubskillAccuracy(ctx context.Context, subskill string) (float64, int, error) {
	var total, correct int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(correct), 0) FROM answer_events WHERE subskill = ?`, subskill,
	).Scan(&total, &correct)
	if err != nil {
		return 0, 0, fmt.Errorf("query subskill accuracy: %w", err)
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(correct) / float64(total), total, nil
}
