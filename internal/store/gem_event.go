package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendGemEvent(ctx context.Context, data GemEventData) error {
	return r.insert(ctx, "gem_events",
		"session_id, question_id, kind, amount, reason",
		data.SessionID, data.QuestionID, data.Kind, data.Amount, data.Reason)
}

func (r *eventRepo) AppendMasteryEvent(ctx context.Context, data MasteryEventData) error {
	return r.insert(ctx, "mastery_events",
		"session_id, subskill, from_status, to_status",
		data.SessionID, data.Subskill, data.FromStatus, data.ToStatus)
}

func (r *eventRepo) QueryGemEvents(ctx context.Context, opts QueryOpts) ([]GemEventRecord, error) {
	where, args := rangeClause(opts)
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, question_id, kind, amount, reason, sequence, timestamp
		FROM gem_events`+where+` ORDER BY sequence DESC`+limitClause(opts), args...)
	if err != nil {
		return nil, fmt.Errorf("query gem events: %w", err)
	}
	defer rows.Close()

	var records []GemEventRecord
	for rows.Next() {
		var rec GemEventRecord
		var ts int64
		if err := rows.Scan(&rec.SessionID, &rec.QuestionID, &rec.Kind, &rec.Amount, &rec.Reason,
			&rec.Sequence, &ts); err != nil {
			return nil, fmt.Errorf("scan gem event: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query gem events: %w", err)
	}
	return records, nil
}
