package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// recordRepo stores one JSON document per key in the records table.
type recordRepo struct {
	db  *sql.DB
	now func() time.Time
}

// get loads and validates the document at key into v. It reports false if
// the key is absent.
func (r *recordRepo) get(ctx context.Context, key string, v any) (bool, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := validateRecord(key, []byte(raw)); err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, key, err)
	}
	return true, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// put validates v and upserts it at key.
func (r *recordRepo) put(ctx context.Context, key string, v any) error {
	return r.putWith(ctx, r.db, key, v)
}

func (r *recordRepo) putWith(ctx context.Context, db execer, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := validateRecord(key, raw); err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), r.now().UnixNano())
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (r *recordRepo) GetProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	ok, err := r.get(ctx, KeyProfile, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (r *recordRepo) SetProfile(ctx context.Context, p Profile) error {
	return r.put(ctx, KeyProfile, p)
}

func (r *recordRepo) GetSettings(ctx context.Context) (Settings, error) {
	s := DefaultSettings()
	if _, err := r.get(ctx, KeySettings, &s); err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

func (r *recordRepo) SetSettings(ctx context.Context, s Settings) error {
	return r.put(ctx, KeySettings, s)
}

func (r *recordRepo) GetProgress(ctx context.Context) (Progress, error) {
	var p Progress
	ok, err := r.get(ctx, KeyProgress, &p)
	if err != nil {
		return Progress{}, err
	}
	if !ok {
		return r.defaultProgress(), nil
	}
	return p, nil
}

func (r *recordRepo) defaultProgress() Progress {
	return NewProgress(r.now())
}

// NewProgress returns a fresh progress record: every domain at level 1
// and no gems.
func NewProgress(createdAt time.Time) Progress {
	return Progress{
		Levels:    Levels{Numeracy: 1, Reading: 1, Conventions: 1, Writing: 1},
		CreatedAt: createdAt,
	}
}

func (r *recordRepo) SetProgress(ctx context.Context, p Progress) error {
	return r.put(ctx, KeyProgress, p)
}

func (r *recordRepo) GetSession(ctx context.Context) (*SessionRecord, error) {
	var s SessionRecord
	ok, err := r.get(ctx, KeySession, &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (r *recordRepo) SetSession(ctx context.Context, s SessionRecord) error {
	return r.put(ctx, KeySession, s)
}

func (r *recordRepo) ClearSession(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (r *recordRepo) GetMastery(ctx context.Context) (MasteryData, error) {
	m := MasteryData{Subskills: map[string]SubskillRecord{}}
	if _, err := r.get(ctx, KeyMastery, &m); err != nil {
		return MasteryData{Subskills: map[string]SubskillRecord{}}, err
	}
	if m.Subskills == nil {
		m.Subskills = map[string]SubskillRecord{}
	}
	return m, nil
}

func (r *recordRepo) SetMastery(ctx context.Context, m MasteryData) error {
	return r.put(ctx, KeyMastery, normalizeMastery(m))
}

func (r *recordRepo) SetSessionAndMastery(ctx context.Context, s SessionRecord, m MasteryData) error {
	return r.inTx(ctx, "save answer", func(tx *sql.Tx) error {
		if err := r.putWith(ctx, tx, KeySession, s); err != nil {
			return err
		}
		return r.putWith(ctx, tx, KeyMastery, normalizeMastery(m))
	})
}

func (r *recordRepo) CompleteSession(ctx context.Context, p Progress) error {
	return r.inTx(ctx, "complete session", func(tx *sql.Tx) error {
		if err := r.putWith(ctx, tx, KeyProgress, p); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, KeySession)
		return err
	})
}

// normalizeMastery replaces nil review queues with empty ones.
func normalizeMastery(m MasteryData) MasteryData {
	out := MasteryData{Subskills: make(map[string]SubskillRecord, len(m.Subskills))}
	for id, rec := range m.Subskills {
		if rec.ScheduledReviewQueue == nil {
			rec.ScheduledReviewQueue = []string{}
		}
		out.Subskills[id] = rec
	}
	return out
}

func (r *recordRepo) ResetProgress(ctx context.Context) error {
	return r.inTx(ctx, "reset progress", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM records WHERE key IN (?, ?, ?)`,
			KeyProgress, KeyMastery, KeySession)
		return err
	})
}

// inTx runs fn in a transaction, committing only if fn succeeds.
func (r *recordRepo) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
