package session

import (
	"fmt"
	"math"
	"time"
)

// DefaultTimeLimit is the wall-clock budget of a mission before a break.
const DefaultTimeLimit = 20 * time.Minute

// DefaultWarningBefore is how long before the limit the warning shows.
const DefaultWarningBefore = time.Minute

// TimerStatus is the state of the mission timer.
type TimerStatus string

const (
	TimerRunning TimerStatus = "running"
	TimerWarning TimerStatus = "warning"
	TimerExpired TimerStatus = "expired"
)

// TimerTransition is reported by Update on the call that changes status.
type TimerTransition int

const (
	TransitionNone TimerTransition = iota
	TransitionWarning
	TransitionExpired
)

// Timer tracks elapsed mission time against a budget. Expiry is terminal:
// once expired the timer stays frozen at the budget.
type Timer struct {
	start  time.Time
	budget time.Duration

	// WarnBefore is how long before the budget the warning starts.
	WarnBefore time.Duration

	// WarningShownAt is set the first time the warning threshold is crossed.
	WarningShownAt *time.Time

	status TimerStatus
}

// NewTimer creates a running timer. start may lie in the past to account for
// time already spent on a resumed mission.
func NewTimer(start time.Time, budget time.Duration) *Timer {
	return &Timer{
		start:      start,
		budget:     budget,
		WarnBefore: DefaultWarningBefore,
		status:     TimerRunning,
	}
}

// Update advances the timer to now. It returns the status and, on the call
// that crosses a threshold, the transition taken.
func (t *Timer) Update(now time.Time) (TimerStatus, TimerTransition) {
	if t.status == TimerExpired {
		return t.status, TransitionNone
	}

	elapsed := now.Sub(t.start)
	if elapsed >= t.budget {
		t.status = TimerExpired
		return t.status, TransitionExpired
	}
	if elapsed >= t.budget-t.WarnBefore && t.status == TimerRunning {
		t.status = TimerWarning
		if t.WarningShownAt == nil {
			at := now
			t.WarningShownAt = &at
		}
		return t.status, TransitionWarning
	}
	return t.status, TransitionNone
}

// Status returns the status as of the last Update.
func (t *Timer) Status() TimerStatus { return t.status }

// Budget returns the time limit.
func (t *Timer) Budget() time.Duration { return t.budget }

// Elapsed returns the time spent at now, capped at the budget.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	if t.status == TimerExpired {
		return t.budget
	}
	return min(max(now.Sub(t.start), 0), t.budget)
}

// Remaining returns the time left at now, never negative.
func (t *Timer) Remaining(now time.Time) time.Duration {
	return t.budget - t.Elapsed(now)
}

// FormatRemaining renders d as m:ss, rounding partial seconds up so the
// display never shows 0:00 before the timer has expired.
func FormatRemaining(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
