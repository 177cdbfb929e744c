package session

import (
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/screens/breaktime"
	"github.com/abhisek/ziggy/internal/screens/summary"
	sess "github.com/abhisek/ziggy/internal/session"
)

// newSummaryScreenAdapter creates the results screen of a completed mission.
func newSummaryScreenAdapter(r sess.Result) screen.Screen {
	return summary.New(r)
}

// newBreakScreenAdapter creates the break screen shown when time runs out.
func newBreakScreenAdapter(v sess.View) screen.Screen {
	return breaktime.New(v)
}
