package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/ziggy/internal/problemgen"
	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen/screentest"
	"github.com/abhisek/ziggy/internal/session"
)

func testResult() session.Result {
	return session.Result{
		SessionID:   "s-1",
		Module:      problemgen.Reading,
		Correct:     9,
		Total:       10,
		Gems:        230,
		LevelBefore: 2,
		LevelAfter:  3,
		TotalGems:   480,
		Duration:    7*time.Minute + 5*time.Second,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "Mission Complete" {
		t.Errorf("Title = %q, want %q", s.Title(), "Mission Complete")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testResult()).View(80, 30)

	for _, want := range []string{"9 / 10 correct", "+230 gems", "Gem total: 480", "Level 2 → 3", "Level up!", "7:05"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_LevelDown(t *testing.T) {
	r := testResult()
	r.Correct, r.LevelBefore, r.LevelAfter = 2, 3, 2

	view := New(r).View(80, 30)
	if !strings.Contains(view, "Level 3 → 2") {
		t.Error("expected level change line")
	}
	if strings.Contains(view, "Level up!") {
		t.Error("level down must not celebrate")
	}
}

func TestSummaryScreen_Headline(t *testing.T) {
	r := testResult()
	r.Correct = r.Total
	if got := headline(r); !strings.Contains(got, "Perfect") {
		t.Errorf("headline = %q", got)
	}
	r.Correct = 1
	if got := headline(r); !strings.Contains(got, "Keep practising") {
		t.Errorf("headline = %q", got)
	}
}

func TestSummaryScreen_EnterReturnsHome(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(screentest.Enter)
	if cmd == nil {
		t.Fatal("expected command on enter")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}
