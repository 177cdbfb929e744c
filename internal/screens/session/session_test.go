package session

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ziggy/internal/problemgen"
	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/screen/screentest"
	"github.com/abhisek/ziggy/internal/screens/breaktime"
	"github.com/abhisek/ziggy/internal/screens/summary"
	sess "github.com/abhisek/ziggy/internal/session"
)

type harness struct {
	t      *testing.T
	env    *screen.Env
	clock  *sess.ManualClock
	screen *SessionScreen
}

func newHarness(t *testing.T, cfg sess.Config) *harness {
	t.Helper()
	env, clock := screentest.NewEnv(t)
	env.Session = cfg
	s := New(env, sess.StartRequest{Domain: problemgen.Numeracy, Size: 5})
	t.Cleanup(s.Close)
	return &harness{t: t, env: env, clock: clock, screen: s}
}

// begin runs the start operation the way Init would.
func (h *harness) begin() {
	h.t.Helper()
	v, err := h.screen.start(context.Background())
	if err != nil {
		h.t.Fatalf("start: %v", err)
	}
	h.screen.Update(actionDoneMsg{View: v})
	h.drain()
}

// press sends a key and runs the resulting engine operation, returning the
// navigation command it produced, if any.
func (h *harness) press(key tea.KeyPressMsg) tea.Cmd {
	h.t.Helper()
	_, cmd := h.screen.Update(key)
	if cmd == nil {
		return nil
	}
	_, next := h.screen.Update(cmd())
	h.drain()
	return next
}

// drain delivers queued engine events and returns the last navigation
// command they produced.
func (h *harness) drain() tea.Cmd {
	var nav tea.Cmd
	for {
		select {
		case ev := <-h.screen.events:
			if cmd := h.screen.handleEvent(ev); cmd != nil {
				nav = cmd
			}
		default:
			return nav
		}
	}
}

func (h *harness) question() *problemgen.Question {
	return h.screen.view.Question
}

func digit(i int) tea.KeyPressMsg {
	return screentest.Key(string(rune('1' + i)))
}

func (h *harness) wrongIndex() int {
	return (h.question().CorrectIndex() + 1) % len(h.question().Choices)
}

func TestSessionScreen_StartShowsQuestion(t *testing.T) {
	h := newHarness(t, sess.Config{})
	h.begin()

	if h.screen.view.Phase != sess.PhaseAwaitingFirstAnswer {
		t.Fatalf("phase = %v", h.screen.view.Phase)
	}
	view := h.screen.View(100, 30)
	if !strings.Contains(view, "Q 1/5") {
		t.Error("expected question counter")
	}
	if h.screen.Title() != "Numeracy Mission" {
		t.Errorf("Title = %q", h.screen.Title())
	}
}

func TestSessionScreen_CorrectAnswer(t *testing.T) {
	h := newHarness(t, sess.Config{})
	h.begin()

	h.press(digit(h.question().CorrectIndex()))

	if h.screen.view.Phase != sess.PhaseCorrect {
		t.Fatalf("phase = %v", h.screen.view.Phase)
	}
	if !strings.Contains(h.screen.View(100, 30), "Correct!") {
		t.Error("expected correct feedback")
	}
}

func TestSessionScreen_WrongTwiceRevealsAnswer(t *testing.T) {
	h := newHarness(t, sess.Config{})
	h.begin()
	answer := h.question().CorrectAnswer

	h.press(digit(h.wrongIndex()))
	if h.screen.view.Phase != sess.PhaseAwaitingRetry {
		t.Fatalf("phase = %v", h.screen.view.Phase)
	}
	if !strings.Contains(h.screen.View(100, 30), "Try once more") {
		t.Error("expected retry prompt")
	}

	h.press(digit(h.wrongIndex()))
	if h.screen.view.Phase != sess.PhaseIncorrectFinal {
		t.Fatalf("phase = %v", h.screen.view.Phase)
	}
	if h.screen.view.RevealedAnswer != answer {
		t.Errorf("revealed %q, want %q", h.screen.view.RevealedAnswer, answer)
	}

	h.press(screentest.Enter)
	if h.screen.view.Index != 1 {
		t.Errorf("expected second question, got index %d", h.screen.view.Index)
	}
}

func TestSessionScreen_ArrowsAndEnter(t *testing.T) {
	h := newHarness(t, sess.Config{})
	h.begin()

	for range h.question().CorrectIndex() {
		h.screen.Update(screentest.Down)
	}
	h.press(screentest.Enter)

	if h.screen.view.Phase != sess.PhaseCorrect {
		t.Errorf("phase = %v", h.screen.view.Phase)
	}
}

func TestSessionScreen_Hint(t *testing.T) {
	h := newHarness(t, sess.Config{})
	h.begin()
	if h.question().Hint == "" {
		t.Skip("first question has no hint")
	}

	h.press(screentest.Key("h"))

	if h.screen.view.Hint != h.question().Hint {
		t.Errorf("hint = %q", h.screen.view.Hint)
	}
}

func TestSessionScreen_AutoAdvance(t *testing.T) {
	h := newHarness(t, sess.Config{})
	h.begin()

	h.press(digit(h.question().CorrectIndex()))
	h.clock.Advance(5 * time.Second)
	h.drain()

	if h.screen.view.Index != 1 {
		t.Errorf("expected auto advance to question 2, got index %d", h.screen.view.Index)
	}
	if h.screen.view.Phase != sess.PhaseAwaitingFirstAnswer {
		t.Errorf("phase = %v", h.screen.view.Phase)
	}
}

func TestSessionScreen_QuitConfirmSaves(t *testing.T) {
	h := newHarness(t, sess.Config{})
	h.begin()

	h.screen.Update(screentest.Escape)
	if !h.screen.showingQuitConfirm {
		t.Fatal("expected quit confirmation")
	}
	h.screen.Update(screentest.Key("n"))
	if h.screen.showingQuitConfirm {
		t.Fatal("n should dismiss the confirmation")
	}

	h.screen.Update(screentest.Escape)
	cmd := h.press(screentest.Key("y"))
	if cmd == nil {
		t.Fatal("expected navigation after quit")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}

	rec, err := h.env.Records.GetSession(context.Background())
	if err != nil || rec == nil {
		t.Fatalf("expected saved session, got %v %v", rec, err)
	}
	if rec.QIndex != 0 {
		t.Errorf("QIndex = %d", rec.QIndex)
	}
}

func TestSessionScreen_CompletionShowsSummary(t *testing.T) {
	h := newHarness(t, sess.Config{})
	h.begin()

	var nav tea.Cmd
	for range 5 {
		h.press(digit(h.question().CorrectIndex()))
		nav = h.press(screentest.Enter)
	}

	if nav == nil {
		t.Fatal("expected navigation after the last question")
	}
	msg, ok := nav().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}

	rec, err := h.env.Records.GetSession(context.Background())
	if err != nil || rec != nil {
		t.Errorf("session should be cleared, got %v %v", rec, err)
	}
}

func TestSessionScreen_TimeUpShowsBreak(t *testing.T) {
	h := newHarness(t, sess.Config{TimeLimit: 3 * time.Second, WarningBefore: time.Second, TickInterval: time.Second})
	h.begin()

	h.clock.Advance(3 * time.Second)
	nav := h.drain()

	if nav == nil {
		t.Fatal("expected navigation on time up")
	}
	msg, ok := nav().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := msg.Screen.(*breaktime.BreakScreen); !ok {
		t.Errorf("expected break screen, got %T", msg.Screen)
	}

	rec, err := h.env.Records.GetSession(context.Background())
	if err != nil || rec == nil {
		t.Fatalf("expected saved session, got %v %v", rec, err)
	}
}

func TestSessionScreen_ResumeWithoutSession(t *testing.T) {
	env, _ := screentest.NewEnv(t)
	s := NewResume(env)
	t.Cleanup(s.Close)

	v, err := s.start(context.Background())
	s.Update(actionDoneMsg{View: v, Err: err})

	if !s.fatal {
		t.Fatal("expected an error screen")
	}
	if !strings.Contains(s.View(80, 24), "no saved mission") {
		t.Error("expected missing mission message")
	}
	_, cmd := s.Update(screentest.Key("x"))
	if cmd == nil {
		t.Fatal("expected navigation")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSessionScreen_CloseSavesRunningMission(t *testing.T) {
	h := newHarness(t, sess.Config{})
	h.begin()

	h.screen.Close()

	rec, err := h.env.Records.GetSession(context.Background())
	if err != nil || rec == nil {
		t.Fatalf("expected saved session, got %v %v", rec, err)
	}
}

func TestSessionScreen_StaleViewIgnored(t *testing.T) {
	h := newHarness(t, sess.Config{})
	h.begin()
	current := h.screen.view

	stale := current
	stale.Seq = current.Seq - 1
	stale.Index = 3
	h.screen.apply(stale)

	if h.screen.view.Index != current.Index {
		t.Error("a stale view must not replace a newer one")
	}
}
