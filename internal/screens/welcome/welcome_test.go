package welcome

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/screen/screentest"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome(t *testing.T) (*WelcomeScreen, *screen.Env, *int) {
	t.Helper()
	env, _ := screentest.NewEnv(t)
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(env, factory), env, &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func typeName(w *WelcomeScreen, name string) {
	for _, r := range name {
		w.Update(screentest.Key(string(r)))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _, _ := newTestWelcome(t)

	if strings.Contains(w.View(80, 24), "press any key") {
		t.Error("prompt should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", w.elapsed)
	}

	sendTicks(w, 10)
	if w.elapsed != 1500*time.Millisecond {
		t.Errorf("expected elapsed 1500ms, got %v", w.elapsed)
	}
	if !strings.Contains(w.View(80, 24), "press any key") {
		t.Error("prompt should be visible after the banner appears")
	}
}

func TestElapsedCapped(t *testing.T) {
	w, _, callCount := newTestWelcome(t)

	sendTicks(w, 45)
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called without input, got %d", *callCount)
	}
}

func TestKeypressStartsNaming(t *testing.T) {
	w, _, callCount := newTestWelcome(t)
	sendTicks(w, 3)

	w.Update(tea.KeyPressMsg{Code: ' ', Text: " "})

	if !w.naming {
		t.Fatal("expected name entry after keypress")
	}
	if w.elapsed != totalDur {
		t.Errorf("keypress should skip the animation, elapsed %v", w.elapsed)
	}
	if *callCount != 0 {
		t.Error("factory should wait for the nickname")
	}
	if !strings.Contains(w.View(80, 24), "What should we call you?") {
		t.Error("expected nickname prompt")
	}
}

func TestEmptyNameRejected(t *testing.T) {
	w, _, _ := newTestWelcome(t)
	w.Update(screentest.Key("x"))

	_, cmd := w.Update(screentest.Enter)
	if cmd != nil {
		t.Error("empty name should not save")
	}
	if w.err == "" {
		t.Error("expected a validation message")
	}
}

func TestNameSavesProfileAndTransitions(t *testing.T) {
	w, env, callCount := newTestWelcome(t)
	w.Update(screentest.Key("x"))
	typeName(w, "Mia")

	_, cmd := w.Update(screentest.Enter)
	if cmd == nil {
		t.Fatal("expected save command")
	}
	saved, ok := cmd().(savedMsg)
	if !ok {
		t.Fatal("expected savedMsg")
	}
	if saved.err != nil {
		t.Fatalf("save: %v", saved.err)
	}

	_, cmd = w.Update(saved)
	if cmd == nil {
		t.Fatal("expected transition command")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if replace.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}

	ctx := context.Background()
	p, err := env.Records.GetProfile(ctx)
	if err != nil || p == nil {
		t.Fatalf("GetProfile: %v %v", p, err)
	}
	if p.Nickname != "Mia" {
		t.Errorf("nickname: got %q", p.Nickname)
	}
	s, err := env.Records.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if s.ChildName != "Mia" {
		t.Errorf("child name: got %q", s.ChildName)
	}
}

func TestTransitionOnce(t *testing.T) {
	w, _, callCount := newTestWelcome(t)
	w.Update(savedMsg{})
	_, cmd := w.Update(savedMsg{})
	if cmd != nil {
		t.Error("second save should not transition again")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _, _ := newTestWelcome(t)
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
