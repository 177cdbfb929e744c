package session

import (
	"context"
	"errors"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	sess "github.com/abhisek/ziggy/internal/session"
	"github.com/abhisek/ziggy/internal/ui/layout"
)

// eventBuffer bounds the number of engine events waiting for the UI.
const eventBuffer = 64

// SessionScreen runs a mission: it owns a session engine, turns key presses
// into engine operations and renders the engine's views.
type SessionScreen struct {
	env    *screen.Env
	engine *sess.Engine

	start  func(ctx context.Context) (sess.View, error)
	events chan sess.Event
	done   chan struct{}
	closed sync.Once

	view     sess.View
	started  bool
	cursor   int
	notice   *sess.MasteryChange
	errMsg   string
	fatal    bool
	busy     bool
	finished bool

	showingQuitConfirm bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.Closer = (*SessionScreen)(nil)

// New creates a SessionScreen that starts a fresh mission.
func New(env *screen.Env, req sess.StartRequest) *SessionScreen {
	s := newScreen(env)
	s.start = func(ctx context.Context) (sess.View, error) {
		return s.engine.Start(ctx, req)
	}
	return s
}

// NewResume creates a SessionScreen that resumes the persisted mission.
func NewResume(env *screen.Env) *SessionScreen {
	s := newScreen(env)
	s.start = s.engine.Resume
	return s
}

func newScreen(env *screen.Env) *SessionScreen {
	s := &SessionScreen{
		env:    env,
		events: make(chan sess.Event, eventBuffer),
		done:   make(chan struct{}),
	}
	s.engine = env.NewEngine(s.deliver)
	return s
}

// deliver is the engine listener. It never blocks once the screen has
// been closed.
func (s *SessionScreen) deliver(ev sess.Event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

// waitForEvent returns a command that waits for the next engine event.
func (s *SessionScreen) waitForEvent() tea.Cmd {
	events, done := s.events, s.done
	return func() tea.Msg {
		select {
		case ev := <-events:
			return engineEventMsg{Event: ev}
		case <-done:
			return nil
		}
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	start := s.start
	return tea.Batch(
		func() tea.Msg {
			v, err := start(context.Background())
			return actionDoneMsg{View: v, Err: err}
		},
		s.waitForEvent(),
	)
}

func (s *SessionScreen) Title() string {
	if s.view.Domain == "" {
		return "Mission"
	}
	return s.view.Domain.DisplayName() + " Mission"
}

// Close stops the engine, saving a running mission so it can be resumed.
func (s *SessionScreen) Close() {
	s.closed.Do(func() {
		if _, err := s.engine.Quit(context.Background()); err != nil && !errors.Is(err, sess.ErrNoSession) {
			s.env.Log.WithError(err).Error("save mission on close")
		}
		close(s.done)
	})
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.fatal:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.showingQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Save & leave"},
			{Key: "N", Description: "Keep going"},
		}
	case s.view.Phase.AcceptsAnswers():
		hints := []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Pick"},
		}
		if s.view.Hint == "" && s.view.Question != nil && s.view.Question.Hint != "" {
			hints = append(hints, layout.KeyHint{Key: "H", Description: "Hint"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	case s.view.Phase == sess.PhaseCorrect || s.view.Phase == sess.PhaseIncorrectFinal:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case engineEventMsg:
		cmd := s.handleEvent(msg.Event)
		return s, tea.Batch(cmd, s.waitForEvent())

	case actionDoneMsg:
		return s, s.handleActionDone(msg)

	case quitDoneMsg:
		s.busy = false
		if msg.Err != nil && !errors.Is(msg.Err, sess.ErrNoSession) {
			s.errMsg = "Could not save your mission. Please try again."
			s.env.Log.WithError(msg.Err).Error("quit mission")
			return s, nil
		}
		s.finished = true
		return s, router.PopToRoot()

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleActionDone(msg actionDoneMsg) tea.Cmd {
	s.busy = false
	if msg.Err != nil {
		switch {
		case !s.started:
			s.fatal = true
			s.errMsg = startErrorMessage(msg.Err)
			s.env.Log.WithError(msg.Err).Warn("start mission")
		case errors.Is(msg.Err, sess.ErrNotAcceptingAnswers), errors.Is(msg.Err, sess.ErrCannotAdvance):
			// A countdown moved on first.
		default:
			s.errMsg = "Could not save. Please try again."
			s.env.Log.WithError(msg.Err).Error("mission operation")
		}
		return s.apply(msg.View)
	}
	s.started = true
	s.errMsg = ""
	return s.apply(msg.View)
}

func startErrorMessage(err error) string {
	if errors.Is(err, sess.ErrNoSession) {
		return "There is no saved mission to resume."
	}
	return "Could not start the mission."
}

func (s *SessionScreen) handleEvent(ev sess.Event) tea.Cmd {
	switch ev.Kind {
	case sess.EventAnswered:
		if ev.Mastery != nil {
			s.notice = ev.Mastery
		}
	case sess.EventQuestion:
		s.notice = nil
	case sess.EventError:
		s.errMsg = "Could not save. Ziggy will keep trying."
		s.env.Log.WithError(ev.Err).Warn("engine event")
	}
	return s.apply(ev.View)
}

// apply shows v unless a newer view is already displayed, and leaves the
// screen once the mission has ended.
func (s *SessionScreen) apply(v sess.View) tea.Cmd {
	if v.Seq < s.view.Seq {
		return nil
	}
	if v.Index != s.view.Index || v.SessionID != s.view.SessionID {
		s.cursor = 0
	}
	s.view = v

	if s.finished {
		return nil
	}
	switch {
	case v.Phase == sess.PhaseCompleted && v.Result != nil:
		s.finished = true
		return router.Replace(newSummaryScreenAdapter(*v.Result))
	case v.Phase == sess.PhaseTimeUp:
		s.finished = true
		return router.Replace(newBreakScreenAdapter(v))
	}
	return nil
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if s.fatal {
		s.finished = true
		return router.Pop()
	}
	if s.finished || s.busy {
		return nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s.quit()
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return nil
	}

	if key == "esc" {
		s.showingQuitConfirm = true
		return nil
	}

	phase := s.view.Phase
	if phase.AcceptsAnswers() && s.view.Question != nil {
		choices := s.view.Question.Choices
		switch key {
		case "1", "2", "3", "4":
			i := int(key[0] - '1')
			if i < len(choices) {
				s.cursor = i
				return s.submit(choices[i])
			}
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(choices)-1 {
				s.cursor++
			}
		case "enter":
			return s.submit(choices[s.cursor])
		case "h", "H":
			if s.view.Hint == "" {
				return s.run(s.engine.RevealHint)
			}
		}
		return nil
	}

	if phase == sess.PhaseCorrect || phase == sess.PhaseIncorrectFinal {
		switch key {
		case "enter", "space", "n":
			return s.run(s.engine.Advance)
		}
	}
	return nil
}

func (s *SessionScreen) submit(choice string) tea.Cmd {
	return s.run(func(ctx context.Context) (sess.View, error) {
		return s.engine.SubmitAnswer(ctx, choice)
	})
}

// run performs an engine operation off the update loop.
func (s *SessionScreen) run(op func(ctx context.Context) (sess.View, error)) tea.Cmd {
	s.busy = true
	return func() tea.Msg {
		v, err := op(context.Background())
		return actionDoneMsg{View: v, Err: err}
	}
}

func (s *SessionScreen) quit() tea.Cmd {
	s.busy = true
	engine := s.engine
	return func() tea.Msg {
		_, err := engine.Quit(context.Background())
		return quitDoneMsg{Err: err}
	}
}
