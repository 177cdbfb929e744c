package screen

import (
	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/ziggy/internal/bank"
	"github.com/abhisek/ziggy/internal/session"
	"github.com/abhisek/ziggy/internal/store"
	"github.com/abhisek/ziggy/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is implemented by screens that reload their data when they
// become active again after the screen above them is popped.
type Refresher interface {
	Refresh() tea.Cmd
}

// Closer is implemented by screens holding resources that must be released
// when they leave the stack or the program exits.
type Closer interface {
	Close()
}

// SettingsChangedMsg is sent after the learner saves new settings.
type SettingsChangedMsg struct {
	Settings store.Settings
}

// Env carries the services screens need.
type Env struct {
	Bank    *bank.Bank
	Records store.RecordRepo
	Events  store.EventRepo
	Log     logrus.FieldLogger

	// Session holds the mission timing.
	Session session.Config
	// Clock drives mission countdowns. Nil means the wall clock.
	Clock session.Clock

	// DefaultSettings seeds a new learner's settings.
	DefaultSettings store.Settings
}

// NewEngine creates a session engine reporting to listener.
func (e *Env) NewEngine(listener session.Listener) *session.Engine {
	return session.New(session.Options{
		Bank:     e.Bank,
		Records:  e.Records,
		Events:   e.Events,
		Clock:    e.Clock,
		Logger:   e.Log,
		Listener: listener,
		Config:   e.Session,
	})
}
