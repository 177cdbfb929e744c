package session

import (
	sess "github.com/abhisek/ziggy/internal/session"
)

// engineEventMsg carries an event from the engine listener.
type engineEventMsg struct {
	Event sess.Event
}

// actionDoneMsg is sent when an engine operation started by a key press
// or Init returns.
type actionDoneMsg struct {
	View sess.View
	Err  error
}

// quitDoneMsg is sent once a quit has been persisted.
type quitDoneMsg struct {
	Err error
}
