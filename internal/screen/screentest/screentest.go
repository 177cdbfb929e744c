// Package screentest builds screen environments backed by a throwaway
// database for screen tests.
package screentest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ziggy/internal/bank"
	"github.com/abhisek/ziggy/internal/logging"
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/session"
	"github.com/abhisek/ziggy/internal/store"
)

// Now is the fixed start time of the manual clock.
var Now = time.Date(2026, 10, 14, 16, 0, 0, 0, time.UTC)

// NewEnv opens a fresh store under t.TempDir and returns an environment
// using the default bank and a manual clock shared with the store.
func NewEnv(t *testing.T) (*screen.Env, *session.ManualClock) {
	t.Helper()
	clock := session.NewManualClock(Now)
	s, err := store.Open(filepath.Join(t.TempDir(), "ziggy.db"), store.WithClock(clock.Now))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return &screen.Env{
		Bank:            bank.Default(),
		Records:         s.Records(),
		Events:          s.Events(),
		Log:             logging.Discard(),
		Clock:           clock,
		DefaultSettings: store.DefaultSettings(),
	}, clock
}

// SeedProgress stores a fresh progress record holding gems.
func SeedProgress(t *testing.T, env *screen.Env, gems int) store.Progress {
	t.Helper()
	p := store.NewProgress(Now)
	p.TotalGems = gems
	if err := env.Records.SetProgress(context.Background(), p); err != nil {
		t.Fatalf("seed progress: %v", err)
	}
	return p
}

// Key returns a key press for a printable key.
func Key(s string) tea.KeyPressMsg {
	r := []rune(s)
	return tea.KeyPressMsg{Code: r[0], Text: s}
}

// Special key presses.
var (
	Enter  = tea.KeyPressMsg{Code: tea.KeyEnter}
	Escape = tea.KeyPressMsg{Code: tea.KeyEscape}
	Down   = tea.KeyPressMsg{Code: tea.KeyDown}
	Up     = tea.KeyPressMsg{Code: tea.KeyUp}
	Tab    = tea.KeyPressMsg{Code: tea.KeyTab}
)

// Drain runs cmd and every batched command it produces, returning the
// resulting messages. cmd must not contain ticks.
func Drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
