// Package modules lets the learner pick a domain and a mission size.
package modules

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ziggy/internal/problemgen"
	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	sessionscreen "github.com/abhisek/ziggy/internal/screens/session"
	"github.com/abhisek/ziggy/internal/store"
	"github.com/abhisek/ziggy/internal/ui/components"
	"github.com/abhisek/ziggy/internal/ui/layout"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

// ModulesScreen lists the four domains with the learner's level in each.
type ModulesScreen struct {
	env     *screen.Env
	levels  store.Levels
	paused  *store.SessionRecord
	menu    components.Menu
	loadErr error
}

var _ screen.Screen = (*ModulesScreen)(nil)
var _ screen.Refresher = (*ModulesScreen)(nil)

// New creates a ModulesScreen.
func New(env *screen.Env) *ModulesScreen {
	m := &ModulesScreen{env: env}
	m.load()
	return m
}

func (m *ModulesScreen) load() {
	ctx := context.Background()
	m.loadErr = nil

	progress, err := m.env.Records.GetProgress(ctx)
	if err != nil {
		m.loadErr = err
		m.env.Log.WithError(err).Warn("load progress")
	}
	m.levels = progress.Levels

	m.paused, err = m.env.Records.GetSession(ctx)
	if err != nil {
		m.env.Log.WithError(err).Warn("load session")
		m.paused = nil
	}

	var items []components.MenuItem
	for _, d := range problemgen.AllDomains() {
		level := max(m.levels.Get(d), problemgen.MinLevel)
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%s  %-10s Level %d", d.Icon(), d.DisplayName(), level),
			Action: func() tea.Cmd {
				return router.Push(NewSetup(m.env, d, level))
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:    m.resumeLabel(),
		Disabled: m.paused == nil,
		Action: func() tea.Cmd {
			return router.Push(sessionscreen.NewResume(m.env))
		},
	})

	selected := m.menu.Selected
	m.menu = components.NewMenu(items)
	m.menu.Select(selected)
}

func (m *ModulesScreen) resumeLabel() string {
	if m.paused == nil {
		return "▶  Resume mission"
	}
	return fmt.Sprintf("▶  Resume %s (question %d of %d)",
		m.paused.Module.DisplayName(), m.paused.QIndex+1, len(m.paused.QuestionIDs))
}

func (m *ModulesScreen) Init() tea.Cmd { return nil }

// Refresh reloads levels and the paused mission.
func (m *ModulesScreen) Refresh() tea.Cmd {
	m.load()
	return nil
}

func (m *ModulesScreen) Title() string { return "Choose a Module" }

func (m *ModulesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (m *ModulesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "esc" {
		return m, router.Pop()
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *ModulesScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Which mission today?"))
	b.WriteString("\n\n")
	b.WriteString(m.menu.View())
	if m.loadErr != nil {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render("Could not load your levels."))
	}

	cw := components.ContentWidth(width)
	return components.Centered(components.Card(lipgloss.NewStyle().Align(lipgloss.Left).Render(b.String()), cw), width, height)
}
