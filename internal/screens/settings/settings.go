// Package settings lets the learner change their name, sound, mission
// defaults and theme, and reset their progress.
package settings

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/session"
	"github.com/abhisek/ziggy/internal/store"
	"github.com/abhisek/ziggy/internal/ui/components"
	"github.com/abhisek/ziggy/internal/ui/layout"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

// AutoAdvanceSpeeds are the selectable auto-advance delays in seconds.
var AutoAdvanceSpeeds = []int{3, 5, 8, 10}

const maxNameLen = 20

type field int

const (
	fieldName field = iota
	fieldSound
	fieldMissionSize
	fieldAutoAdvance
	fieldTheme
	fieldSave
	fieldReset
	fieldCount
)

type mode int

const (
	modeBrowse mode = iota
	modeEditName
	modeConfirmReset
)

type savedMsg struct {
	settings store.Settings
	err      error
}

type resetMsg struct{ err error }

// SettingsScreen edits the stored settings.
type SettingsScreen struct {
	env      *screen.Env
	settings store.Settings
	cursor   field
	mode     mode
	name     components.NameInput
	status   string
	dirty    bool
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New loads the current settings into a SettingsScreen.
func New(env *screen.Env) *SettingsScreen {
	s, err := env.Records.GetSettings(context.Background())
	if err != nil {
		env.Log.WithError(err).Warn("load settings")
		s = env.DefaultSettings
	}
	return &SettingsScreen{env: env, settings: s}
}

func (s *SettingsScreen) Init() tea.Cmd { return nil }

func (s *SettingsScreen) Title() string { return "Settings" }

// Settings returns the settings as edited so far.
func (s *SettingsScreen) Settings() store.Settings { return s.settings }

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeEditName:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmReset:
		return []layout.KeyHint{
			{Key: "y", Description: "Reset"},
			{Key: "n", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			s.env.Log.WithError(msg.err).Error("save settings")
			s.status = "Could not save settings."
			return s, nil
		}
		s.dirty = false
		s.status = "Saved!"
		settings := msg.settings
		return s, func() tea.Msg { return screen.SettingsChangedMsg{Settings: settings} }

	case resetMsg:
		if msg.err != nil {
			s.env.Log.WithError(msg.err).Error("reset progress")
			s.status = "Could not reset progress."
			return s, nil
		}
		s.status = "Progress reset. Fresh start!"
		return s, nil

	case tea.KeyPressMsg:
		switch s.mode {
		case modeEditName:
			return s.updateName(msg)
		case modeConfirmReset:
			switch msg.String() {
			case "y":
				s.mode = modeBrowse
				return s, s.reset()
			case "n", "esc":
				s.mode = modeBrowse
			}
			return s, nil
		}
		return s.updateBrowse(msg)
	}

	if s.mode == modeEditName {
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SettingsScreen) updateBrowse(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return s, router.Pop()
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < fieldCount-1 {
			s.cursor++
		}
	case "left", "h":
		s.change(-1)
	case "right", "l", "space":
		s.change(1)
	case "enter":
		switch s.cursor {
		case fieldName:
			s.mode = modeEditName
			s.name = components.NewNameInput("your name", s.settings.ChildName, maxNameLen)
			return s, s.name.Init()
		case fieldSave:
			return s, s.save()
		case fieldReset:
			s.mode = modeConfirmReset
		default:
			s.change(1)
		}
	}
	return s, nil
}

func (s *SettingsScreen) updateName(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if name := s.name.Value(); name != "" {
			s.settings.ChildName = name
			s.dirty = true
		}
		s.mode = modeBrowse
		return s, nil
	case "esc":
		s.mode = modeBrowse
		return s, nil
	}
	var cmd tea.Cmd
	s.name, cmd = s.name.Update(msg)
	return s, cmd
}

// change cycles the value under the cursor by delta steps.
func (s *SettingsScreen) change(delta int) {
	switch s.cursor {
	case fieldSound:
		s.settings.SoundOn = !s.settings.SoundOn
	case fieldMissionSize:
		s.settings.DefaultMissionSize = cycle(session.MissionSizes, s.settings.DefaultMissionSize, delta)
	case fieldAutoAdvance:
		s.settings.AutoAdvanceSpeed = cycle(AutoAdvanceSpeeds, s.settings.AutoAdvanceSpeed, delta)
	case fieldTheme:
		name := cycle(theme.Names(), s.settings.Theme, delta)
		p := theme.Palettes[name]
		s.settings.Theme = name
		s.settings.Colors = store.Colors{Primary: p.Primary, Secondary: p.Secondary, Accent: p.Accent}
	default:
		return
	}
	s.dirty = true
	s.status = ""
}

// cycle returns the option delta steps away from current, wrapping around.
// An unknown current value starts from the first option.
func cycle[T comparable](options []T, current T, delta int) T {
	i := slices.Index(options, current)
	if i < 0 {
		return options[0]
	}
	n := len(options)
	return options[((i+delta)%n+n)%n]
}

func (s *SettingsScreen) save() tea.Cmd {
	records, settings := s.env.Records, s.settings
	return func() tea.Msg {
		ctx := context.Background()
		if err := records.SetSettings(ctx, settings); err != nil {
			return savedMsg{err: err}
		}
		if err := records.SetProfile(ctx, store.Profile{Nickname: settings.ChildName}); err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{settings: settings}
	}
}

func (s *SettingsScreen) reset() tea.Cmd {
	records := s.env.Records
	return func() tea.Msg {
		return resetMsg{err: records.ResetProgress(context.Background())}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Settings"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Name", s.settings.ChildName},
		{"Sound", onOff(s.settings.SoundOn)},
		{"Mission size", fmt.Sprintf("%d questions", s.settings.DefaultMissionSize)},
		{"Auto-advance", fmt.Sprintf("%ds", s.settings.AutoAdvanceSpeed)},
		{"Theme", s.settings.Theme},
	}
	for i, r := range rows {
		value := r.value
		if field(i) == fieldName && s.mode == modeEditName {
			value = s.name.View()
		} else if field(i) != fieldName {
			value = "◂ " + value + " ▸"
		}
		b.WriteString(s.line(field(i), fmt.Sprintf("%-14s %s", r.label, value)))
	}

	b.WriteString("\n")
	save := "Save"
	if s.dirty {
		save = "Save *"
	}
	b.WriteString(s.line(fieldSave, save))
	b.WriteString(s.line(fieldReset, "Reset all progress"))

	if s.mode == modeConfirmReset {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render("Reset levels, gems and mastery? (y/n)"))
		b.WriteString("\n")
	}
	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.status))
		b.WriteString("\n")
	}

	return components.Centered(components.Card(lipgloss.NewStyle().Align(lipgloss.Left).Render(b.String()), cw), width, height)
}

func (s *SettingsScreen) line(f field, text string) string {
	if f == s.cursor {
		return theme.Selected.Render("  ▸ "+text) + "\n"
	}
	return theme.Unselected.Render("    "+text) + "\n"
}

func onOff(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}
