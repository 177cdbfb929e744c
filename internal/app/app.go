package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/screens/home"
	"github.com/abhisek/ziggy/internal/screens/welcome"
	"github.com/abhisek/ziggy/internal/store"
	"github.com/abhisek/ziggy/internal/ui/layout"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env     *screen.Env
	router  *router.Router
	width   int
	height  int
	learner string
	gems    int
}

// newAppModel creates an AppModel rooted at the home screen, or at the
// welcome screen for a learner without a profile.
func newAppModel(env *screen.Env) AppModel {
	ctx := context.Background()

	settings, err := env.Records.GetSettings(ctx)
	if err != nil {
		env.Log.WithError(err).Warn("load settings")
		settings = env.DefaultSettings
	}
	applyTheme(settings)

	newHome := func() screen.Screen { return home.New(env) }

	var root screen.Screen
	profile, err := env.Records.GetProfile(ctx)
	if err != nil {
		env.Log.WithError(err).Warn("load profile")
	}
	if profile == nil {
		root = welcome.New(env, newHome)
	} else {
		root = newHome()
	}

	m := AppModel{env: env, router: router.New(root)}
	m.loadHeader()
	return m
}

func applyTheme(s store.Settings) {
	theme.Apply(s.Theme, s.Colors.Primary, s.Colors.Secondary, s.Colors.Accent)
}

// loadHeader refreshes the learner name and gem total shown in the header.
func (m *AppModel) loadHeader() {
	ctx := context.Background()
	m.learner = ""
	if p, err := m.env.Records.GetProfile(ctx); err == nil && p != nil {
		m.learner = p.Nickname
	}
	if progress, err := m.env.Records.GetProgress(ctx); err == nil {
		m.gems = progress.TotalGems
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.router.CloseAll()
			return m, tea.Quit
		}

	case screen.SettingsChangedMsg:
		applyTheme(msg.Settings)
		m.loadHeader()
		return m, nil
	}

	cmd := m.router.Update(msg)

	switch msg.(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, router.PopToRootMsg:
		m.loadHeader()
	}
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.learner, m.gems, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program. Screens still on the stack are
// closed when the program exits, which saves a running mission.
func Run(env *screen.Env) error {
	m := newAppModel(env)
	defer m.router.CloseAll()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
