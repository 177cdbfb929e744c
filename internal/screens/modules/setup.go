package modules

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ziggy/internal/problemgen"
	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	sessionscreen "github.com/abhisek/ziggy/internal/screens/session"
	"github.com/abhisek/ziggy/internal/session"
	"github.com/abhisek/ziggy/internal/ui/components"
	"github.com/abhisek/ziggy/internal/ui/layout"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

// SetupScreen offers the mission sizes with the learner's default
// preselected.
type SetupScreen struct {
	env    *screen.Env
	domain problemgen.Domain
	level  int
	menu   components.Menu
}

var _ screen.Screen = (*SetupScreen)(nil)

// NewSetup creates a SetupScreen for a mission in d at level.
func NewSetup(env *screen.Env, d problemgen.Domain, level int) *SetupScreen {
	s := &SetupScreen{env: env, domain: d, level: level}

	size := env.DefaultSettings.DefaultMissionSize
	if settings, err := env.Records.GetSettings(context.Background()); err == nil {
		size = settings.DefaultMissionSize
	} else {
		env.Log.WithError(err).Warn("load settings")
	}

	items := make([]components.MenuItem, 0, len(session.MissionSizes))
	for _, n := range session.MissionSizes {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%2d questions", n),
			Action: func() tea.Cmd { return s.begin(n) },
		})
	}
	s.menu = components.NewMenu(items)
	if i := slices.Index(session.MissionSizes, size); i >= 0 {
		s.menu.Select(i)
	}
	return s
}

func (s *SetupScreen) begin(size int) tea.Cmd {
	return router.Replace(sessionscreen.New(s.env, session.StartRequest{
		Domain: s.domain,
		Size:   size,
		Level:  s.level,
	}))
}

// SelectedSize returns the size under the cursor.
func (s *SetupScreen) SelectedSize() int {
	return session.MissionSizes[s.menu.Selected]
}

func (s *SetupScreen) Init() tea.Cmd { return nil }

func (s *SetupScreen) Title() string { return s.domain.DisplayName() }

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "esc" {
		return s, router.Pop()
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("%s %s · Level %d", s.domain.Icon(), s.domain.DisplayName(), s.level)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("How long should this mission be?"))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	cw := components.ContentWidth(width)
	return components.Centered(components.Card(b.String(), cw), width, height)
}
