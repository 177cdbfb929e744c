// Package breaktime shows the screen displayed when the mission time limit
// runs out. The mission has already been saved by then.
package breaktime

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/session"
	"github.com/abhisek/ziggy/internal/ui/components"
	"github.com/abhisek/ziggy/internal/ui/layout"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

const art = `   ( (
    ) )
  ........
  |      |]
  \      /
   '----'`

type BreakScreen struct {
	view session.View
	menu components.Menu
}

var _ screen.Screen = (*BreakScreen)(nil)

// New creates the break screen for a mission stopped at view.
func New(view session.View) *BreakScreen {
	return &BreakScreen{
		view: view,
		menu: components.NewMenu([]components.MenuItem{
			{Label: "Save & Exit", Action: func() tea.Cmd { return tea.Quit }},
			{Label: "Back to Home", Action: router.PopToRoot},
		}),
	}
}

func (b *BreakScreen) Init() tea.Cmd { return nil }

func (b *BreakScreen) Title() string { return "Break Time" }

func (b *BreakScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
	}
}

func (b *BreakScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	b.menu, cmd = b.menu.Update(msg)
	return b, cmd
}

func (b *BreakScreen) View(width, height int) string {
	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(art))
	sb.WriteString("\n\n")
	sb.WriteString(theme.Title.Render("Break Time!"))
	sb.WriteString("\n\n")
	sb.WriteString(theme.Body.Render("You've been working hard. Time to stretch!"))
	sb.WriteString("\n")
	sb.WriteString(theme.Hint.Render(fmt.Sprintf("Your mission is saved at question %d of %d.",
		b.view.Index+1, b.view.Total)))
	sb.WriteString("\n\n")
	sb.WriteString(b.menu.View())

	cw := components.ContentWidth(width)
	return components.Centered(components.Card(sb.String(), cw), width, height)
}
