package summary

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

// SummaryScreen displays the result of a completed mission.
type SummaryScreen struct {
	result session.Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result session.Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Mission Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "space":
			return s, router.PopToRoot()
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(headline(r)))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Render(
		fmt.Sprintf("%s %s", r.Module.Icon(), r.Module.DisplayName())))
	b.WriteString("\n\n")

	bar := components.ProgressBar{Done: r.Correct, Total: r.Total, Width: min(width-20, 40)}
	b.WriteString(center.Render(bar.View()))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(
		fmt.Sprintf("%d / %d correct", r.Correct, r.Total)))
	b.WriteString("\n\n")

	b.WriteString(center.Render(theme.Gem.Render(fmt.Sprintf("💎 +%d gems", r.Gems))))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("Gem total: %d", r.TotalGems)))
	b.WriteString("\n\n")

	b.WriteString(center.Render(levelLine(r)))
	b.WriteString("\n")

	if r.Duration > 0 {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(
			fmt.Sprintf("Time: %s", session.FormatRemaining(r.Duration))))
	}

	return b.String()
}

func headline(r session.Result) string {
	switch {
	case r.Total > 0 && r.Correct == r.Total:
		return "Perfect mission! 🌟"
	case r.Accuracy() >= 0.8:
		return "Mission complete! Great work!"
	case r.Accuracy() >= 0.5:
		return "Mission complete!"
	default:
		return "Mission complete. Keep practising!"
	}
}

func levelLine(r session.Result) string {
	text := fmt.Sprintf("Level %d → %d", r.LevelBefore, r.LevelAfter)
	switch r.LevelChange() {
	case 1:
		return theme.Correct.Render(text + "  ▲ Level up!")
	case -1:
		return lipgloss.NewStyle().Foreground(theme.Warning).Render(text + "  ▼ Let's practise this level")
	default:
		return theme.Body.Render(text)
	}
}
