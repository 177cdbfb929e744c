package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ziggy/internal/gems"
	"github.com/abhisek/ziggy/internal/problemgen"
	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/session"
	"github.com/abhisek/ziggy/internal/store"
	"github.com/abhisek/ziggy/internal/ui/layout"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

// maxSessions bounds how many completed missions are listed.
const maxSessions = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Gems     map[string][]store.GemEventRecord // sessionID → gems
	Err      error
}

// HistoryScreen displays completed missions and their gem awards.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	gems      map[string][]store.GemEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: maxSessions})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Gem details are optional; the list still shows without them.
		allGems, err := repo.QueryGemEvents(ctx, store.QueryOpts{})
		gemsBySession := make(map[string][]store.GemEventRecord)
		if err == nil {
			for _, g := range allGems {
				gemsBySession[g.SessionID] = append(gemsBySession[g.SessionID], g)
			}
		}

		return historyLoadedMsg{Sessions: sessions, Gems: gemsBySession}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.gems = msg.Gems
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No missions yet. Start one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+summaryLine(rec))))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderGems(rec.SessionID, width))
		}
	}

	return b.String()
}

func summaryLine(rec store.SessionSummaryRecord) string {
	var accuracy float64
	if rec.QuestionsServed > 0 {
		accuracy = float64(rec.CorrectAnswers) / float64(rec.QuestionsServed) * 100
	}
	duration := session.FormatRemaining(time.Duration(rec.DurationSecs * float64(time.Second)))

	return fmt.Sprintf("%s  %-9s L%d  %s  %d/%d  %.0f%%  💎 %d",
		rec.Timestamp.Format("Jan 02, 2006"),
		problemgen.Domain(rec.Module).DisplayName(),
		rec.Level,
		duration,
		rec.CorrectAnswers, rec.QuestionsServed,
		accuracy,
		rec.GemsEarned)
}

func (s *HistoryScreen) renderGems(sessionID string, width int) string {
	awards := s.gems[sessionID]
	if len(awards) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("    No gems this mission")) + "\n"
	}

	counts := make(map[gems.GemType]int)
	totals := make(map[gems.GemType]int)
	for _, g := range awards {
		t := gems.GemType(g.Kind)
		counts[t]++
		totals[t] += g.Amount
	}

	var b strings.Builder
	for _, t := range gems.AllGemTypes() {
		if counts[t] == 0 {
			continue
		}
		line := fmt.Sprintf("    %s %s ×%d  +%d", t.Icon(), t.DisplayName(), counts[t], totals[t])
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Gem.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
