package gemvault

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/abhisek/ziggy/internal/gems"
	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/store"
	"github.com/abhisek/ziggy/internal/ui/layout"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

type gemsLoadedMsg struct {
	Records []store.GemEventRecord
	Err     error
}

// GemVaultScreen displays every gem award, grouped by kind.
type GemVaultScreen struct {
	eventRepo    store.EventRepo
	allGems      []store.GemEventRecord
	selectedType int // index into AllGemTypes
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*GemVaultScreen)(nil)
var _ screen.KeyHintProvider = (*GemVaultScreen)(nil)

// New creates a new GemVaultScreen.
func New(eventRepo store.EventRepo) *GemVaultScreen {
	return &GemVaultScreen{
		eventRepo: eventRepo,
	}
}

func (s *GemVaultScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		records, err := repo.QueryGemEvents(context.Background(), store.QueryOpts{})
		return gemsLoadedMsg{Records: records, Err: err}
	}
}

func (s *GemVaultScreen) Title() string {
	return "Gem Vault"
}

func (s *GemVaultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch type"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GemVaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gemsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.allGems = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		types := gems.AllGemTypes()
		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "tab":
			s.selectedType = (s.selectedType + 1) % len(types)
			s.scrollOffset = 0
		case "shift+tab":
			s.selectedType = (s.selectedType - 1 + len(types)) % len(types)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filteredGems())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

// Total returns the sum of every award.
func (s *GemVaultScreen) Total() int {
	return lo.SumBy(s.allGems, func(g store.GemEventRecord) int { return g.Amount })
}

func (s *GemVaultScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading gems...")
	}

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Text).Render(
		fmt.Sprintf("\n💎 %d gems from %d awards\n", s.Total(), len(s.allGems))))
	b.WriteString("\n")

	// Type tabs.
	var tabs []string
	for i, t := range gems.AllGemTypes() {
		label := fmt.Sprintf("%s %s (%d)", t.Icon(), t.DisplayName(), s.countByType(t))
		if i == s.selectedType {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filteredGems()
	if len(filtered) == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("No gems of this type yet"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	style := lipgloss.NewStyle().Foreground(kindColor(gems.AllGemTypes()[s.selectedType]))
	for _, rec := range filtered[start:end] {
		line := fmt.Sprintf("  +%-4d %-34s %s", rec.Amount, rec.Reason, rec.Timestamp.Format("Jan 02, 2006"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func (s *GemVaultScreen) filteredGems() []store.GemEventRecord {
	selected := string(gems.AllGemTypes()[s.selectedType])
	return lo.Filter(s.allGems, func(g store.GemEventRecord, _ int) bool { return g.Kind == selected })
}

func (s *GemVaultScreen) countByType(t gems.GemType) int {
	return lo.CountBy(s.allGems, func(g store.GemEventRecord) bool { return g.Kind == string(t) })
}
