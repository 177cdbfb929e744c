package skillmap

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ziggy/internal/mastery"
	"github.com/abhisek/ziggy/internal/problemgen"
	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/ui/layout"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

type accuracyLoadedMsg struct {
	accuracy float64
	answers  int
	err      error
}

// SkillDetailScreen shows the mastery record of a single subskill.
type SkillDetailScreen struct {
	env      *screen.Env
	domain   problemgen.Domain
	family   problemgen.Family
	record   mastery.Record
	bankSize int

	accuracy float64
	answers  int
	loaded   bool
}

var _ screen.Screen = (*SkillDetailScreen)(nil)
var _ screen.KeyHintProvider = (*SkillDetailScreen)(nil)

func newSkillDetail(env *screen.Env, d problemgen.Domain, f problemgen.Family, rec mastery.Record) *SkillDetailScreen {
	size := 0
	for _, q := range env.Bank.ByDomain(d) {
		if q.Subskill == f.Subskill {
			size++
		}
	}
	return &SkillDetailScreen{env: env, domain: d, family: f, record: rec, bankSize: size}
}

// Init loads the answer accuracy from the event log.
func (d *SkillDetailScreen) Init() tea.Cmd {
	events, subskill := d.env.Events, d.family.Subskill
	return func() tea.Msg {
		acc, n, err := events.SubskillAccuracy(context.Background(), subskill)
		return accuracyLoadedMsg{accuracy: acc, answers: n, err: err}
	}
}

func (d *SkillDetailScreen) Title() string { return DisplayName(d.family) }

func (d *SkillDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case accuracyLoadedMsg:
		if msg.err != nil {
			d.env.Log.WithError(msg.err).Warn("load subskill accuracy")
			return d, nil
		}
		d.accuracy, d.answers, d.loaded = msg.accuracy, msg.answers, true
	case tea.KeyPressMsg:
		if msg.String() == "esc" || msg.String() == "q" {
			return d, router.Pop()
		}
	}
	return d, nil
}

func (d *SkillDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *SkillDetailScreen) View(width, height int) string {
	rec := d.record
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", rec.Status.Icon(), DisplayName(d.family))))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %s", rec.Status.Label())))
	b.WriteString("\n\n")

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)
	field := func(name, value string) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %-16s", name)) + valStyle.Render(value) + "\n")
	}

	field("Module:", d.domain.DisplayName())
	field("Questions:", fmt.Sprintf("%d in the bank", d.bankSize))
	field("First tries:", fmt.Sprintf("%d correct of %d (%.0f%%)", rec.CorrectAttempts, rec.TotalAttempts, rec.Accuracy()*100))
	field("Streak:", fmt.Sprintf("%d of %d to master", min(rec.StreakCorrect, mastery.MasteryStreak), mastery.MasteryStreak))
	field("Skill level:", fmt.Sprintf("%d", rec.Difficulty))
	field("To review:", fmt.Sprintf("%d questions", len(rec.ReviewQueue)))
	if rec.LastSeen != nil {
		field("Last practised:", rec.LastSeen.Format("Jan 02, 2006"))
	}
	if d.loaded {
		field("All answers:", fmt.Sprintf("%d, %.0f%% correct", d.answers, d.accuracy*100))
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
