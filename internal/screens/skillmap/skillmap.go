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
	"github.com/abhisek/ziggy/internal/store"
	"github.com/abhisek/ziggy/internal/ui/layout"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

type rowKind int

const (
	rowDomainHeader rowKind = iota
	rowSkill
)

type row struct {
	kind   rowKind
	domain problemgen.Domain
	family problemgen.Family
}

// SkillMapScreen lists every subskill by domain with its mastery status.
type SkillMapScreen struct {
	env          *screen.Env
	rows         []row
	cursor       int
	scrollOffset int
	mastery      *mastery.Service
	levels       store.Levels
}

var _ screen.Screen = (*SkillMapScreen)(nil)
var _ screen.KeyHintProvider = (*SkillMapScreen)(nil)

// New creates a new SkillMapScreen from the stored mastery records.
func New(env *screen.Env) *SkillMapScreen {
	ctx := context.Background()
	data, err := env.Records.GetMastery(ctx)
	if err != nil {
		env.Log.WithError(err).Warn("load mastery")
	}
	progress, err := env.Records.GetProgress(ctx)
	if err != nil {
		env.Log.WithError(err).Warn("load progress")
	}

	var rows []row
	for _, d := range problemgen.AllDomains() {
		rows = append(rows, row{kind: rowDomainHeader, domain: d})
		for _, f := range problemgen.Families(d) {
			rows = append(rows, row{kind: rowSkill, domain: d, family: f})
		}
	}

	s := &SkillMapScreen{
		env:     env,
		rows:    rows,
		mastery: mastery.NewService(&data),
		levels:  progress.Levels,
	}

	// Set cursor to first skill row
	for i, r := range s.rows {
		if r.kind == rowSkill {
			s.cursor = i
			break
		}
	}

	return s
}

func (s *SkillMapScreen) Init() tea.Cmd {
	return nil
}

func (s *SkillMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextDomain()
		case "shift+tab":
			s.prevDomain()
		case "enter":
			return s, s.selectSkill()
		case "esc", "q":
			return s, router.Pop()
		}
	}
	return s, nil
}

func (s *SkillMapScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}

	s.adjustScroll(height)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < height; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowDomainHeader:
			lines = append(lines, s.renderDomainHeader(r.domain, width))
		case rowSkill:
			lines = append(lines, s.renderSkillRow(r, i == s.cursor, width))
		}
	}

	return strings.Join(lines, "\n")
}

func (s *SkillMapScreen) Title() string {
	return "Skill Map"
}

// KeyHints returns the key binding hints for the footer.
func (s *SkillMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Module"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// moveCursor moves the cursor by delta, skipping domain headers.
func (s *SkillMapScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowSkill {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextDomain jumps the cursor to the first skill in the next domain.
func (s *SkillMapScreen) nextDomain() {
	current := s.rows[s.cursor].domain
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowSkill && s.rows[i].domain != current {
			s.cursor = i
			return
		}
	}
}

// prevDomain jumps the cursor to the first skill in the previous domain.
func (s *SkillMapScreen) prevDomain() {
	current := s.rows[s.cursor].domain
	target := -1
	for i := s.cursor - 1; i >= 0; i-- {
		r := s.rows[i]
		if r.kind != rowSkill {
			continue
		}
		if target >= 0 && r.domain != s.rows[target].domain {
			break
		}
		if r.domain != current {
			target = i
		}
	}
	if target >= 0 {
		s.cursor = target
	}
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *SkillMapScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	// Also show the domain header above the cursor if possible
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowDomainHeader {
		headerRow--
	}

	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

// selectSkill opens the detail view of the skill under the cursor.
func (s *SkillMapScreen) selectSkill() tea.Cmd {
	r := s.rows[s.cursor]
	if r.kind != rowSkill {
		return nil
	}
	return router.Push(newSkillDetail(s.env, r.domain, r.family, s.mastery.Get(r.family.Subskill)))
}

// renderDomainHeader renders a domain section header.
func (s *SkillMapScreen) renderDomainHeader(d problemgen.Domain, width int) string {
	level := max(s.levels.Get(d), problemgen.MinLevel)
	name := fmt.Sprintf("%s %s · LEVEL %d", d.Icon(), strings.ToUpper(d.DisplayName()), level)
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(name)
}

// renderSkillRow renders a single skill row.
func (s *SkillMapScreen) renderSkillRow(r row, selected bool, width int) string {
	rec := s.mastery.Get(r.family.Subskill)
	label := rec.Status.Label()
	attempts := fmt.Sprintf("%3d tries", rec.TotalAttempts)

	nameWidth := max(width-4-3-10-12-4, 10)
	name := DisplayName(r.family)
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case selected:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		dimStyle = lipgloss.NewStyle().Foreground(theme.Primary)
		labelStyle = dimStyle
	case rec.Status == mastery.StatusMastered:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
		labelStyle = nameStyle
	case rec.Status == mastery.StatusLearning:
		labelStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
	default:
		nameStyle = dimStyle
		labelStyle = dimStyle
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		rec.Status.Icon(),
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		dimStyle.Render(attempts),
		labelStyle.Render(fmt.Sprintf("%11s", label)),
	)
}

// DisplayName turns a family name such as "parts-of-speech" into
// "Parts Of Speech".
func DisplayName(f problemgen.Family) string {
	words := strings.Split(f.Name, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
