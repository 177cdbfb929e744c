package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ziggy/internal/ui/theme"
)

// ChoiceMark is how an option is highlighted.
type ChoiceMark int

const (
	MarkNone ChoiceMark = iota
	MarkCursor
	MarkWrong
	MarkRight
)

// ChoiceList renders the four numbered options of a question.
type ChoiceList struct {
	Options []string
	Marks   map[int]ChoiceMark
}

// View renders the options, one per line, at width.
func (c ChoiceList) View(width int) string {
	var b strings.Builder
	for i, opt := range c.Options {
		line := fmt.Sprintf("%d)  %s", i+1, opt)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "   "
		switch c.Marks[i] {
		case MarkCursor:
			style = theme.Selected
			prefix = " ▸ "
		case MarkWrong:
			style = theme.Incorrect
			prefix = " ✗ "
		case MarkRight:
			style = theme.Correct
			prefix = " ✓ "
		}
		b.WriteString(style.Width(width).Render(prefix + line))
		b.WriteString("\n")
	}
	return b.String()
}
