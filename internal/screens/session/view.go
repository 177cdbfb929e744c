package session

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ziggy/internal/gems"
	"github.com/abhisek/ziggy/internal/mastery"
	"github.com/abhisek/ziggy/internal/problemgen"
	sess "github.com/abhisek/ziggy/internal/session"
	"github.com/abhisek/ziggy/internal/ui/components"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.fatal {
		return renderError(width, s.errMsg)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.view.Question == nil {
		return renderLoading(width)
	}
	return s.renderQuestionView(width)
}

// renderQuestionView renders the active question display.
func (s *SessionScreen) renderQuestionView(width int) string {
	v := s.view
	q := v.Question
	cw := components.ContentWidth(width)

	var b strings.Builder

	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	bar := components.ProgressBar{Done: v.Index, Total: v.Total, Width: cw}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(cw - 4).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(prompt, cw)))
	b.WriteString("\n\n")

	choices := components.ChoiceList{Options: q.Choices, Marks: s.marks()}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, choices.View(cw)))
	b.WriteString("\n")

	if v.Hint != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Width(cw).Render("💡 "+v.Hint)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderFeedback(cw)))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Incorrect.Render(s.errMsg)))
	}

	return b.String()
}

// renderInfoLine renders the module, score, gems and the remaining time.
func (s *SessionScreen) renderInfoLine(width int) string {
	v := s.view

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s %s · Level %d", v.Domain.Icon(), v.Domain.DisplayName(), v.Level))

	timerStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if v.TimerStatus == sess.TimerWarning {
		timerStyle = lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	}

	infoRight := fmt.Sprintf("Q %d/%d  %s  %s  %s",
		v.Index+1, v.Total,
		lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d", v.CorrectCount)),
		theme.Gem.Render(fmt.Sprintf("💎 %d", v.GemCount)),
		timerStyle.Render("⏱ "+sess.FormatRemaining(v.Remaining)),
	)

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	} else {
		infoLine += "  " + infoRight
	}

	var b strings.Builder
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	if v.TimerStatus == sess.TimerWarning {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Warning).
			Render("Almost time for a break! Finish this question."))
	}
	return b.String()
}

// marks highlights the cursor while answering and the outcome afterwards.
func (s *SessionScreen) marks() map[int]components.ChoiceMark {
	v := s.view
	q := v.Question
	marks := make(map[int]components.ChoiceMark, 2)

	if v.Phase.AcceptsAnswers() {
		marks[s.cursor] = components.MarkCursor
	}
	if v.LastChoice != "" && !v.LastCorrect && v.Phase != sess.PhaseAwaitingFirstAnswer {
		if i := slices.Index(q.Choices, v.LastChoice); i >= 0 {
			marks[i] = components.MarkWrong
		}
	}
	if v.Phase == sess.PhaseCorrect || v.Phase == sess.PhaseIncorrectFinal {
		if i := q.CorrectIndex(); i >= 0 {
			marks[i] = components.MarkRight
		}
	}
	return marks
}

// renderFeedback renders the result of the last answer.
func (s *SessionScreen) renderFeedback(cw int) string {
	v := s.view
	q := v.Question
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var lines []string
	switch v.Phase {
	case sess.PhaseAwaitingRetry:
		lines = append(lines, center.Inherit(theme.Incorrect).Render("Not quite. Try once more!"))

	case sess.PhaseCorrect:
		lines = append(lines, center.Inherit(theme.Correct).Render(
			fmt.Sprintf("Correct! +%d 💎", gems.GemCorrect.Amount())))
		if s.notice != nil && s.notice.To == string(mastery.StatusMastered) {
			lines = append(lines, center.Inherit(theme.Gem).Render(
				fmt.Sprintf("★ Skill mastered: %s", s.notice.Subskill)))
		}
		lines = append(lines, explanation(q, cw))
		if v.AutoAdvanceIn > 0 {
			lines = append(lines, center.Inherit(theme.Hint).Render(
				fmt.Sprintf("Next question in %ds (Enter to skip)", v.AutoAdvanceIn)))
		} else {
			lines = append(lines, center.Inherit(theme.Hint).Render("Press Enter for the next question"))
		}

	case sess.PhaseIncorrectFinal:
		lines = append(lines, center.Inherit(theme.Incorrect).Render(
			fmt.Sprintf("Good effort! +%d 💎", gems.GemEffort.Amount())))
		lines = append(lines, explanation(q, cw))
		lines = append(lines, center.Inherit(theme.Selected).Render(
			fmt.Sprintf("[Enter] Next (Answer: %s)", v.RevealedAnswer)))

	default:
		lines = append(lines, center.Inherit(theme.Hint).Render("Press 1-4 to answer"))
	}

	return strings.Join(slices.DeleteFunc(lines, func(l string) bool { return l == "" }), "\n")
}

func explanation(q *problemgen.Question, cw int) string {
	if q.Explanation == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(q.Explanation)
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Leave this mission?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Your progress is saved. Resume it from the home screen."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, save and leave"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your mission...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}
