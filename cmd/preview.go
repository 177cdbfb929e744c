package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/ziggy/internal/bank"
	"github.com/abhisek/ziggy/internal/logging"
	"github.com/abhisek/ziggy/internal/problemgen"
	"github.com/abhisek/ziggy/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Answer today's mission for a module without saving anything",
	Long: `Plan today's mission for a module and level and answer it in the terminal.

This is a stateless tool: no database, no mastery tracking, no events.
Useful for checking question quality and what a learner will see today.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("module", "", "Module: numeracy, reading, conventions or writing (required)")
	previewCmd.Flags().Int("level", problemgen.MinLevel, "Difficulty level 1-5")
	previewCmd.Flags().Int("count", 5, "Number of questions")
	_ = previewCmd.MarkFlagRequired("module")
}

func runPreview(cmd *cobra.Command, args []string) error {
	moduleVal, _ := cmd.Flags().GetString("module")
	level, _ := cmd.Flags().GetInt("level")
	count, _ := cmd.Flags().GetInt("count")

	d, err := problemgen.ParseDomain(moduleVal)
	if err != nil {
		return err
	}
	if level < problemgen.MinLevel || level > problemgen.MaxLevel {
		return fmt.Errorf("level must be %d-%d, got %d", problemgen.MinLevel, problemgen.MaxLevel, level)
	}
	if count < 1 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	b := bank.Default()
	plan, err := session.NewPlanner(b, logging.Discard()).BuildPlan(d, level, count, time.Now())
	if err != nil {
		return fmt.Errorf("plan mission: %w", err)
	}
	questions, err := b.Resolve(plan.QuestionIDs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintf(out, "Module: %s, level %d, %s\n", d.DisplayName(), level, plan.Day)
	if plan.FellBack {
		fmt.Fprintln(out, "(not enough questions at this level, using the whole module)")
	}
	fmt.Fprintln(out)

	var correct int
	for i, q := range questions {
		fmt.Fprintf(out, "── Question %d/%d ──\n", i+1, len(questions))
		fmt.Fprintln(out, q.Prompt)
		for j, c := range q.Choices {
			fmt.Fprintf(out, "  %d) %s\n", j+1, c)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprintln(out, "(skipped)")
			fmt.Fprintln(out)
			continue
		}

		if problemgen.CheckAnswer(resolveChoice(answer, q), q) {
			correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Not quite.\033[0m Answer: %s\n", q.CorrectAnswer)
		}

		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, len(questions))
	return nil
}

// resolveChoice maps a typed option number to that option's text. Anything
// else is taken as the answer itself.
func resolveChoice(input string, q *problemgen.Question) string {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Choices) {
		return q.Choices[n-1]
	}
	return input
}
