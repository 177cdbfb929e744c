package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/ziggy/internal/bank"
	"github.com/abhisek/ziggy/internal/problemgen"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Browse the question bank",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions (optionally filtered by module or level)",
	RunE: func(cmd *cobra.Command, args []string) error {
		moduleVal, _ := cmd.Flags().GetString("module")
		level, _ := cmd.Flags().GetInt("level")

		if level != 0 && (level < problemgen.MinLevel || level > problemgen.MaxLevel) {
			return fmt.Errorf("level must be %d-%d, got %d", problemgen.MinLevel, problemgen.MaxLevel, level)
		}
		if level != 0 && moduleVal == "" {
			return fmt.Errorf("--level needs --module")
		}

		b := bank.Default()
		questions := b.All()
		if moduleVal != "" {
			d, err := problemgen.ParseDomain(moduleVal)
			if err != nil {
				return err
			}
			questions = b.ByDomain(d)
			if level != 0 {
				questions = b.ByDomainDifficulty(d, level)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-26s  %-20s  %5s  %s\n", "ID", "Subskill", "Level", "Prompt")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, q := range questions {
			fmt.Fprintf(out, "%-26s  %-20s  %5d  %s\n", q.ID, q.Subskill, q.Difficulty, promptSummary(q.Prompt, 50))
		}

		fmt.Fprintf(out, "\n%d questions\n", len(questions))
		return nil
	},
}

var bankShowCmd = &cobra.Command{
	Use:   "show <question-id>",
	Short: "Show one question with its answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, ok := bank.Default().ByID(args[0])
		if !ok {
			return fmt.Errorf("no question with id %q", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:          %s\n", q.ID)
		fmt.Fprintf(out, "Module:      %s\n", q.Domain.DisplayName())
		fmt.Fprintf(out, "Subskill:    %s (%s)\n", q.Subskill, q.Family)
		fmt.Fprintf(out, "Level:       %d\n", q.Difficulty)
		fmt.Fprintf(out, "\n%s\n\n", q.Prompt)
		for i, c := range q.Choices {
			mark := " "
			if c == q.CorrectAnswer {
				mark = "✓"
			}
			fmt.Fprintf(out, "  %s %d) %s\n", mark, i+1, c)
		}
		fmt.Fprintf(out, "\nHint:        %s\n", q.Hint)
		fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		return nil
	},
}

var bankStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count questions per module and level",
	Run: func(cmd *cobra.Command, args []string) {
		b := bank.Default()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%-10s", "Module")
		for l := problemgen.MinLevel; l <= problemgen.MaxLevel; l++ {
			fmt.Fprintf(out, "  %5s", fmt.Sprintf("L%d", l))
		}
		fmt.Fprintf(out, "  %6s  %s\n", "Total", "Subskills")
		fmt.Fprintln(out, strings.Repeat("─", 70))

		for _, d := range problemgen.AllDomains() {
			fmt.Fprintf(out, "%-10s", d.DisplayName())
			for l := problemgen.MinLevel; l <= problemgen.MaxLevel; l++ {
				fmt.Fprintf(out, "  %5d", len(b.ByDomainDifficulty(d, l)))
			}
			fmt.Fprintf(out, "  %6d  %d\n", len(b.ByDomain(d)), len(b.Subskills(d)))
		}

		families := lo.SumBy(problemgen.AllDomains(), func(d problemgen.Domain) int {
			return len(problemgen.Families(d))
		})
		fmt.Fprintf(out, "\n%d questions from %d families, bank %s\n", b.Len(), families, b.Version())
	},
}

func init() {
	bankListCmd.Flags().String("module", "", "Module: numeracy, reading, conventions or writing")
	bankListCmd.Flags().Int("level", 0, "Difficulty level 1-5 (requires --module)")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankShowCmd)
	bankCmd.AddCommand(bankStatsCmd)
}

// promptSummary returns the question line of a prompt, shortened to n runes.
func promptSummary(prompt string, n int) string {
	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	line := strings.TrimSpace(lines[len(lines)-1])
	if r := []rune(line); len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return line
}
