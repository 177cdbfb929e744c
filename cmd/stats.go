package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/ziggy/internal/mastery"
	"github.com/abhisek/ziggy/internal/problemgen"
	"github.com/abhisek/ziggy/internal/session"
	"github.com/abhisek/ziggy/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		recent, _ := cmd.Flags().GetInt("recent")
		return printStats(cmd, rt, recent)
	},
}

func init() {
	statsCmd.Flags().Int("recent", 5, "Number of recent missions to show")
}

func printStats(cmd *cobra.Command, rt *runtime, recent int) error {
	ctx := cmd.Context()
	records := rt.store.Records()
	out := cmd.OutOrStdout()

	profile, err := records.GetProfile(ctx)
	if err != nil {
		return err
	}
	progress, err := records.GetProgress(ctx)
	if err != nil {
		return err
	}
	data, err := records.GetMastery(ctx)
	if err != nil {
		return err
	}
	svc := mastery.NewService(&data)

	name := "(no profile yet)"
	if profile != nil {
		name = profile.Nickname
	}
	fmt.Fprintf(out, "Learner:   %s\n", name)
	fmt.Fprintf(out, "Gems:      %d\n", progress.TotalGems)
	fmt.Fprintf(out, "Mastered:  %d subskills\n\n", svc.MasteredCount())

	fmt.Fprintf(out, "%-10s  %5s  %8s  %8s  %7s\n", "Module", "Level", "Mastered", "Learning", "Unseen")
	fmt.Fprintln(out, strings.Repeat("─", 46))
	for _, d := range problemgen.AllDomains() {
		recs := lo.Map(problemgen.Families(d), func(f problemgen.Family, _ int) mastery.Record {
			return svc.Get(f.Subskill)
		})
		count := func(s mastery.Status) int {
			return lo.CountBy(recs, func(r mastery.Record) bool { return r.Status == s })
		}
		fmt.Fprintf(out, "%-10s  %5d  %8d  %8d  %7d\n",
			d.DisplayName(), max(progress.Levels.Get(d), problemgen.MinLevel),
			count(mastery.StatusMastered), count(mastery.StatusLearning), count(mastery.StatusUnseen))
	}

	if paused, err := records.GetSession(ctx); err != nil {
		return err
	} else if paused != nil {
		fmt.Fprintf(out, "\nPaused mission: %s level %d, question %d of %d\n",
			paused.Module.DisplayName(), paused.Level, paused.QIndex+1, len(paused.QuestionIDs))
	}

	if recent <= 0 {
		return nil
	}
	summaries, err := rt.store.Events().QuerySessionSummaries(ctx, store.QueryOpts{Limit: recent})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nRecent missions:")
	if len(summaries) == 0 {
		fmt.Fprintln(out, "  none yet")
		return nil
	}
	for _, s := range summaries {
		d, _ := problemgen.ParseDomain(s.Module)
		fmt.Fprintf(out, "  %s  %-10s L%d  %d/%d correct  +%d gems  %s\n",
			s.Timestamp.Local().Format("2006-01-02 15:04"), d.DisplayName(), s.Level,
			s.CorrectAnswers, s.QuestionsServed, s.GemsEarned,
			session.FormatRemaining(time.Duration(s.DurationSecs*float64(time.Second))))
	}
	return nil
}
