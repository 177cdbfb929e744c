package cmd

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/ziggy/internal/session"
	"github.com/abhisek/ziggy/internal/store"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change learner settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		s, err := rt.store.Records().GetSettings(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "name          %s\n", s.ChildName)
		fmt.Fprintf(out, "sound         %t\n", s.SoundOn)
		fmt.Fprintf(out, "mission-size  %d\n", s.DefaultMissionSize)
		fmt.Fprintf(out, "auto-advance  %d\n", s.AutoAdvanceSpeed)
		fmt.Fprintf(out, "theme         %s\n", s.Theme)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting (name, sound, mission-size, auto-advance, theme)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		records := rt.store.Records()
		s, err := records.GetSettings(ctx)
		if err != nil {
			return err
		}
		if err := applySetting(&s, args[0], args[1]); err != nil {
			return err
		}
		if err := records.SetSettings(ctx, s); err != nil {
			return err
		}
		if args[0] == "name" {
			if err := records.SetProfile(ctx, store.Profile{Nickname: s.ChildName}); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

// applySetting parses value for key into s.
func applySetting(s *store.Settings, key, value string) error {
	switch key {
	case "name":
		if value == "" || len(value) > 20 {
			return fmt.Errorf("name must be 1-20 characters")
		}
		s.ChildName = value
	case "sound":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("sound: %w", err)
		}
		s.SoundOn = on
	case "mission-size":
		n, err := strconv.Atoi(value)
		if err != nil || !slices.Contains(session.MissionSizes, n) {
			return fmt.Errorf("mission-size must be one of %v", session.MissionSizes)
		}
		s.DefaultMissionSize = n
	case "auto-advance":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 30 {
			return fmt.Errorf("auto-advance must be 1-30 seconds")
		}
		s.AutoAdvanceSpeed = n
	case "theme":
		p, ok := theme.Palettes[value]
		if !ok {
			return fmt.Errorf("theme must be one of %v", theme.Names())
		}
		s.Theme = value
		s.Colors = store.Colors{Primary: p.Primary, Secondary: p.Secondary, Accent: p.Accent}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
