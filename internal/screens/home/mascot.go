package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ziggy/internal/ui/theme"
)

// MascotVariant selects how Ziggy the astronaut greets the learner.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // strong mission in the last day
	MascotAlert                     // a mission is waiting to be resumed
)

type mascotPose struct {
	visor   string
	arms    string
	caption string
}

var mascotPoses = map[MascotVariant]mascotPose{
	MascotIdle:        {visor: "◠ ◠", arms: "  /│ │\\  ", caption: "Ready for launch"},
	MascotCelebrating: {visor: "★ ★", arms: " \\ │ │ / ", caption: "Stellar mission!"},
	MascotAlert:       {visor: "◉ ◉", arms: "  /│ │\\ !", caption: "Mission on hold!"},
}

// RenderMascot draws Ziggy in the pose for variant, tinted from the theme.
func RenderMascot(variant MascotVariant) string {
	pose, ok := mascotPoses[variant]
	if !ok {
		pose = mascotPoses[MascotIdle]
	}

	art := "  .---.  \n" +
		" ( " + pose.visor + " ) \n" +
		"  '-+-'  \n" +
		pose.arms + "\n" +
		"   ┘ └   "

	fg := theme.Primary
	switch variant {
	case MascotCelebrating:
		fg = theme.Warning
	case MascotAlert:
		fg = theme.Accent
	}

	body := lipgloss.NewStyle().Foreground(fg).Render(art)
	caption := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(pose.caption)
	return lipgloss.JoinVertical(lipgloss.Center, body, caption)
}
