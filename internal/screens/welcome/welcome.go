package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/store"
	"github.com/abhisek/ziggy/internal/ui/components"
	"github.com/abhisek/ziggy/internal/ui/layout"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond

	maxNameLen = 20
)

const mascotArt = `    ╭───────╮
    │ ◕   ◕ │
    │   ◡   │
    ╰───┬───╯
   ╭────┴────╮
   │  Z I G  │
   ╰─────────╯`

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// savedMsg reports the result of storing the new profile.
type savedMsg struct {
	err error
}

// WelcomeScreen greets a first-time learner, asks for a nickname and
// creates the profile before moving on to the home screen.
type WelcomeScreen struct {
	env          *screen.Env
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	naming       bool
	saving       bool
	input        components.NameInput
	err          string
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(env *screen.Env, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		env:         env,
		homeFactory: homeFactory,
		input:       components.NewNameInput("Your nickname", "", maxNameLen),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.naming {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case savedMsg:
		w.saving = false
		if msg.err != nil {
			w.err = "Could not save your name. Please try again."
			w.env.Log.WithError(msg.err).Error("save profile")
			return w, nil
		}
		return w, w.transition()

	case tea.KeyPressMsg:
		if !w.naming {
			// Any key skips the rest of the animation.
			w.elapsed = totalDur
			w.naming = true
			return w, w.input.Init()
		}
		if w.saving {
			return w, nil
		}
		if msg.String() == "enter" {
			return w, w.save()
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		w.err = ""
		return w, cmd
	}

	if w.naming {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) save() tea.Cmd {
	name := w.input.Value()
	if name == "" {
		w.err = "Please type a nickname first."
		return nil
	}
	w.saving = true
	records := w.env.Records
	defaults := w.env.DefaultSettings
	return func() tea.Msg {
		ctx := context.Background()
		if err := records.SetProfile(ctx, store.Profile{Nickname: name}); err != nil {
			return savedMsg{err: err}
		}
		settings, err := records.GetSettings(ctx)
		if err != nil {
			settings = defaults
		}
		settings.ChildName = name
		return savedMsg{err: records.SetSettings(ctx, settings)}
	}
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.homeFactory())
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	mascotStyle := lipgloss.NewStyle().Foreground(theme.Primary)

	// Phase 1+: mascot
	rendered := mascotStyle.Render(mascotArt)

	// Phase 2+: sparkles around mascot
	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		for i := 0; i < len(lines); i += 3 {
			if i%2 == 0 {
				lines[i] = s1 + "  " + lines[i] + "  " + s2
			} else {
				lines[i] = s2 + "  " + lines[i] + "  " + s1
			}
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	// Phase 3+: banner + tagline
	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Missions in maths, reading and writing!")
		sections = append(sections, tagline)
	}

	switch {
	case w.naming:
		sections = append(sections, "", theme.Body.Render("What should we call you?"), w.input.View())
		if w.err != "" {
			sections = append(sections, theme.Incorrect.Render(w.err))
		}
	case w.elapsed >= phase2End:
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", hint)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if w.naming {
		return []layout.KeyHint{{Key: "enter", Description: "Let's go"}}
	}
	return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
}
