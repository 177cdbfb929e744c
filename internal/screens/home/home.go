// Package home renders the main menu with the learner's dashboard.
package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ziggy/internal/mastery"
	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/screens/gemvault"
	"github.com/abhisek/ziggy/internal/screens/history"
	"github.com/abhisek/ziggy/internal/screens/modules"
	sessionscreen "github.com/abhisek/ziggy/internal/screens/session"
	"github.com/abhisek/ziggy/internal/screens/settings"
	"github.com/abhisek/ziggy/internal/screens/skillmap"
	"github.com/abhisek/ziggy/internal/store"
	"github.com/abhisek/ziggy/internal/ui/components"
)

// celebrateAccuracy is the share of correct answers in the last mission
// that makes the mascot celebrate.
const celebrateAccuracy = 0.8

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	env           *screen.Env
	menu          components.Menu
	nickname      string
	gemCount      int
	masteredCount int
	levels        store.Levels
	paused        *store.SessionRecord
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.load()
	return h
}

func (h *HomeScreen) load() {
	ctx := context.Background()
	log := h.env.Log

	h.nickname = h.env.DefaultSettings.ChildName
	if p, err := h.env.Records.GetProfile(ctx); err != nil {
		log.WithError(err).Warn("load profile")
	} else if p != nil && p.Nickname != "" {
		h.nickname = p.Nickname
	}

	progress, err := h.env.Records.GetProgress(ctx)
	if err != nil {
		log.WithError(err).Warn("load progress")
	}
	h.gemCount = progress.TotalGems
	h.levels = progress.Levels

	data, err := h.env.Records.GetMastery(ctx)
	if err != nil {
		log.WithError(err).Warn("load mastery")
	}
	h.masteredCount = mastery.NewService(&data).MasteredCount()

	h.paused, err = h.env.Records.GetSession(ctx)
	if err != nil {
		log.WithError(err).Warn("load session")
		h.paused = nil
	}

	h.mascotVariant = MascotIdle
	if h.paused != nil {
		h.mascotVariant = MascotAlert
	} else if h.lastMissionWentWell(ctx) {
		h.mascotVariant = MascotCelebrating
	}

	selected := h.menu.Selected
	h.menu = components.NewMenu(h.menuItems())
	h.menu.Select(selected)
}

// lastMissionWentWell reports whether a mission finished in the last day
// with a high share of correct answers.
func (h *HomeScreen) lastMissionWentWell(ctx context.Context) bool {
	recent, err := h.env.Events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: 1})
	if err != nil {
		h.env.Log.WithError(err).Warn("load last mission")
		return false
	}
	if len(recent) == 0 || recent[0].QuestionsServed == 0 {
		return false
	}
	last := recent[0]
	if h.now().Sub(last.Timestamp) > 24*time.Hour {
		return false
	}
	return float64(last.CorrectAnswers)/float64(last.QuestionsServed) >= celebrateAccuracy
}

func (h *HomeScreen) now() time.Time {
	if h.env.Clock != nil {
		return h.env.Clock.Now()
	}
	return time.Now()
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	env := h.env
	return []components.MenuItem{
		{Label: "START MISSION", Action: func() tea.Cmd {
			return router.Push(modules.New(env))
		}},
		{Label: "RESUME", Disabled: h.paused == nil, Action: func() tea.Cmd {
			return router.Push(sessionscreen.NewResume(env))
		}},
		{Label: "SKILL MAP", Action: func() tea.Cmd {
			return router.Push(skillmap.New(env))
		}},
		{Label: "GEM VAULT", Action: func() tea.Cmd {
			return router.Push(gemvault.New(env.Events))
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return router.Push(history.New(env.Events))
		}},
		{Label: "SETTINGS", Action: func() tea.Cmd {
			return router.Push(settings.New(env))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Refresh reloads the dashboard after a mission or settings change.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.load()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 100

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderGreeting(h.nickname, cw))
	sections = append(sections, renderStatsBar(h.masteredCount, h.gemCount, h.paused, cw, compact))
	sections = append(sections, renderLevels(h.levels, cw))
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menu.Items, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Items, h.menu.Selected, cw))
	}

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
