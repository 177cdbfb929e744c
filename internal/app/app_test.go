package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ziggy/internal/router"
	"github.com/abhisek/ziggy/internal/screen"
	"github.com/abhisek/ziggy/internal/screen/screentest"
	"github.com/abhisek/ziggy/internal/screens/home"
	"github.com/abhisek/ziggy/internal/screens/settings"
	"github.com/abhisek/ziggy/internal/screens/welcome"
	"github.com/abhisek/ziggy/internal/store"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func TestNewAppModel_WelcomeWithoutProfile(t *testing.T) {
	env, _ := screentest.NewEnv(t)
	m := newAppModel(env)
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Errorf("root = %T, want welcome screen", m.router.Active())
	}
}

func TestNewAppModel_HomeWithProfile(t *testing.T) {
	env, _ := screentest.NewEnv(t)
	ctx := context.Background()
	if err := env.Records.SetProfile(ctx, store.Profile{Nickname: "Ava"}); err != nil {
		t.Fatal(err)
	}
	screentest.SeedProgress(t, env, 75)

	m := newAppModel(env)
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("root = %T, want home screen", m.router.Active())
	}
	if m.learner != "Ava" || m.gems != 75 {
		t.Errorf("header = %q/%d, want Ava/75", m.learner, m.gems)
	}
}

func TestAppModel_ViewTooSmall(t *testing.T) {
	env, _ := screentest.NewEnv(t)
	m, _ := update(t, newAppModel(env), tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected too-small message")
	}
}

func TestAppModel_ViewShowsHeader(t *testing.T) {
	env, _ := screentest.NewEnv(t)
	if err := env.Records.SetProfile(context.Background(), store.Profile{Nickname: "Ava"}); err != nil {
		t.Fatal(err)
	}
	m, _ := update(t, newAppModel(env), tea.WindowSizeMsg{Width: 120, Height: 50})
	view := m.render()
	for _, want := range []string{"Ziggy", "Ava", "Home", "💎 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppModel_NavigationRefreshesHeader(t *testing.T) {
	env, _ := screentest.NewEnv(t)
	ctx := context.Background()
	if err := env.Records.SetProfile(ctx, store.Profile{Nickname: "Ava"}); err != nil {
		t.Fatal(err)
	}
	m := newAppModel(env)

	m, _ = update(t, m, router.PushScreenMsg{Screen: settings.New(env)})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	screentest.SeedProgress(t, env, 30)
	m, _ = update(t, m, router.PopScreenMsg{})
	if m.gems != 30 {
		t.Errorf("gems = %d, want 30 after navigation", m.gems)
	}
}

func TestAppModel_SettingsChangedAppliesTheme(t *testing.T) {
	env, _ := screentest.NewEnv(t)
	t.Cleanup(func() { theme.Apply(theme.DefaultPalette, "", "", "") })

	s := store.DefaultSettings()
	s.Theme = "ocean"
	s.Colors = store.Colors{}
	update(t, newAppModel(env), screen.SettingsChangedMsg{Settings: s})
	if theme.Current() != "ocean" {
		t.Errorf("theme = %q, want ocean", theme.Current())
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	env, _ := screentest.NewEnv(t)
	_, cmd := update(t, newAppModel(env), tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}
