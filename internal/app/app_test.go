package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/coursewalk/internal/screen"
)

type stubScreen struct {
	title   string
	mouse   bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}
func (s *stubScreen) View(width, height int) string { return s.title }
func (s *stubScreen) Title() string                 { return s.title }
func (s *stubScreen) WantsMouse() bool              { return s.mouse }

func TestSkipSplashOpensPlayer(t *testing.T) {
	player := &stubScreen{title: "Player"}
	m := newAppModel(Options{CourseTitle: "Course", Player: player, SkipSplash: true})

	if got := m.router.Active().Title(); got != "Player" {
		t.Errorf("active screen = %q, want Player", got)
	}
}

func TestSplashShownFirst(t *testing.T) {
	player := &stubScreen{title: "Player"}
	m := newAppModel(Options{CourseTitle: "Course", Player: player})

	if m.router.Active() == screen.Screen(player) {
		t.Error("expected the welcome screen before the player")
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
	}{
		{"q", tea.KeyPressMsg{Code: 'q', Text: "q"}},
		{"ctrl+c", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newAppModel(Options{Player: &stubScreen{}, SkipSplash: true})
			_, cmd := m.Update(tt.msg)
			if cmd == nil {
				t.Fatal("expected a quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("command produced %T, want tea.QuitMsg", cmd())
			}
		})
	}
}

func TestEscOnRootScreenIsNoop(t *testing.T) {
	m := newAppModel(Options{Player: &stubScreen{}, SkipSplash: true})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the only screen should do nothing")
	}
}

func TestUpdateForwardsToActiveScreen(t *testing.T) {
	player := &stubScreen{}
	m := newAppModel(Options{Player: player, SkipSplash: true})
	m.Update(tea.KeyPressMsg{Code: tea.KeyRight})

	if player.updates != 1 {
		t.Errorf("updates = %d, want 1", player.updates)
	}
}

func TestWindowSizeRecorded(t *testing.T) {
	m := newAppModel(Options{Player: &stubScreen{}, SkipSplash: true})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	am := next.(AppModel)

	if am.width != 100 || am.height != 40 {
		t.Errorf("size = %dx%d, want 100x40", am.width, am.height)
	}
}

func TestMouseModeFollowsScreen(t *testing.T) {
	tests := []struct {
		name  string
		mouse bool
		want  tea.MouseMode
	}{
		{"wants mouse", true, tea.MouseModeCellMotion},
		{"keyboard only", false, tea.MouseModeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newAppModel(Options{Player: &stubScreen{mouse: tt.mouse}, SkipSplash: true})
			m.width, m.height = 100, 40
			if got := m.View().MouseMode; got != tt.want {
				t.Errorf("MouseMode = %v, want %v", got, tt.want)
			}
		})
	}
}
