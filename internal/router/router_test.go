package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/coursewalk/internal/screen"
)

type fakeScreen struct {
	title string
	inits int
	seen  []tea.Msg
}

type initMsg struct{ title string }

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	title := s.title
	return func() tea.Msg { return initMsg{title: title} }
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return "view:" + s.title }
func (s *fakeScreen) Title() string        { return s.title }

func titles(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name  string
		setup func() *Router
		want  []string
	}{
		{
			name:  "empty stack",
			setup: func() *Router { return &Router{} },
			want:  []string{"player"},
		},
		{
			name:  "splash handover",
			setup: func() *Router { return New(&fakeScreen{title: "splash"}) },
			want:  []string{"player"},
		},
		{
			name: "top of a deeper stack",
			setup: func() *Router {
				r := New(&fakeScreen{title: "player"})
				r.Push(&fakeScreen{title: "outline"})
				return r
			},
			want: []string{"player", "player"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.setup()
			next := &fakeScreen{title: "player"}

			cmd := r.Replace(next)

			got := titles(r)
			if len(got) != len(tt.want) {
				t.Fatalf("stack = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("stack = %v, want %v", got, tt.want)
					break
				}
			}
			if next.inits != 1 {
				t.Errorf("Init ran %d times, want 1", next.inits)
			}
			if cmd == nil {
				t.Fatal("expected the replacement's Init command")
			}
			if msg, ok := cmd().(initMsg); !ok || msg.title != "player" {
				t.Errorf("command produced %#v", cmd())
			}
		})
	}
}

func TestReplaceScreenMsgFromSplash(t *testing.T) {
	splash := &fakeScreen{title: "splash"}
	player := &fakeScreen{title: "player"}
	r := New(splash)

	cmd := r.Update(ReplaceScreenMsg{Screen: player})

	if r.Depth() != 1 || r.Active() != screen.Screen(player) {
		t.Fatalf("stack = %v, want [player]", titles(r))
	}
	if player.inits != 1 || cmd == nil {
		t.Errorf("inits = %d, cmd nil = %v", player.inits, cmd == nil)
	}
	if len(splash.seen) != 0 || len(player.seen) != 0 {
		t.Error("navigation messages must not reach screens")
	}

	r.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if len(player.seen) != 1 {
		t.Errorf("player saw %d messages, want 1", len(player.seen))
	}
	if len(splash.seen) != 0 {
		t.Error("replaced screen still receives messages")
	}
}

func TestOverlayPushAndPop(t *testing.T) {
	player := &fakeScreen{title: "player"}
	outline := &fakeScreen{title: "outline"}
	r := New(player)

	r.Update(PushScreenMsg{Screen: outline})
	if got := r.View(80, 24); got != "view:outline" {
		t.Errorf("View = %q while overlay is open", got)
	}

	r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if len(outline.seen) != 1 || len(player.seen) != 0 {
		t.Errorf("outline saw %d, player saw %d; want 1 and 0", len(outline.seen), len(player.seen))
	}

	r.Update(PopScreenMsg{})
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active().Title() != "player" {
		t.Errorf("stack = %v, want [player]", titles(r))
	}
}

func TestEmptyRouter(t *testing.T) {
	r := &Router{}
	if r.Active() != nil {
		t.Error("Active on empty router should be nil")
	}
	if r.Update(tea.KeyPressMsg{Code: tea.KeyRight}) != nil {
		t.Error("Update on empty router should return nil")
	}
	if r.View(80, 24) != "" {
		t.Error("View on empty router should be empty")
	}
}
