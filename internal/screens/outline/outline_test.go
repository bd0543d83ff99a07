package outline

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/coursewalk/internal/course"
	"github.com/abhisek/coursewalk/internal/flow"
	"github.com/abhisek/coursewalk/internal/progress"
	"github.com/abhisek/coursewalk/internal/router"
	"github.com/abhisek/coursewalk/internal/screen"
	"github.com/abhisek/coursewalk/internal/timer"
)

type recordingScreen struct {
	msgs []tea.Msg
}

func (s *recordingScreen) Init() tea.Cmd { return nil }
func (s *recordingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}
func (s *recordingScreen) View(int, int) string { return "" }
func (s *recordingScreen) Title() string        { return "behind" }

type pingMsg struct{}

func testController(t *testing.T, rec progress.Record) *flow.Controller {
	t.Helper()
	c, err := course.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return flow.New(flow.Options{
		Sequence:  course.BuildSequence(c),
		Narration: course.BuildNarrationIndex(c),
		Scheduler: timer.NewManual(),
		Restore:   rec,
	})
}

func TestRows(t *testing.T) {
	// First topic viewed, learner sitting on the second.
	ctl := testController(t, progress.Record{CurrentIndex: 3, ViewedCardIndexes: []int{0, 2}})
	rows := Rows(ctl)

	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}

	tests := []struct {
		n                                   int
		title                               string
		current, viewed, unlocked, narrated bool
	}{
		{1, "Classifying Data", false, true, true, true},
		{2, "Storing Data", true, false, true, true},
		{3, "Sharing Data", false, false, false, false},
		{4, "Reporting Incidents", false, false, false, true},
	}
	for i, tt := range tests {
		r := rows[i]
		if r.Number != tt.n || r.Title != tt.title {
			t.Errorf("row %d = %d %q, want %d %q", i, r.Number, r.Title, tt.n, tt.title)
		}
		if r.Current != tt.current || r.Viewed != tt.viewed || r.Unlocked != tt.unlocked || r.Narrated != tt.narrated {
			t.Errorf("row %d (%s) = %+v", i, tt.title, r)
		}
		if r.Answered || r.Listened {
			t.Errorf("row %d should have no session state: %+v", i, r)
		}
	}
}

func TestCursorStartsOnCurrentTopic(t *testing.T) {
	ctl := testController(t, progress.Record{CurrentIndex: 3, ViewedCardIndexes: []int{0, 2}})
	s := New(ctl, nil)

	if s.cursor != 1 {
		t.Errorf("cursor = %d, want 1", s.cursor)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want 0", s.cursor)
	}
}

func TestCloseKeyPops(t *testing.T) {
	s := New(testController(t, progress.Record{}), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'o', Text: "o"})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("command produced %T, want router.PopScreenMsg", cmd())
	}
}

func TestForwardsOtherMessages(t *testing.T) {
	behind := &recordingScreen{}
	s := New(testController(t, progress.Record{}), behind)

	s.Update(pingMsg{})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	if len(behind.msgs) != 1 {
		t.Fatalf("forwarded %d messages, want 1", len(behind.msgs))
	}
	if _, ok := behind.msgs[0].(pingMsg); !ok {
		t.Errorf("forwarded %T, want pingMsg", behind.msgs[0])
	}
}

func TestViewListsTopics(t *testing.T) {
	s := New(testController(t, progress.Record{}), nil)
	v := s.View(100, 40)

	for _, want := range []string{"Classifying Data", "Reporting Incidents", "not completed"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
