// Package player is the course player screen. It turns key presses, mouse
// drags and timer ticks into flow.Controller calls and renders the current
// card.
package player

import (
	"fmt"
	"strconv"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/coursewalk/internal/course"
	"github.com/abhisek/coursewalk/internal/flow"
	"github.com/abhisek/coursewalk/internal/router"
	"github.com/abhisek/coursewalk/internal/screen"
	"github.com/abhisek/coursewalk/internal/screens/outline"
	"github.com/abhisek/coursewalk/internal/timer"
	"github.com/abhisek/coursewalk/internal/ui/components"
	"github.com/abhisek/coursewalk/internal/ui/layout"
)

const playbackTickInterval = time.Second

// timerFiredMsg is delivered when a controller timer becomes due.
type timerFiredMsg struct {
	id uint64
}

type playbackTickMsg time.Time

// Playback reports narration position for display. narration.TimedPlayer
// implements it.
type Playback interface {
	Position() (elapsed, total time.Duration)
}

// Options configures a PlayerScreen.
type Options struct {
	Controller *flow.Controller

	// Clock must be the scheduler the controller was built with. The screen
	// turns its pending timers into tea.Tick commands.
	Clock *timer.Manual

	Playback      Playback // optional
	DragThreshold int
}

// PlayerScreen implements screen.Screen for the course flow.
type PlayerScreen struct {
	ctl      *flow.Controller
	clock    *timer.Manual
	playback Playback
	keys     keyMap

	dragThreshold int
	dragStartX    int
	dragging      bool
	ticking       bool

	choices    components.OptionList
	choicesKey string
	metrics    flow.Metrics

	unsubscribe func()
}

var (
	_ screen.Screen            = (*PlayerScreen)(nil)
	_ screen.KeyHintProvider   = (*PlayerScreen)(nil)
	_ screen.StatusProvider    = (*PlayerScreen)(nil)
	_ screen.MouseModeProvider = (*PlayerScreen)(nil)
)

// New creates a PlayerScreen over an existing controller.
func New(opts Options) *PlayerScreen {
	s := &PlayerScreen{
		ctl:           opts.Controller,
		clock:         opts.Clock,
		playback:      opts.Playback,
		keys:          defaultKeyMap(),
		dragThreshold: opts.DragThreshold,
	}
	if s.dragThreshold <= 0 {
		s.dragThreshold = flow.DefaultSwipeThreshold
	}
	s.unsubscribe = s.ctl.Subscribe(s.refresh)
	s.refresh()
	return s
}

// Close detaches the screen from the controller.
func (s *PlayerScreen) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *PlayerScreen) Init() tea.Cmd {
	return s.followUp()
}

func (s *PlayerScreen) Title() string {
	return s.ctl.Current().Title
}

func (s *PlayerScreen) Status() string {
	m := s.metrics
	return fmt.Sprintf("%d/%d  ·  %d%%", m.Step, m.TotalSteps, m.Percent)
}

func (s *PlayerScreen) WantsMouse() bool {
	return true
}

func (s *PlayerScreen) KeyHints() []layout.KeyHint {
	k := s.keys
	card := s.ctl.Current()

	k.Up.SetEnabled(s.choicesKey != "")
	k.Submit.SetEnabled(s.choicesKey != "" && s.choices.Correct < 0)
	k.Audio.SetEnabled(card.IsTraining() && s.ctl.Mode() == flow.ModeExpanded)
	k.Module.SetEnabled(card.Kind == course.KindCover && s.ctl.GridVisible())
	if s.ctl.Mode() == flow.ModeHelp {
		k.Help.SetHelp("?", "Close help")
	}
	return layout.HintsFromBindings(k.Prev, k.Next, k.Up, k.Submit, k.Audio, k.Module, k.Help, k.Outline)
}

func (s *PlayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerFiredMsg:
		s.clock.Fire(msg.id)

	case playbackTickMsg:
		s.ticking = false

	case tea.KeyPressMsg:
		if key.Matches(msg, s.keys.Outline) {
			o := outline.New(s.ctl, s)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: o} }
		}
		s.handleKey(msg)

	case tea.MouseClickMsg:
		s.dragStartX = msg.X
		s.dragging = true

	case tea.MouseReleaseMsg:
		if s.dragging {
			s.dragging = false
			s.ctl.Apply(flow.Swipe(s.dragStartX, msg.X, s.dragThreshold))
		}

	default:
		return s, nil
	}

	return s, s.followUp()
}

func (s *PlayerScreen) handleKey(msg tea.KeyPressMsg) {
	switch {
	case key.Matches(msg, s.keys.Next):
		s.ctl.Next()
	case key.Matches(msg, s.keys.Prev):
		s.ctl.Prev()
	case key.Matches(msg, s.keys.Help):
		s.ctl.ToggleHelp()
	case key.Matches(msg, s.keys.Audio):
		s.ctl.ToggleNarration()
	case key.Matches(msg, s.keys.Up, s.keys.Down):
		s.choices = s.choices.Update(msg)
	case key.Matches(msg, s.keys.Submit):
		s.submit()
	case key.Matches(msg, s.keys.Module):
		if s.ctl.Current().Kind != course.KindCover || !s.ctl.GridVisible() {
			return
		}
		if n, err := strconv.Atoi(msg.String()); err == nil {
			s.ctl.SelectModule(n)
		}
	}
}

func (s *PlayerScreen) submit() {
	if s.choicesKey == "" {
		return
	}
	switch s.ctl.Current().Kind {
	case course.KindTraining:
		s.ctl.SubmitChallenge(s.choices.Cursor)
	case course.KindFinalTest:
		s.ctl.AnswerQuestion(s.choices.Cursor)
	}
}

// followUp schedules a tick for every timer the controller started and
// keeps the narration clock repainting while audio plays.
func (s *PlayerScreen) followUp() tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range s.clock.Take() {
		id := p.ID
		cmds = append(cmds, tea.Tick(p.Delay, func(time.Time) tea.Msg {
			return timerFiredMsg{id: id}
		}))
	}
	if !s.ticking && s.ctl.Audio().Status == flow.AudioPlaying {
		s.ticking = true
		cmds = append(cmds, tea.Tick(playbackTickInterval, func(t time.Time) tea.Msg {
			return playbackTickMsg(t)
		}))
	}
	return tea.Batch(cmds...)
}

// refresh runs after every controller state change.
func (s *PlayerScreen) refresh() {
	s.metrics = s.ctl.Metrics()
	s.syncChoices()
}

// syncChoices keeps the option list in step with the challenge or
// question on screen, resetting the cursor when the question changes.
func (s *PlayerScreen) syncChoices() {
	card := s.ctl.Current()

	switch {
	case card.IsTraining() && s.ctl.Mode() == flow.ModeChallenge:
		ch, ok := s.ctl.Challenge(card.Title)
		if !ok {
			break
		}
		k := "challenge:" + card.Title
		if s.choicesKey != k {
			topic, _ := s.ctl.Sequence().TopicAt(s.ctl.Position().CurrentIndex)
			s.choices = components.NewOptionList(topic.Prompt, ch.Options)
			s.choicesKey = k
		}
		if res, done := s.ctl.Result(card.Title); done {
			s.choices.Chosen = res.SelectedIndex
			s.choices.Cursor = res.SelectedIndex
			s.choices.Correct = ch.CorrectIndex
		}
		return

	case card.Kind == course.KindFinalTest:
		a := s.ctl.Assessment()
		q, ok := a.Question()
		if !ok {
			break
		}
		k := "question:" + q.ID
		if s.choicesKey != k {
			s.choices = components.NewOptionList(q.Prompt, q.Options)
			s.choicesKey = k
			if sel, answered := a.Selected(q.ID); answered {
				s.choices.Cursor = sel
			}
		}
		if sel, answered := a.Selected(q.ID); answered {
			s.choices.Chosen = sel
		}
		return
	}

	s.choices = components.OptionList{}
	s.choicesKey = ""
}
