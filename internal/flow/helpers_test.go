package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/coursewalk/internal/course"
	"github.com/abhisek/coursewalk/internal/progress"
	"github.com/abhisek/coursewalk/internal/timer"
)

// Card indexes of the fixture course.
const (
	idxIntro = iota
	idxCover
	idxTopic1
	idxTopic2
	idxTopic3
	idxFinal
	idxComplete
)

const step = 500 * time.Millisecond

func fixtureCourse() *course.Course {
	questions := make([]course.Question, 10)
	for i := range questions {
		questions[i] = course.Question{
			ID:           fmt.Sprintf("q%d", i+1),
			Prompt:       fmt.Sprintf("Question %d", i+1),
			Options:      []string{"right", "wrong", "also wrong"},
			CorrectIndex: 0,
		}
	}
	return &course.Course{
		ID:    "fixture",
		Title: "Fixture",
		Intro: course.Screen{Title: "Welcome"},
		Cover: course.Screen{Title: "Modules"},
		Topics: []course.Topic{
			{Title: "Topic 1", Statements: []string{"t1 right", "t1 wrong"}, Narration: &course.Narration{Source: "t1.mp3", Duration: 30 * time.Second}},
			{Title: "Topic 2", Statements: []string{"t2 right", "t2 wrong", "t2 other"}, Narration: &course.Narration{Source: "t2.mp3", Duration: 20 * time.Second}},
			{Title: "Topic 3", Statements: []string{"t3 right"}},
		},
		FinalTest: course.FinalTest{Title: "Final Test", Questions: questions},
		Complete:  course.Screen{Title: "Done"},
	}
}

type fakePlayer struct {
	source  string
	plays   int
	pauses  int
	seeks   int
	playErr error
	ended   func()
	paused  func()
}

func (p *fakePlayer) SetSource(source string) { p.source = source }

func (p *fakePlayer) Play(context.Context) error {
	p.plays++
	return p.playErr
}

func (p *fakePlayer) Pause() { p.pauses++ }
func (p *fakePlayer) SeekToStart() { p.seeks++ }
func (p *fakePlayer) OnEnded(fn func()) { p.ended = fn }
func (p *fakePlayer) OnPauseDetected(fn func()) { p.paused = fn }

type saveLog struct {
	saves []progress.Record
	err   error
}

func (s *saveLog) Save(_ context.Context, rec progress.Record) error {
	s.saves = append(s.saves, rec)
	return s.err
}

func (s *saveLog) last() progress.Record {
	return s.saves[len(s.saves)-1]
}

type sentEvent struct {
	kind      string
	cardIndex int
	title     string
	detail    map[string]any
}

type eventLog struct {
	events []sentEvent
}

func (e *eventLog) Record(_ context.Context, kind string, cardIndex int, title string, detail map[string]any) {
	e.events = append(e.events, sentEvent{kind: kind, cardIndex: cardIndex, title: title, detail: detail})
}

func (e *eventLog) kinds() []string {
	out := make([]string, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.kind
	}
	return out
}

type harness struct {
	*Controller
	clock  *timer.Manual
	player *fakePlayer
	saves  *saveLog
	events *eventLog
}

func newHarness(mutate func(*Options)) *harness {
	c := fixtureCourse()
	h := &harness{
		clock:  timer.NewManual(),
		player: &fakePlayer{},
		saves:  &saveLog{},
		events: &eventLog{},
	}
	opts := Options{
		Sequence:  course.BuildSequence(c),
		Narration: course.BuildNarrationIndex(c),
		Scheduler: h.clock,
		Player:    h.player,
		Progress:  h.saves,
		Events:    h.events,
	}
	if mutate != nil {
		mutate(&opts)
	}
	h.Controller = New(opts)
	return h
}

// press performs Next and lets the transition window elapse.
func (h *harness) press() {
	h.Next()
	h.clock.Advance(step)
}

func (h *harness) back() {
	h.Prev()
	h.clock.Advance(step)
}

func restoreAt(index int, viewed ...int) func(*Options) {
	return func(o *Options) {
		o.Restore = progress.Record{CurrentIndex: index, ViewedCardIndexes: viewed}
	}
}
