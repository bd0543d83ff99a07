package flow

import (
	"context"
	"log/slog"
	"sort"

	"github.com/abhisek/coursewalk/internal/challenge"
	"github.com/abhisek/coursewalk/internal/course"
	"github.com/abhisek/coursewalk/internal/progress"
	"github.com/abhisek/coursewalk/internal/timer"
)

// ProgressSaver persists the durable position. progress.Keeper implements it.
type ProgressSaver interface {
	Save(ctx context.Context, rec progress.Record) error
}

// EventSink receives activity-log events. store.SessionLog implements it.
type EventSink interface {
	Record(ctx context.Context, kind string, cardIndex int, title string, detail map[string]any)
}

// Options configures a Controller.
type Options struct {
	Sequence  *course.Sequence
	Narration course.NarrationIndex
	Scheduler timer.Scheduler

	Player   Player        // optional
	Progress ProgressSaver // optional
	Events   EventSink     // optional

	// Override disables every gate. It is a configuration switch for
	// review flows, never something the learner toggles.
	Override bool

	OptionCount int
	Timing      Timing

	// Restore is the sanitized record loaded at startup.
	Restore progress.Record

	// OnCardChange runs after every card transition so consumers holding
	// derived data can recompute it.
	OnCardChange func(from, to int)

	Logger  *slog.Logger
	Context context.Context
}

// Controller is the sequence navigator and owner of all learner state.
type Controller struct {
	seq       *course.Sequence
	narration course.NarrationIndex
	sched     timer.Scheduler
	player    Player
	saver     ProgressSaver
	events    EventSink
	onChange  func(from, to int)
	logger    *slog.Logger
	ctx       context.Context

	override    bool
	optionCount int
	timing      Timing

	pos     Position
	viewed  map[int]bool
	panels  map[string]*panelState
	results map[string]ChallengeResult

	audioDone       map[string]bool
	narrationFailed map[string]bool
	audio           AudioState
	playingTitle    string

	challenges  map[string]challenge.Challenge
	assessment  *Assessment
	gridVisible bool

	locked      bool
	lockedCount int

	viewedTimer     timer.Timer
	lockedTimer     timer.Timer
	transitionTimer timer.Timer

	observers  []observer
	observerID int
}

type observer struct {
	id int
	fn func()
}

// New creates a controller positioned at the restored card. The viewed set
// always contains the first card.
func New(opts Options) *Controller {
	c := &Controller{
		seq:             opts.Sequence,
		narration:       opts.Narration,
		sched:           opts.Scheduler,
		player:          opts.Player,
		saver:           opts.Progress,
		events:          opts.Events,
		onChange:        opts.OnCardChange,
		logger:          opts.Logger,
		ctx:             opts.Context,
		override:        opts.Override,
		optionCount:     opts.OptionCount,
		timing:          opts.Timing.withDefaults(),
		viewed:          map[int]bool{0: true},
		panels:          make(map[string]*panelState),
		results:         make(map[string]ChallengeResult),
		audioDone:       make(map[string]bool),
		narrationFailed: make(map[string]bool),
		challenges:      make(map[string]challenge.Challenge),
		assessment:      NewAssessment(opts.Sequence.Course().FinalTest.Questions),
		audio:           AudioState{Status: AudioIdle},
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.narration == nil {
		c.narration = course.NarrationIndex{}
	}
	if c.sched == nil {
		c.sched = timer.NewManual()
	}

	c.pos = Position{CurrentIndex: 0, PreviousIndex: -1, Direction: Forward}
	if c.seq.InRange(opts.Restore.CurrentIndex) {
		c.pos.CurrentIndex = opts.Restore.CurrentIndex
	}
	for _, i := range opts.Restore.ViewedCardIndexes {
		if c.seq.InRange(i) {
			c.viewed[i] = true
		}
	}

	if c.player != nil {
		c.player.OnEnded(c.handleNarrationEnded)
		c.player.OnPauseDetected(c.handleNarrationPaused)
	}

	c.armViewed()
	return c
}

// Close stops narration and cancels pending timers.
func (c *Controller) Close() {
	c.stopNarration()
	for _, t := range []timer.Timer{c.viewedTimer, c.lockedTimer, c.transitionTimer} {
		if t != nil {
			t.Stop()
		}
	}
	c.viewedTimer, c.lockedTimer, c.transitionTimer = nil, nil, nil
}

// Subscribe registers fn to run after every state change. The returned
// function removes the subscription.
func (c *Controller) Subscribe(fn func()) func() {
	c.observerID++
	id := c.observerID
	c.observers = append(c.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) notify() {
	for _, o := range c.observers {
		o.fn()
	}
}

// Sequence returns the card sequence.
func (c *Controller) Sequence() *course.Sequence {
	return c.seq
}

// Position returns the current flow position.
func (c *Controller) Position() Position {
	return c.pos
}

// Current returns the current card.
func (c *Controller) Current() course.Card {
	return c.seq.Card(c.pos.CurrentIndex)
}

// Override reports whether gating is bypassed.
func (c *Controller) Override() bool {
	return c.override
}

// Gate returns the gating evaluator over the live learner state.
func (c *Controller) Gate() Gate {
	return Gate{
		Sequence:        c.seq,
		Narration:       c.narration,
		Override:        c.override,
		Viewed:          c.viewed,
		AudioDone:       c.audioDone,
		NarrationFailed: c.narrationFailed,
		Results:         c.results,
	}
}

// CanAdvanceFromCurrent reports whether the current card may be left
// forward.
func (c *Controller) CanAdvanceFromCurrent() bool {
	return c.Gate().CanAdvanceFrom(c.pos.CurrentIndex)
}

// IsViewed reports whether card i is in the viewed set.
func (c *Controller) IsViewed(i int) bool {
	return c.viewed[i]
}

// Viewed returns the viewed card indexes in ascending order.
func (c *Controller) Viewed() []int {
	out := make([]int, 0, len(c.viewed))
	for i := range c.viewed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Locked reports whether the transient locked signal is raised.
func (c *Controller) Locked() bool {
	return c.locked
}

// LockedCount returns how many times the locked signal has been raised.
func (c *Controller) LockedCount() int {
	return c.lockedCount
}

// GridVisible reports whether the cover card has revealed the module grid.
func (c *Controller) GridVisible() bool {
	return c.gridVisible
}

// Result returns the challenge result recorded for title.
func (c *Controller) Result(title string) (ChallengeResult, bool) {
	r, ok := c.results[title]
	return r, ok
}

// Assessment returns the final-test sub-navigator.
func (c *Controller) Assessment() *Assessment {
	return c.assessment
}

// Challenge returns the generated challenge for a topic title.
func (c *Controller) Challenge(title string) (challenge.Challenge, bool) {
	if ch, ok := c.challenges[title]; ok {
		return ch, true
	}
	idx, ok := c.seq.TrainingIndexOfTitle(title)
	if cur := c.Current(); cur.IsTraining() && cur.Title == title {
		idx, ok = c.pos.CurrentIndex, true
	}
	if !ok {
		return challenge.Challenge{}, false
	}
	topic, ok := c.seq.TopicAt(idx)
	if !ok {
		return challenge.Challenge{}, false
	}
	ch := challenge.Generate(title, topic.Statements, c.optionCount)
	c.challenges[title] = ch
	return ch, true
}

func (c *Controller) record(kind string, cardIndex int, title string, detail map[string]any) {
	if c.events != nil {
		c.events.Record(c.ctx, kind, cardIndex, title, detail)
	}
}

func (c *Controller) persist() {
	if c.saver == nil {
		return
	}
	rec := progress.Record{CurrentIndex: c.pos.CurrentIndex, ViewedCardIndexes: c.Viewed()}
	if err := c.saver.Save(c.ctx, rec); err != nil {
		c.logger.Warn("persist progress failed", "index", rec.CurrentIndex, "error", err)
	}
}

func (c *Controller) pulseLocked() {
	c.locked = true
	c.lockedCount++
	if c.lockedTimer != nil {
		c.lockedTimer.Stop()
	}
	c.lockedTimer = c.sched.AfterFunc(c.timing.LockedPulse, func() {
		c.lockedTimer = nil
		c.locked = false
		c.notify()
	})
	c.logger.Debug("transition refused", "index", c.pos.CurrentIndex, "mode", c.Mode())
	c.notify()
}
