// Package narration plays topic recordings for the terminal player.
//
// A terminal has no reliable audio device, so TimedPlayer simulates
// playback: it runs for the recording's length on a timer.Scheduler and
// reports completion through the same callbacks a real media element
// would use.
package narration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/coursewalk/internal/course"
	"github.com/abhisek/coursewalk/internal/timer"
)

var (
	ErrNoSource      = errors.New("no narration source set")
	ErrUnknownSource = errors.New("unknown narration source")
)

// TimedPlayer implements flow.Player over a scheduler.
type TimedPlayer struct {
	sched     timer.Scheduler
	now       func() time.Time
	durations map[string]time.Duration

	source   string
	elapsed  time.Duration // position at the last pause or seek
	started  time.Time     // wall time playback last (re)started
	playing  bool
	finish   timer.Timer
	onEnded  func()
	onPaused func()
}

// NewTimedPlayer creates a player that knows the length of every recording
// in index. Recordings without a duration play for fallback.
func NewTimedPlayer(sched timer.Scheduler, index course.NarrationIndex, fallback time.Duration) *TimedPlayer {
	durations := make(map[string]time.Duration, len(index))
	for _, n := range index {
		d := n.Duration
		if d <= 0 {
			d = fallback
		}
		durations[n.Source] = d
	}
	return &TimedPlayer{sched: sched, now: time.Now, durations: durations}
}

func (p *TimedPlayer) SetSource(source string) {
	if source == p.source {
		return
	}
	p.stop()
	p.source = source
	p.elapsed = 0
}

// Play starts or resumes playback of the current source.
func (p *TimedPlayer) Play(_ context.Context) error {
	if p.source == "" {
		return ErrNoSource
	}
	total, ok := p.durations[p.source]
	if !ok {
		return fmt.Errorf("%q: %w", p.source, ErrUnknownSource)
	}
	if p.playing {
		return nil
	}
	if p.elapsed >= total {
		p.elapsed = 0
	}

	p.playing = true
	p.started = p.now()
	p.finish = p.sched.AfterFunc(total-p.elapsed, p.ended)
	return nil
}

// Pause halts playback and keeps the position. OnPauseDetected fires only
// when something was actually playing.
func (p *TimedPlayer) Pause() {
	if !p.playing {
		return
	}
	p.elapsed += p.now().Sub(p.started)
	p.stop()
	if p.onPaused != nil {
		p.onPaused()
	}
}

func (p *TimedPlayer) SeekToStart() {
	p.elapsed = 0
	if p.playing {
		p.started = p.now()
		p.stop()
		total := p.durations[p.source]
		p.playing = true
		p.finish = p.sched.AfterFunc(total, p.ended)
	}
}

func (p *TimedPlayer) OnEnded(fn func()) { p.onEnded = fn }

func (p *TimedPlayer) OnPauseDetected(fn func()) { p.onPaused = fn }

// Playing reports whether a recording is running.
func (p *TimedPlayer) Playing() bool {
	return p.playing
}

// Position returns how far into the current recording playback is, and
// the recording's length.
func (p *TimedPlayer) Position() (elapsed, total time.Duration) {
	total = p.durations[p.source]
	elapsed = p.elapsed
	if p.playing {
		elapsed += p.now().Sub(p.started)
	}
	return min(elapsed, total), total
}

func (p *TimedPlayer) stop() {
	if p.finish != nil {
		p.finish.Stop()
		p.finish = nil
	}
	p.playing = false
}

func (p *TimedPlayer) ended() {
	p.finish = nil
	p.playing = false
	p.elapsed = p.durations[p.source]
	if p.onEnded != nil {
		p.onEnded()
	}
}
