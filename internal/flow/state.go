// Package flow is the sequential flow and gating controller: it owns the
// learner's position in the card sequence, the per-topic panel state, and
// the rules that decide when a transition may happen.
//
// The controller is a single-actor state machine. Every method must be
// called from one event loop, and timer callbacks are delivered through a
// timer.Scheduler driven by that same loop.
package flow

import "time"

// Direction is the direction of the most recent card transition.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// PanelMode is the active sub-panel of a card.
type PanelMode string

const (
	ModeOverview  PanelMode = "overview"
	ModeExpanded  PanelMode = "expanded"
	ModeChallenge PanelMode = "challenge"
	ModeHelp      PanelMode = "help"
)

// Position is the navigator's view of where the learner is.
type Position struct {
	CurrentIndex int

	// PreviousIndex is the card being transitioned away from, or -1 once
	// the transition window has elapsed.
	PreviousIndex int

	Direction     Direction
	Transitioning bool
}

// ChallengeResult is the first submission for a topic's challenge.
type ChallengeResult struct {
	SelectedIndex int
	IsCorrect     bool
}

// AudioStatus is the narration playback state as seen by the controller.
type AudioStatus string

const (
	AudioIdle    AudioStatus = "idle"
	AudioPlaying AudioStatus = "playing"
	AudioPaused  AudioStatus = "paused"
	AudioEnded   AudioStatus = "ended"
)

// AudioState describes narration for the current card.
type AudioState struct {
	Status  AudioStatus
	Title   string
	Message string
}

// Timing holds the fixed delays used by the controller.
type Timing struct {
	ViewedDelay      time.Duration // continuous presence before a card counts as viewed
	LockedPulse      time.Duration // how long the locked signal stays raised
	TransitionWindow time.Duration // card transition animation window
}

// DefaultTiming returns the standard delays.
func DefaultTiming() Timing {
	return Timing{
		ViewedDelay:      1100 * time.Millisecond,
		LockedPulse:      700 * time.Millisecond,
		TransitionWindow: 450 * time.Millisecond,
	}
}

func (t Timing) withDefaults() Timing {
	def := DefaultTiming()
	if t.ViewedDelay <= 0 {
		t.ViewedDelay = def.ViewedDelay
	}
	if t.LockedPulse <= 0 {
		t.LockedPulse = def.LockedPulse
	}
	if t.TransitionWindow <= 0 {
		t.TransitionWindow = def.TransitionWindow
	}
	return t
}
