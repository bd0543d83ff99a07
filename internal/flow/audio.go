package flow

import (
	"context"
	"fmt"
)

// Player is the narration playback resource. Play starts playback and
// returns without waiting for it to finish; an error means playback was
// rejected. Pause and SeekToStart must be safe to call when idle.
type Player interface {
	SetSource(source string)
	Play(ctx context.Context) error
	Pause()
	SeekToStart()
	OnEnded(fn func())
	OnPauseDetected(fn func())
}

// Audio returns the narration state.
func (c *Controller) Audio() AudioState {
	return c.audio
}

func (c *Controller) startNarration(title string) {
	n, ok := c.narration.Lookup(title)
	if !ok {
		c.audio = AudioState{Status: AudioIdle, Title: title, Message: "No narration for this topic."}
		return
	}
	if c.player == nil {
		c.narrationFailed[title] = true
		c.audio = AudioState{Status: AudioIdle, Title: title, Message: "Audio output is not available."}
		return
	}

	c.player.SetSource(n.Source)
	c.playingTitle = title
	if err := c.player.Play(c.ctx); err != nil {
		c.playingTitle = ""
		c.narrationFailed[title] = true
		c.audio = AudioState{Status: AudioIdle, Title: title, Message: fmt.Sprintf("Narration unavailable: %v", err)}
		c.logger.Warn("narration playback rejected", "title", title, "source", n.Source, "error", err)
		return
	}
	c.audio = AudioState{Status: AudioPlaying, Title: title}
}

// stopNarration pauses and rewinds the player. It is idempotent.
func (c *Controller) stopNarration() {
	c.playingTitle = ""
	if c.player != nil {
		c.player.Pause()
		c.player.SeekToStart()
	}
	if c.audio.Status == AudioPlaying || c.audio.Status == AudioPaused {
		c.audio.Status = AudioIdle
	}
}

// handleNarrationEnded is the only writer of the audio-completion set.
func (c *Controller) handleNarrationEnded() {
	title := c.playingTitle
	if title == "" {
		return
	}
	c.playingTitle = ""
	c.audioDone[title] = true
	c.audio = AudioState{Status: AudioEnded, Title: title}
	if idx, ok := c.seq.TrainingIndexOfTitle(title); ok {
		c.record(EventNarrationCompleted, idx, title, nil)
	}
	c.notify()
}

func (c *Controller) handleNarrationPaused() {
	if c.playingTitle == "" {
		return
	}
	c.audio.Status = AudioPaused
	c.notify()
}

// ToggleNarration pauses or resumes narration on the expanded panel.
func (c *Controller) ToggleNarration() {
	if c.player == nil || c.Mode() != ModeExpanded {
		return
	}
	switch c.audio.Status {
	case AudioPlaying:
		c.player.Pause()
	case AudioPaused:
		if err := c.player.Play(c.ctx); err != nil {
			c.logger.Warn("narration resume rejected", "title", c.audio.Title, "error", err)
			return
		}
		c.audio.Status = AudioPlaying
		c.notify()
	}
}

// NarrationDone reports whether title's narration has played to the end.
func (c *Controller) NarrationDone(title string) bool {
	return c.audioDone[title]
}
