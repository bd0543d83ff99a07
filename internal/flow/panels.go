package flow

import "github.com/abhisek/coursewalk/internal/course"

// panelState is the panel machine for one card, keyed by card title so a
// revisited topic comes back exactly as it was left.
type panelState struct {
	mode       PanelMode
	returnMode PanelMode // mode to restore when help closes
}

func (c *Controller) panel(title string) *panelState {
	p, ok := c.panels[title]
	if !ok {
		p = &panelState{mode: ModeOverview, returnMode: ModeOverview}
		c.panels[title] = p
	}
	return p
}

// Mode returns the active panel of the current card.
func (c *Controller) Mode() PanelMode {
	return c.panel(c.Current().Title).mode
}

// PanelMode returns the active panel remembered for title.
func (c *Controller) PanelMode(title string) PanelMode {
	if p, ok := c.panels[title]; ok {
		return p.mode
	}
	return ModeOverview
}

// setMode switches the panel of title and keeps narration in step: it
// plays when the expanded panel opens and stops when it closes.
func (c *Controller) setMode(title string, mode PanelMode) {
	p := c.panel(title)
	if p.mode == mode {
		return
	}
	if p.mode == ModeExpanded {
		c.stopNarration()
	}
	p.mode = mode
	if mode == ModeExpanded {
		c.startNarration(title)
	}
}

// OpenHelp suspends the current panel behind the help overlay.
func (c *Controller) OpenHelp() {
	title := c.Current().Title
	p := c.panel(title)
	if p.mode == ModeHelp {
		return
	}
	p.returnMode = p.mode
	c.setMode(title, ModeHelp)
	c.notify()
}

// CloseHelp restores the panel that was active when help opened.
func (c *Controller) CloseHelp() {
	title := c.Current().Title
	p := c.panel(title)
	if p.mode != ModeHelp {
		return
	}
	c.setMode(title, p.returnMode)
	c.notify()
}

// ToggleHelp opens or closes the help overlay.
func (c *Controller) ToggleHelp() {
	if c.Mode() == ModeHelp {
		c.CloseHelp()
		return
	}
	c.OpenHelp()
}

// SubmitChallenge records the learner's choice on the current challenge
// panel. Only the first submission per topic counts; later calls return
// the stored result with ok=false.
func (c *Controller) SubmitChallenge(selected int) (ChallengeResult, bool) {
	card := c.Current()
	if !card.IsTraining() || c.Mode() != ModeChallenge {
		return ChallengeResult{}, false
	}
	if prev, done := c.results[card.Title]; done {
		return prev, false
	}
	ch, ok := c.Challenge(card.Title)
	if !ok || !ch.Valid(selected) {
		return ChallengeResult{}, false
	}

	res := ChallengeResult{SelectedIndex: selected, IsCorrect: ch.IsCorrect(selected)}
	c.results[card.Title] = res
	c.record(EventChallengeSubmitted, c.pos.CurrentIndex, card.Title, map[string]any{
		"selected": selected,
		"correct":  res.IsCorrect,
	})
	c.notify()
	return res, true
}

// AnswerQuestion records option for the current final-test question.
// Answers are refused while help covers the question.
func (c *Controller) AnswerQuestion(option int) bool {
	if c.Current().Kind != course.KindFinalTest || c.Mode() == ModeHelp {
		return false
	}
	if !c.assessment.Answer(option) {
		return false
	}
	c.notify()
	return true
}
