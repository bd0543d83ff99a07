package flow

import "github.com/abhisek/coursewalk/internal/course"

// GoTo moves to target. It is a no-op while a transition is in flight, for
// an out-of-range target, or for the current index. It reports whether the
// position changed. GoTo applies no gating; Next, Prev and SelectModule do.
func (c *Controller) GoTo(target int, dir Direction) bool {
	if c.pos.Transitioning || !c.seq.InRange(target) || target == c.pos.CurrentIndex {
		return false
	}

	from := c.pos.CurrentIndex
	c.stopNarration()

	c.pos.PreviousIndex = from
	c.pos.Direction = dir
	c.pos.CurrentIndex = target
	c.pos.Transitioning = true
	c.transitionTimer = c.sched.AfterFunc(c.timing.TransitionWindow, c.endTransition)

	// A revisited topic left on its expanded panel resumes narration.
	if title := c.Current().Title; c.PanelMode(title) == ModeExpanded {
		c.startNarration(title)
	}

	c.armViewed()
	c.persist()
	if c.onChange != nil {
		c.onChange(from, target)
	}
	c.notify()
	return true
}

func (c *Controller) endTransition() {
	c.transitionTimer = nil
	c.pos.Transitioning = false
	c.pos.PreviousIndex = -1
	c.notify()
}

// Next is the primary advance action.
func (c *Controller) Next() {
	if c.Mode() == ModeHelp {
		c.CloseHelp()
		return
	}

	card := c.Current()
	switch card.Kind {
	case course.KindCover:
		if !c.gridVisible {
			c.gridVisible = true
			c.notify()
			return
		}
		c.GoTo(c.pos.CurrentIndex+1, Forward)

	case course.KindTraining:
		c.nextPanel(card.Title)

	case course.KindFinalTest:
		c.nextAssessment(card)

	default:
		c.GoTo(c.pos.CurrentIndex+1, Forward)
	}
}

// nextPanel walks overview, expanded, challenge, then leaves the card.
func (c *Controller) nextPanel(title string) {
	gate := c.Gate()
	switch c.Mode() {
	case ModeOverview:
		c.setMode(title, ModeExpanded)
		c.notify()

	case ModeExpanded:
		if !gate.ChallengeUnlocked(title) {
			c.pulseLocked()
			return
		}
		c.setMode(title, ModeChallenge)
		c.notify()

	case ModeChallenge:
		if !gate.HasSubmission(title) || !gate.CanAdvanceFrom(c.pos.CurrentIndex) {
			c.pulseLocked()
			return
		}
		c.GoTo(c.pos.CurrentIndex+1, Forward)
	}
}

func (c *Controller) nextAssessment(card course.Card) {
	wasResults := c.assessment.OnResults()
	switch c.assessment.Next() {
	case StepMoved:
		if !wasResults && c.assessment.OnResults() {
			score := c.assessment.Score()
			c.record(EventAssessmentCompleted, c.pos.CurrentIndex, card.Title, map[string]any{
				"correct": score.Correct,
				"total":   score.Total,
				"percent": score.Percent,
				"passed":  score.Passed,
			})
		}
		c.notify()
	case StepLocked:
		c.pulseLocked()
	case StepExit:
		c.GoTo(c.pos.CurrentIndex+1, Forward)
	}
}

// Prev is the regress action. It mirrors Next: panels unwind before the
// card index moves back, and a challenge cannot be left unanswered.
func (c *Controller) Prev() {
	if c.Mode() == ModeHelp {
		c.CloseHelp()
		return
	}

	card := c.Current()
	switch card.Kind {
	case course.KindTraining:
		c.prevPanel(card.Title)

	case course.KindFinalTest:
		switch c.assessment.Prev() {
		case StepMoved:
			c.notify()
		case StepExit:
			c.GoTo(c.pos.CurrentIndex-1, Backward)
		}

	default:
		c.GoTo(c.pos.CurrentIndex-1, Backward)
	}
}

func (c *Controller) prevPanel(title string) {
	switch c.Mode() {
	case ModeChallenge:
		if !c.Gate().HasSubmission(title) {
			c.pulseLocked()
			return
		}
		c.setMode(title, ModeExpanded)
		c.notify()

	case ModeExpanded:
		c.setMode(title, ModeOverview)
		c.notify()

	case ModeOverview:
		c.GoTo(c.pos.CurrentIndex-1, Backward)
	}
}

// SelectModule jumps to a topic from the module grid. Locked topics raise
// the locked signal instead.
func (c *Controller) SelectModule(topicNumber int) bool {
	if !c.Gate().ModuleUnlocked(topicNumber) {
		c.pulseLocked()
		return false
	}
	idx, err := c.seq.IndexOfTopic(topicNumber)
	if err != nil {
		return false
	}
	dir := Forward
	if idx < c.pos.CurrentIndex {
		dir = Backward
	}
	return c.GoTo(idx, dir)
}

// Apply performs the action a pointer gesture maps to.
func (c *Controller) Apply(g Gesture) {
	switch g {
	case GestureNext:
		c.Next()
	case GesturePrev:
		c.Prev()
	}
}
