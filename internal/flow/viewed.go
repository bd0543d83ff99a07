package flow

// armViewed cancels the pending viewed timer and, if the current card is a
// training card not yet viewed, starts a new one. Leaving the card before
// the timer fires cancels it, so a fleeting visit earns nothing.
func (c *Controller) armViewed() {
	if c.viewedTimer != nil {
		c.viewedTimer.Stop()
		c.viewedTimer = nil
	}
	idx := c.pos.CurrentIndex
	if !c.seq.IsTrainingIndex(idx) || c.viewed[idx] {
		return
	}
	c.viewedTimer = c.sched.AfterFunc(c.timing.ViewedDelay, func() {
		c.markViewed(idx)
	})
}

func (c *Controller) markViewed(idx int) {
	c.viewedTimer = nil
	if c.pos.CurrentIndex != idx || c.viewed[idx] {
		return
	}
	c.viewed[idx] = true
	c.record(EventCardViewed, idx, c.seq.Card(idx).Title, nil)
	c.persist()
	c.notify()
}
