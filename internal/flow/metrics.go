package flow

import (
	"math"

	"github.com/abhisek/coursewalk/internal/course"
)

// Metrics are progress figures derived from the position and viewed set.
type Metrics struct {
	Step          int // 1-based card number
	TotalSteps    int
	TopicsViewed  int
	TotalTopics   int
	UnlockedCount int

	// Percent is the share of progress-bearing cards before the current
	// one, or 100 on the completion card.
	Percent int
}

// Metrics computes the current progress figures.
func (c *Controller) Metrics() Metrics {
	m := Metrics{
		Step:          c.pos.CurrentIndex + 1,
		TotalSteps:    c.seq.Len(),
		TotalTopics:   c.seq.TopicCount(),
		UnlockedCount: c.Gate().UnlockedCount(),
	}
	for _, i := range c.seq.TrainingIndices() {
		if c.viewed[i] {
			m.TopicsViewed++
		}
	}

	bearing := c.seq.ProgressBearing()
	switch {
	case c.Current().Kind == course.KindComplete:
		m.Percent = 100
	case len(bearing) > 0:
		before := 0
		for _, i := range bearing {
			if i < c.pos.CurrentIndex {
				before++
			}
		}
		m.Percent = int(math.Round(100 * float64(before) / float64(len(bearing))))
	}
	return m
}
