package flow

import "github.com/abhisek/coursewalk/internal/course"

// Gate answers the gating questions over a snapshot of learner state. It
// has no side effects; the controller hands out a Gate that reads its live
// maps.
type Gate struct {
	Sequence  *course.Sequence
	Narration course.NarrationIndex
	Override  bool

	Viewed    map[int]bool
	AudioDone map[string]bool

	// NarrationFailed holds titles whose mapped narration could not be
	// played. They are treated like topics without a recording.
	NarrationFailed map[string]bool

	Results map[string]ChallengeResult
}

// CanAdvanceFrom reports whether the learner may move past the card at
// index. Only training cards are gated, and only on having been viewed.
func (g Gate) CanAdvanceFrom(index int) bool {
	if !g.Sequence.IsTrainingIndex(index) {
		return true
	}
	return g.Viewed[index]
}

// ChallengeUnlocked reports whether the challenge panel for title may open:
// the override is set, the narration has played to the end, or there is no
// playable narration for the topic.
func (g Gate) ChallengeUnlocked(title string) bool {
	if g.Override || g.AudioDone[title] {
		return true
	}
	if !g.Narration.Has(title) {
		return true
	}
	return g.NarrationFailed[title]
}

// HasSubmission reports whether a challenge result exists for title.
func (g Gate) HasSubmission(title string) bool {
	_, ok := g.Results[title]
	return ok
}

// UnlockedCount is how many topics the module grid lets the learner open:
// one past the number of viewed training cards, at least one, and never
// more than the number of topics.
func (g Gate) UnlockedCount() int {
	viewed := 0
	for _, idx := range g.Sequence.TrainingIndices() {
		if g.Viewed[idx] {
			viewed++
		}
	}
	return min(g.Sequence.TopicCount(), max(1, viewed+1))
}

// ModuleUnlocked reports whether the 1-based topic may be selected from the
// module grid.
func (g Gate) ModuleUnlocked(topicNumber int) bool {
	if topicNumber < 1 || topicNumber > g.Sequence.TopicCount() {
		return false
	}
	return g.Override || topicNumber <= g.UnlockedCount()
}
