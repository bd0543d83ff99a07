package flow

import (
	"math"

	"github.com/abhisek/coursewalk/internal/course"
)

// PassPercent is the score needed to pass the final assessment.
const PassPercent = 80

// Step is the outcome of a sub-navigator move.
type Step int

const (
	StepNone   Step = iota // nothing happened
	StepMoved              // the page changed
	StepLocked             // refused; the current question is unanswered
	StepExit               // the move leaves the assessment card
)

// Assessment is the final-test page cursor: page 0 is the cover, pages
// 1..Q hold one question each, and page Q+1 shows the results.
type Assessment struct {
	questions []course.Question
	page      int
	answers   map[string]int
	frozen    map[string]bool
}

// Score is computed from the answers on demand.
type Score struct {
	Correct int
	Total   int
	Percent int
	Passed  bool
}

// NewAssessment creates a cursor on the cover page.
func NewAssessment(questions []course.Question) *Assessment {
	return &Assessment{
		questions: questions,
		answers:   make(map[string]int),
		frozen:    make(map[string]bool),
	}
}

// Page returns the current page index.
func (a *Assessment) Page() int {
	return a.page
}

// QuestionCount returns Q.
func (a *Assessment) QuestionCount() int {
	return len(a.questions)
}

// ResultsPage returns the index of the results page.
func (a *Assessment) ResultsPage() int {
	return len(a.questions) + 1
}

// OnCover reports whether the cursor is on the cover page.
func (a *Assessment) OnCover() bool {
	return a.page == 0
}

// OnResults reports whether the cursor is on the results page.
func (a *Assessment) OnResults() bool {
	return a.page == a.ResultsPage()
}

// Question returns the question on the current page.
func (a *Assessment) Question() (course.Question, bool) {
	if a.page < 1 || a.page > len(a.questions) {
		return course.Question{}, false
	}
	return a.questions[a.page-1], true
}

// Selected returns the recorded answer for a question id.
func (a *Assessment) Selected(id string) (int, bool) {
	opt, ok := a.answers[id]
	return opt, ok
}

// Answer records option for the current question. A question can be
// re-answered until the learner advances past it.
func (a *Assessment) Answer(option int) bool {
	q, ok := a.Question()
	if !ok || a.frozen[q.ID] {
		return false
	}
	if option < 0 || option >= len(q.Options) {
		return false
	}
	a.answers[q.ID] = option
	return true
}

// Next moves forward. An unanswered question refuses; the results page
// hands control back to the outer sequence.
func (a *Assessment) Next() Step {
	switch {
	case a.OnResults():
		return StepExit
	case a.OnCover():
		a.page = 1
		return StepMoved
	}

	q, _ := a.Question()
	if _, answered := a.answers[q.ID]; !answered {
		return StepLocked
	}
	a.frozen[q.ID] = true
	a.page = min(a.ResultsPage(), a.page+1)
	return StepMoved
}

// Prev moves back one question. The cover hands control back to the outer
// sequence; the results page is terminal and ignores Prev.
func (a *Assessment) Prev() Step {
	switch {
	case a.OnResults():
		return StepNone
	case a.OnCover():
		return StepExit
	}
	a.page = max(0, a.page-1)
	return StepMoved
}

// Score grades every recorded answer.
func (a *Assessment) Score() Score {
	s := Score{Total: len(a.questions)}
	for _, q := range a.questions {
		if opt, ok := a.answers[q.ID]; ok && opt == q.CorrectIndex {
			s.Correct++
		}
	}
	if s.Total > 0 {
		s.Percent = int(math.Round(100 * float64(s.Correct) / float64(s.Total)))
	}
	s.Passed = s.Total > 0 && s.Percent >= PassPercent
	return s
}
