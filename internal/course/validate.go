package course

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a course.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid course: %s", strings.Join(e.Problems, "; "))
}

// HasProblems reports whether any problem was recorded.
func (e *ValidationError) HasProblems() bool {
	return len(e.Problems) > 0
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) merge(err error) {
	if ve, ok := err.(*ValidationError); ok && ve != nil {
		e.Problems = append(e.Problems, ve.Problems...)
	}
}

// Validate checks the invariants the flow relies on. Topic titles key all
// per-topic learner state, so they must be unique and non-empty.
func (c *Course) Validate() error {
	var verr ValidationError

	if c.Title == "" {
		verr.add("course title is empty")
	}
	if len(c.Topics) == 0 {
		verr.add("course has no topics")
	}

	reserved := map[string]string{
		c.Intro.Title:     "intro",
		c.Cover.Title:     "cover",
		c.FinalTest.Title: "final test",
		c.Complete.Title:  "completion",
	}
	seen := make(map[string]bool, len(c.Topics))
	for i, t := range c.Topics {
		switch {
		case t.Title == "":
			verr.add("topic %d: title is empty", i+1)
		case seen[t.Title]:
			verr.add("topic %d: duplicate title %q", i+1, t.Title)
		case reserved[t.Title] != "":
			verr.add("topic %d: title %q is also the %s card title", i+1, t.Title, reserved[t.Title])
		}
		seen[t.Title] = true
		if len(t.Statements) == 0 {
			verr.add("topic %d (%s): no challenge statements", i+1, t.Title)
		}
	}

	if len(c.FinalTest.Questions) == 0 {
		verr.add("final test has no questions")
	}
	ids := make(map[string]bool, len(c.FinalTest.Questions))
	for i, q := range c.FinalTest.Questions {
		if q.ID == "" {
			verr.add("question %d: id is empty", i+1)
		} else if ids[q.ID] {
			verr.add("question %d: duplicate id %q", i+1, q.ID)
		}
		ids[q.ID] = true
		if len(q.Options) < 2 {
			verr.add("question %s: needs at least 2 options", q.ID)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			verr.add("question %s: correct index %d out of range", q.ID, q.CorrectIndex)
		}
	}

	if verr.HasProblems() {
		return &verr
	}
	return nil
}
