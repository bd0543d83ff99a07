package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answerAll(t *testing.T, a *Assessment, correct int) {
	t.Helper()
	require.Equal(t, StepMoved, a.Next())
	for i := range a.QuestionCount() {
		option := 1
		if i < correct {
			option = 0
		}
		require.True(t, a.Answer(option))
		require.Equal(t, StepMoved, a.Next())
	}
	require.True(t, a.OnResults())
}

func TestAssessment_Scoring(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		percent int
		passed  bool
	}{
		{"all", 10, 100, true},
		{"threshold", 8, 80, true},
		{"below threshold", 7, 70, false},
		{"none", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAssessment(fixtureCourse().FinalTest.Questions)
			answerAll(t, a, tt.correct)

			s := a.Score()
			assert.Equal(t, tt.correct, s.Correct)
			assert.Equal(t, 10, s.Total)
			assert.Equal(t, tt.percent, s.Percent)
			assert.Equal(t, tt.passed, s.Passed)
		})
	}
}

func TestAssessment_ScoreRounds(t *testing.T) {
	qs := fixtureCourse().FinalTest.Questions[:3]
	a := NewAssessment(qs)
	answerAll(t, a, 2)
	assert.Equal(t, 67, a.Score().Percent)
}

func TestAssessment_EmptyNeverPasses(t *testing.T) {
	a := NewAssessment(nil)
	assert.Equal(t, Score{}, a.Score())
	assert.Equal(t, StepMoved, a.Next())
	assert.True(t, a.OnResults())
}

func TestAssessment_AdvanceGate(t *testing.T) {
	a := NewAssessment(fixtureCourse().FinalTest.Questions)
	a.Next()

	assert.Equal(t, StepLocked, a.Next())
	assert.Equal(t, 1, a.Page())

	assert.False(t, a.Answer(3), "out of range option")
	assert.False(t, a.Answer(-1))
	assert.Equal(t, StepLocked, a.Next())

	require.True(t, a.Answer(2))
	assert.Equal(t, StepMoved, a.Next())
	assert.Equal(t, 2, a.Page())
}

func TestAssessment_AnswerFrozenAfterAdvancing(t *testing.T) {
	a := NewAssessment(fixtureCourse().FinalTest.Questions)
	a.Next()

	require.True(t, a.Answer(1))
	require.True(t, a.Answer(0), "re-answer before advancing")
	a.Next()

	assert.Equal(t, StepMoved, a.Prev())
	assert.Equal(t, 1, a.Page())
	assert.False(t, a.Answer(2))
	sel, ok := a.Selected("q1")
	require.True(t, ok)
	assert.Equal(t, 0, sel)

	// Answered questions can be passed again.
	assert.Equal(t, StepMoved, a.Next())
}

func TestAssessment_PrevAndExit(t *testing.T) {
	a := NewAssessment(fixtureCourse().FinalTest.Questions)

	assert.Equal(t, StepExit, a.Prev(), "cover leaves the card")
	a.Next()
	assert.Equal(t, StepMoved, a.Prev())
	assert.True(t, a.OnCover())

	answerAll(t, a, 10)
	assert.Equal(t, StepNone, a.Prev())
	assert.True(t, a.OnResults())
	assert.Equal(t, StepExit, a.Next())

	_, ok := a.Question()
	assert.False(t, ok)
}
